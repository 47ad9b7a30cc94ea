//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"

	"github.com/dkoosis/regdash/internal/magetasks"
)

// Default target builds the binary.
var Default = Build

func init() {
	if err := magetasks.Initialize(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal: %v\n", err)
		os.Exit(1)
	}
}

// Build builds bin/regdash with version metadata.
func Build() error {
	return magetasks.BuildAll()
}

// Clean removes build artifacts.
func Clean() error {
	return magetasks.Clean()
}

// Lint runs gofmt, go vet and golangci-lint.
func Lint() error {
	return magetasks.LintAll()
}

// QA runs lint, tests and build.
func QA() error {
	return magetasks.QualityCheck()
}

// Test groups the test targets.
type Test mg.Namespace

// All runs the unit tests.
func (Test) All() error {
	return magetasks.TestAll()
}

// Coverage runs the tests with a coverage report.
func (Test) Coverage() error {
	return magetasks.TestCoverage()
}

// Race runs the tests with the race detector.
func (Test) Race() error {
	return magetasks.TestRace()
}

// Golden rewrites the report golden files.
func (Test) Golden() error {
	return magetasks.UpdateGolden()
}

// Install builds and copies regdash into GOBIN.
func Install() error {
	mg.Deps(Build)
	return magetasks.Install()
}
