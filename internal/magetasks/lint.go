package magetasks

import (
	"errors"
	"fmt"

	"github.com/magefile/mage/sh"
)

// LintAll runs gofmt, go vet and golangci-lint. Missing optional tools are
// reported and skipped.
func LintAll() error {
	PrintH2Header("Lint")
	var errs []error
	for _, lint := range []func() error{LintFormat, LintVet, LintGolangci} {
		if err := lint(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		PrintError("Lint failed")
		return err
	}
	PrintSuccess("All linters passed")
	return nil
}

// LintFormat fails when any file needs gofmt.
func LintFormat() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// LintVet runs go vet.
func LintVet() error {
	return sh.RunV("go", "vet", "./...")
}

// LintGolangci runs golangci-lint when it is installed.
func LintGolangci() error {
	return optional("go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest",
		"golangci-lint", "run", "--timeout=5m", "./...")
}
