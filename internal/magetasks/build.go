package magetasks

import (
	"fmt"
	"strings"
	"time"

	"github.com/magefile/mage/sh"
)

// BuildInfo is stamped into internal/version at link time.
type BuildInfo struct {
	Version string
	Commit  string
	Date    time.Time
}

// LDFlags returns the linker flags for info.
func (b BuildInfo) LDFlags() string {
	pkg := ModulePath + "/internal/version"
	return fmt.Sprintf("-s -w -X '%s.Version=%s' -X '%s.CommitHash=%s' -X '%s.BuildDate=%s'",
		pkg, b.Version, pkg, b.Commit, pkg, b.Date.UTC().Format(time.RFC3339))
}

// CurrentBuildInfo reads version and commit from git, falling back to
// dev/unknown outside a checkout.
func CurrentBuildInfo() BuildInfo {
	return BuildInfo{
		Version: gitOutput("dev", "describe", "--tags", "--always", "--dirty", "--match=v*"),
		Commit:  gitOutput("unknown", "rev-parse", "--short", "HEAD"),
		Date:    time.Now(),
	}
}

// BuildAll builds the regdash binary with version metadata.
func BuildAll() error {
	PrintH2Header("Build")
	info := CurrentBuildInfo()
	if err := sh.RunV("go", "build", "-ldflags", info.LDFlags(), "-o", BinPath, MainPackage); err != nil {
		PrintError("Build failed")
		return err
	}
	PrintSuccess(fmt.Sprintf("Built %s (%s)", BinPath, info.Version))
	return nil
}

// Clean removes build artifacts and coverage output.
func Clean() error {
	PrintH2Header("Clean")
	for _, path := range []string{"./bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	PrintSuccess("Cleaned build artifacts")
	return nil
}

func gitOutput(fallback string, args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil || strings.TrimSpace(out) == "" {
		return fallback
	}
	return strings.TrimSpace(out)
}

// Install runs go install with the same linker flags as BuildAll.
func Install() error {
	PrintH2Header("Install")
	return sh.RunV("go", "install", "-ldflags", CurrentBuildInfo().LDFlags(), MainPackage)
}
