package magetasks

import (
	"errors"
	"os/exec"
	"strings"

	"github.com/magefile/mage/sh"
)

// IsCommandNotFound reports whether err means the tool is not installed.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory")
}

// optional runs an external tool and turns "not installed" into a warning.
func optional(install, cmd string, args ...string) error {
	err := sh.RunV(cmd, args...)
	if IsCommandNotFound(err) {
		PrintWarning(cmd + " not found (install: " + install + ")")
		return nil
	}
	return err
}
