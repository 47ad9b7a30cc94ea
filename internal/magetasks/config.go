package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path used in -X linker flags.
	ModulePath = "github.com/dkoosis/regdash"

	// BinPath is where BuildAll writes the regdash binary.
	BinPath = "./bin/regdash"

	// MainPackage is the package BuildAll compiles.
	MainPackage = "./cmd/regdash"

	// ProjectRoot is the directory mage was started in.
	ProjectRoot string
)

// Initialize records the project root and creates the bin directory.
// Call it from the magefile's init.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(ProjectRoot, "bin"), 0o750)
}
