package testutil

import (
	"os"
	"path/filepath"
	"runtime"
)

// LoadFixture reads a file from the testdata directory next to this file.
func LoadFixture(filename string) ([]byte, error) {
	_, currentFile, _, _ := runtime.Caller(0)
	dir := filepath.Dir(currentFile)

	return os.ReadFile(filepath.Join(dir, "testdata", filename))
}
