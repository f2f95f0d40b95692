package output

import (
	"fmt"
	"os"
	"path/filepath"
)

// Path returns the output file path for date inside dir.
func Path(dir, date string) string {
	return filepath.Join(dir, "output_"+date+".txt")
}

// Prepare makes sure dir exists, creating missing parents, and returns the
// output file path for date. An existing directory is left untouched.
func Prepare(dir, date string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	return Path(dir, date), nil
}
