// Package archive validates ZIP log archives and classifies their members.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Sonukumar0009/Farmart/internal/model"
)

var (
	// ErrNotFound is returned when the archive path does not reference an existing file.
	ErrNotFound = errors.New("archive not found")
	// ErrInvalidFormat is returned when the file exists but is not a ZIP container.
	ErrInvalidFormat = errors.New("invalid archive format")
)

const (
	plainSuffix = ".log"
	gzipSuffix  = ".gz"
)

// Validate checks that path exists and parses as a ZIP archive.
// It has no side effects beyond opening and closing the file.
func Validate(path string) error {
	zr, err := Open(path)
	if err != nil {
		return err
	}
	return zr.Close()
}

// Open checks that path exists and parses as a ZIP archive, then returns a
// reader over its members. The file is opened once. Errors wrap ErrNotFound
// or ErrInvalidFormat. The caller must close the returned reader.
func Open(path string) (*zip.ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidFormat, path)
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return zr, nil
}

// Classify returns the member kind implied by the name's suffix.
// Matching is case-sensitive: "APP.LOG" is unsupported.
func Classify(name string) model.MemberKind {
	switch {
	case strings.HasSuffix(name, plainSuffix):
		return model.KindPlain
	case strings.HasSuffix(name, gzipSuffix):
		return model.KindGzip
	default:
		return model.KindUnsupported
	}
}
