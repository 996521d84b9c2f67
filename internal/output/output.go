// Package output writes search results to the single output artifact of a run.
package output

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rubiojr/fuelrank/pkg/api"
)

var ErrUnknownFormat = errors.New("unknown output format")

const (
	FormatJSON   = "json"
	FormatGPX    = "gpx"
	FormatSQLite = "sqlite"
)

// Writer writes a result to path, replacing any existing file.
type Writer interface {
	Write(ctx context.Context, path string, result api.Result) error
}

// Formats lists the supported output formats.
func Formats() []string {
	return []string{FormatJSON, FormatGPX, FormatSQLite}
}

// New returns the writer for format.
func New(format string, logger *slog.Logger) (Writer, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return &JSONWriter{}, nil
	case FormatGPX:
		return &GPXWriter{}, nil
	case FormatSQLite:
		return &SQLiteWriter{log: logger}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", dir, err)
	}
	return nil
}

// writeFile writes data to path through a file handle that is closed on
// every return path.
func writeFile(path string, data []byte) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("error closing output file: %w", cerr)
		}
	}()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}
	return nil
}
