package xmlstream

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
)

var ErrNoXMLEntry = errors.New("no xml file found in archive")

// readCloser closes every layer of a decoded input, innermost first.
type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Open opens a price data file. Files ending in .gz are gunzipped and .zip
// archives are read from their first .xml entry; anything else is read as is.
func Open(path string) (io.ReadCloser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		return openGzip(path)
	case ".zip":
		return openZip(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening data file: %w", err)
	}
	return f, nil
}

func openGzip(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening data file: %w", err)
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("error reading gzip header: %w", err)
	}

	return &readCloser{Reader: gz, closers: []io.Closer{gz, f}}, nil
}

func openZip(path string) (io.ReadCloser, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("error opening zip archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(f.Name), ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, fmt.Errorf("error opening %s in archive: %w", f.Name, err)
		}
		return &readCloser{Reader: rc, closers: []io.Closer{rc, zr}}, nil
	}

	zr.Close()
	return nil, fmt.Errorf("%w: %s", ErrNoXMLEntry, path)
}
