package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/pkg/report"
)

var _ ports.SeriesRepository = (*SeriesFile)(nil)

// SeriesFile implements ports.SeriesRepository by rendering a series to a
// single file.
type SeriesFile struct {
	path   string
	format report.Format
}

// NewSeriesFile creates a SeriesFile writing to path in format.
func NewSeriesFile(path string, format report.Format) *SeriesFile {
	return &SeriesFile{path: path, format: format}
}

// Save renders the series and replaces the file atomically.
// Uses atomic write (write to temp file, then rename) so readers never see
// a half-written series.
func (f *SeriesFile) Save(ctx context.Context, series *domain.Series) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, f.format, series.Rows()); err != nil {
		return err
	}

	if dir := filepath.Dir(f.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}

	if err := os.Rename(tmp, f.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Path returns the destination file path.
func (f *SeriesFile) Path() string {
	return f.path
}
