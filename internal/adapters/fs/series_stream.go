package fs

import (
	"context"
	"io"

	"github.com/bft-labs/weathering/internal/domain"
	"github.com/bft-labs/weathering/internal/ports"
	"github.com/bft-labs/weathering/pkg/report"
)

var _ ports.SeriesRepository = (*SeriesStream)(nil)

// SeriesStream renders a series to an already open writer such as stdout.
type SeriesStream struct {
	w      io.Writer
	format report.Format
}

// NewSeriesStream creates a SeriesStream writing to w in format.
func NewSeriesStream(w io.Writer, format report.Format) *SeriesStream {
	return &SeriesStream{w: w, format: format}
}

// Save renders the series to the writer.
func (s *SeriesStream) Save(ctx context.Context, series *domain.Series) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return report.Write(s.w, s.format, series.Rows())
}
