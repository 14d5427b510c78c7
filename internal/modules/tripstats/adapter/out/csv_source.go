package out

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"bikeshare/internal/modules/tripstats/domain"
	apperrors "bikeshare/internal/platform/errors"
)

// CSVSource reads delimited trip files, optionally compressed. Every cell is
// kept as a string; typing happens in the loader.
type CSVSource struct{}

func NewCSVSource() *CSVSource {
	return &CSVSource{}
}

func (s *CSVSource) Read(ctx context.Context, path string) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}
	c, ok := codecFor(path)
	if !ok {
		return domain.RawTable{}, fmt.Errorf("%w: %s: unsupported extension", apperrors.ErrInvalidSource, path)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.RawTable{}, fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return domain.RawTable{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	body, err := c.open(f)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidSource, path, err)
	}
	defer body.Close()

	sum := xxhash.New()
	data, err := io.ReadAll(io.TeeReader(body, sum))
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidSource, path, err)
	}
	info := domain.SourceInfo{Path: path, Format: c.format, Digest: sum.Sum64()}

	// gota refuses a frame without rows, so a header-only file is answered
	// from the first record alone.
	head := csv.NewReader(bytes.NewReader(data))
	columns, err := head.Read()
	if errors.Is(err, io.EOF) {
		return domain.RawTable{}, fmt.Errorf("%w: %s: no header", apperrors.ErrInvalidSource, path)
	}
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidSource, path, err)
	}
	if _, err := head.Read(); errors.Is(err, io.EOF) {
		return domain.RawTable{Columns: columns, Records: [][]string{}, Source: info}, nil
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return domain.RawTable{}, fmt.Errorf("%w: %s: %v", apperrors.ErrInvalidSource, path, df.Err)
	}
	records := df.Records()
	if len(records) == 0 {
		return domain.RawTable{}, fmt.Errorf("%w: %s: no header", apperrors.ErrInvalidSource, path)
	}
	return domain.RawTable{Columns: records[0], Records: records[1:], Source: info}, nil
}
