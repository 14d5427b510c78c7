package out

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

const (
	FormatCSV     = "csv"
	FormatCSVGzip = "csv+gzip"
	FormatCSVZstd = "csv+zstd"
	FormatCSVLZ4  = "csv+lz4"
	FormatSQLite  = "sqlite"
)

type codec struct {
	format string
	open   func(io.Reader) (io.ReadCloser, error)
}

var codecs = map[string]codec{
	".csv": {format: FormatCSV, open: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(r), nil
	}},
	".gz": {format: FormatCSVGzip, open: func(r io.Reader) (io.ReadCloser, error) {
		return gzip.NewReader(r)
	}},
	".zst": {format: FormatCSVZstd, open: func(r io.Reader) (io.ReadCloser, error) {
		dec, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return dec.IOReadCloser(), nil
	}},
	".lz4": {format: FormatCSVLZ4, open: func(r io.Reader) (io.ReadCloser, error) {
		return io.NopCloser(lz4.NewReader(r)), nil
	}},
}

var sqliteExts = map[string]bool{".db": true, ".sqlite": true, ".sqlite3": true}

func codecFor(path string) (codec, bool) {
	c, ok := codecs[strings.ToLower(filepath.Ext(path))]
	return c, ok
}

// FormatOf names the record format implied by the path extension, or "".
func FormatOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if sqliteExts[ext] {
		return FormatSQLite
	}
	if c, ok := codecs[ext]; ok {
		return c.format
	}
	return ""
}
