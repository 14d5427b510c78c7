package out

import (
	"context"
	"fmt"

	"bikeshare/internal/modules/tripstats/domain"
	tripout "bikeshare/internal/modules/tripstats/port/out"
	apperrors "bikeshare/internal/platform/errors"
)

// SourceRouter picks a record source from the path extension.
type SourceRouter struct {
	csv    tripout.RecordSource
	sqlite tripout.RecordSource
}

func NewSourceRouter(csv, sqlite tripout.RecordSource) tripout.RecordSource {
	return &SourceRouter{csv: csv, sqlite: sqlite}
}

func (r *SourceRouter) Read(ctx context.Context, path string) (domain.RawTable, error) {
	switch FormatOf(path) {
	case FormatSQLite:
		return r.sqlite.Read(ctx, path)
	case "":
		return domain.RawTable{}, fmt.Errorf("%w: %s: unsupported extension", apperrors.ErrInvalidSource, path)
	default:
		return r.csv.Read(ctx, path)
	}
}
