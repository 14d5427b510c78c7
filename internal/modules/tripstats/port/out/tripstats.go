package out

import (
	"context"

	"bikeshare/internal/modules/tripstats/domain"
)

// Catalog maps the closed city set to record sources.
type Catalog interface {
	Resolve(ctx context.Context, city domain.City) (string, error)
	List(ctx context.Context) ([]domain.CitySource, error)
}

// RecordSource reads a header and string records from a location.
type RecordSource interface {
	Read(ctx context.Context, path string) (domain.RawTable, error)
}
