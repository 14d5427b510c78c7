package service

import (
	"context"
	"fmt"
	"strings"

	"bikeshare/internal/modules/tripstats/domain"
	tripout "bikeshare/internal/modules/tripstats/port/out"
	apperrors "bikeshare/internal/platform/errors"
)

type LoaderService struct {
	catalog tripout.Catalog
	source  tripout.RecordSource
}

func NewLoaderService(catalog tripout.Catalog, source tripout.RecordSource) *LoaderService {
	return &LoaderService{catalog: catalog, source: source}
}

// Load reads the records of city and derives the time fields of every trip.
func (s *LoaderService) Load(ctx context.Context, city domain.City) (domain.Table, error) {
	if err := city.Validate(); err != nil {
		return domain.Table{}, err
	}
	path, err := s.catalog.Resolve(ctx, city)
	if err != nil {
		return domain.Table{}, err
	}
	raw, err := s.source.Read(ctx, path)
	if err != nil {
		return domain.Table{}, err
	}
	return BuildTable(city, raw)
}

func (s *LoaderService) Sources(ctx context.Context) ([]domain.CitySource, error) {
	return s.catalog.List(ctx)
}

// BuildTable maps raw records onto trips. A start time that does not parse
// aborts the whole table.
func BuildTable(city domain.City, raw domain.RawTable) (domain.Table, error) {
	index := make(map[string]int, len(raw.Columns))
	for i, name := range raw.Columns {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	var missing []string
	for _, name := range domain.RequiredColumns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.Table{}, fmt.Errorf("%w: %s: missing columns %s", apperrors.ErrInvalidSource, raw.Source.Path, strings.Join(missing, ", "))
	}

	genderIdx, hasGender := index[domain.ColumnGender]
	birthIdx, hasBirth := index[domain.ColumnBirthYear]
	schema := domain.Schema{
		Columns:      append([]string(nil), raw.Columns...),
		HasGender:    hasGender,
		HasBirthYear: hasBirth,
	}

	trips := make([]domain.Trip, 0, len(raw.Records))
	for row, record := range raw.Records {
		cell := func(i int) string {
			if i < len(record) {
				return record[i]
			}
			return ""
		}
		start, err := domain.ParseTimestamp(cell(index[domain.ColumnStartTime]))
		if err != nil {
			return domain.Table{}, fmt.Errorf("%s row %d: %w", raw.Source.Path, row+1, err)
		}
		trip := domain.Trip{
			StartTime:    start,
			EndTime:      cell(index[domain.ColumnEndTime]),
			Duration:     cell(index[domain.ColumnTripDuration]),
			StartStation: cell(index[domain.ColumnStartStation]),
			EndStation:   cell(index[domain.ColumnEndStation]),
			UserType:     cell(index[domain.ColumnUserType]),
			TimeParts:    domain.DeriveTimeParts(start),
			Record:       record,
		}
		if hasGender {
			trip.Gender = cell(genderIdx)
		}
		if hasBirth {
			trip.BirthYear = cell(birthIdx)
		}
		trips = append(trips, trip)
	}

	return domain.Table{City: city, Schema: schema, Source: raw.Source, Trips: trips}, nil
}
