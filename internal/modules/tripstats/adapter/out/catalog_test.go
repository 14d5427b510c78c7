package out_test

import (
	"context"
	"errors"
	"testing"

	tripadapter "bikeshare/internal/modules/tripstats/adapter/out"
	"bikeshare/internal/modules/tripstats/domain"
	apperrors "bikeshare/internal/platform/errors"
)

func TestConfigCatalogResolveAndList(t *testing.T) {
	t.Parallel()
	catalog, err := tripadapter.NewConfigCatalog(map[string]string{
		"washington":    "/data/washington.csv",
		"Chicago":       "/data/chicago.db",
		"new york city": "/data/nyc.csv.zst",
	})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	path, err := catalog.Resolve(context.Background(), domain.CityChicago)
	if err != nil || path != "/data/chicago.db" {
		t.Fatalf("resolve chicago: %q %v", path, err)
	}
	sources, err := catalog.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []domain.City{domain.CityChicago, domain.CityNewYorkCity, domain.CityWashington}
	if len(sources) != len(want) {
		t.Fatalf("expected %d sources, got %d", len(want), len(sources))
	}
	for i, city := range want {
		if sources[i].City != city {
			t.Fatalf("source %d: expected %s, got %s", i, city, sources[i].City)
		}
	}
}

func TestConfigCatalogRejectsUnknownCity(t *testing.T) {
	t.Parallel()
	if _, err := tripadapter.NewConfigCatalog(map[string]string{"boston": "boston.csv"}); !errors.Is(err, apperrors.ErrDomainValidation) {
		t.Fatalf("expected domain validation error, got %v", err)
	}
}

func TestConfigCatalogMissingCity(t *testing.T) {
	t.Parallel()
	catalog, err := tripadapter.NewConfigCatalog(map[string]string{"chicago": "chicago.csv"})
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	if _, err := catalog.Resolve(context.Background(), domain.CityWashington); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
