package out

import (
	"context"
	"fmt"
	"strings"

	"bikeshare/internal/modules/tripstats/domain"
	tripout "bikeshare/internal/modules/tripstats/port/out"
	apperrors "bikeshare/internal/platform/errors"
)

// ConfigCatalog resolves cities against the configured source paths.
type ConfigCatalog struct {
	paths map[domain.City]string
}

func NewConfigCatalog(sources map[string]string) (tripout.Catalog, error) {
	paths := make(map[domain.City]string, len(sources))
	for name, path := range sources {
		city, err := domain.ParseCity(name)
		if err != nil {
			return nil, fmt.Errorf("catalog: %w", err)
		}
		if strings.TrimSpace(path) == "" {
			return nil, fmt.Errorf("catalog: empty source path for %s", city)
		}
		paths[city] = path
	}
	return &ConfigCatalog{paths: paths}, nil
}

func (c *ConfigCatalog) Resolve(_ context.Context, city domain.City) (string, error) {
	path, ok := c.paths[city]
	if !ok {
		return "", fmt.Errorf("%w: no source configured for %s", apperrors.ErrNotFound, city)
	}
	return path, nil
}

// List returns the configured sources in display order.
func (c *ConfigCatalog) List(_ context.Context) ([]domain.CitySource, error) {
	out := make([]domain.CitySource, 0, len(c.paths))
	for _, city := range domain.Cities {
		if path, ok := c.paths[city]; ok {
			out = append(out, domain.CitySource{City: city, Path: path})
		}
	}
	return out, nil
}
