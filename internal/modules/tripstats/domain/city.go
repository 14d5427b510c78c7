package domain

import (
	"fmt"
	"strings"

	apperrors "bikeshare/internal/platform/errors"
)

type City string

const (
	CityChicago     City = "chicago"
	CityNewYorkCity City = "new york city"
	CityWashington  City = "washington"
)

// Cities is the closed set of supported cities in display order.
var Cities = []City{CityChicago, CityNewYorkCity, CityWashington}

func ParseCity(raw string) (City, error) {
	city := City(strings.ToLower(strings.TrimSpace(raw)))
	if err := city.Validate(); err != nil {
		return "", err
	}
	return city, nil
}

func (c City) Validate() error {
	switch c {
	case CityChicago, CityNewYorkCity, CityWashington:
		return nil
	default:
		return fmt.Errorf("%w: unsupported city %q", apperrors.ErrDomainValidation, string(c))
	}
}

// CitySource pairs a city with the location of its records.
type CitySource struct {
	City City
	Path string
}
