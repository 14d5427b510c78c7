package service

import (
	"fmt"
	"math"

	"bikeshare/internal/modules/tripstats/domain"
	apperrors "bikeshare/internal/platform/errors"
)

// Aggregator computes the four statistic groups over a table. Each method
// is independent of the others.
type Aggregator struct{}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) TimeStats(table domain.Table) (domain.TimeStats, error) {
	if table.Len() == 0 {
		return domain.TimeStats{}, fmt.Errorf("%w: travel times", apperrors.ErrNoDataForStatistic)
	}
	months := make([]int, 0, table.Len())
	days := make([]string, 0, table.Len())
	hours := make([]int, 0, table.Len())
	for _, trip := range table.Trips {
		months = append(months, trip.Month)
		days = append(days, trip.Weekday)
		hours = append(hours, trip.Hour)
	}
	month, _, _ := domain.Mode(months)
	day, _, _ := domain.Mode(days)
	hour, _, _ := domain.Mode(hours)
	return domain.TimeStats{Month: month, Weekday: day, Hour: hour}, nil
}

func (a *Aggregator) StationStats(table domain.Table) (domain.StationStats, error) {
	if table.Len() == 0 {
		return domain.StationStats{}, fmt.Errorf("%w: stations", apperrors.ErrNoDataForStatistic)
	}
	starts := make([]string, 0, table.Len())
	ends := make([]string, 0, table.Len())
	labels := make([]string, 0, table.Len())
	for _, trip := range table.Trips {
		hasStart := !domain.IsMissing(trip.StartStation)
		hasEnd := !domain.IsMissing(trip.EndStation)
		if hasStart {
			starts = append(starts, trip.StartStation)
		}
		if hasEnd {
			ends = append(ends, trip.EndStation)
		}
		if hasStart && hasEnd {
			labels = append(labels, trip.Label())
		}
	}
	start, _, okStart := domain.Mode(starts)
	end, _, okEnd := domain.Mode(ends)
	label, _, _ := domain.Mode(labels)
	if !okStart && !okEnd {
		return domain.StationStats{}, fmt.Errorf("%w: stations (%d rows, all blank)", apperrors.ErrNoDataForStatistic, table.Len())
	}
	return domain.StationStats{StartStation: start, EndStation: end, Trip: label}, nil
}

// DurationStats sums and averages the trip durations that coerce to a
// non-negative number; everything else is skipped.
func (a *Aggregator) DurationStats(table domain.Table) (domain.DurationStats, error) {
	var stats domain.DurationStats
	for _, trip := range table.Trips {
		v, ok := domain.CoerceNumber(trip.Duration)
		if !ok || v < 0 {
			stats.Skipped++
			continue
		}
		stats.TotalSeconds += v
		stats.Valid++
	}
	if stats.Valid == 0 {
		return stats, fmt.Errorf("%w: trip duration (%d rows, none numeric)", apperrors.ErrNoDataForStatistic, table.Len())
	}
	stats.MeanSeconds = stats.TotalSeconds / float64(stats.Valid)
	stats.TotalHours, stats.TotalMinutes = domain.SplitHours(stats.TotalSeconds)
	stats.MeanMinutes, stats.MeanRemainder = domain.SplitMinutes(stats.MeanSeconds)
	return stats, nil
}

// UserStats always counts user types. Gender and birth year are reported as
// field_absent when the dataset has no such column and as no_data when the
// column exists but holds no usable value for the selected trips.
func (a *Aggregator) UserStats(table domain.Table) (domain.UserStats, error) {
	if table.Len() == 0 {
		return domain.UserStats{}, fmt.Errorf("%w: users", apperrors.ErrNoDataForStatistic)
	}
	types := make([]string, 0, table.Len())
	for _, trip := range table.Trips {
		if !domain.IsMissing(trip.UserType) {
			types = append(types, trip.UserType)
		}
	}
	return domain.UserStats{
		UserTypes: domain.Tally(types),
		Gender:    a.genderStats(table),
		BirthYear: a.birthYearStats(table),
	}, nil
}

func (a *Aggregator) genderStats(table domain.Table) domain.GenderStats {
	if !table.Schema.HasGender {
		return domain.GenderStats{Status: domain.FieldAbsent}
	}
	values := make([]string, 0, table.Len())
	for _, trip := range table.Trips {
		if !domain.IsMissing(trip.Gender) {
			values = append(values, trip.Gender)
		}
	}
	if len(values) == 0 {
		return domain.GenderStats{Status: domain.NoData}
	}
	return domain.GenderStats{Status: domain.Available, Counts: domain.Tally(values)}
}

func (a *Aggregator) birthYearStats(table domain.Table) domain.BirthYearStats {
	if !table.Schema.HasBirthYear {
		return domain.BirthYearStats{Status: domain.FieldAbsent}
	}
	years := make([]float64, 0, table.Len())
	earliest, latest := math.Inf(1), math.Inf(-1)
	for _, trip := range table.Trips {
		v, ok := domain.CoerceNumber(trip.BirthYear)
		if !ok {
			continue
		}
		years = append(years, v)
		earliest = math.Min(earliest, v)
		latest = math.Max(latest, v)
	}
	common, _, ok := domain.Mode(years)
	if !ok {
		return domain.BirthYearStats{Status: domain.NoData}
	}
	return domain.BirthYearStats{
		Status:     domain.Available,
		Earliest:   int(earliest),
		MostRecent: int(latest),
		MostCommon: int(common),
	}
}
