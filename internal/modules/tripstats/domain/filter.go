package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "bikeshare/internal/platform/errors"
)

// All disables a filter dimension.
const All = "all"

// FilterMonths are the selectable months; the index plus one is the calendar month.
var FilterMonths = []string{"january", "february", "march", "april", "may", "june"}

// FilterDays are the selectable weekdays in input form.
var FilterDays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var weekdayByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// Filter restricts trips by derived month and weekday. Zero values mean all.
type Filter struct {
	Month   int
	Weekday string
}

func ParseFilter(month, day string) (Filter, error) {
	m, err := ParseMonth(month)
	if err != nil {
		return Filter{}, err
	}
	d, err := ParseDay(day)
	if err != nil {
		return Filter{}, err
	}
	return Filter{Month: m, Weekday: d}, nil
}

// ParseMonth maps "all" to 0 and january..june to 1..6.
func ParseMonth(raw string) (int, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == All {
		return 0, nil
	}
	for i, name := range FilterMonths {
		if value == name {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("%w: month %q (want all or january..june)", apperrors.ErrDomainValidation, raw)
}

// ParseDay maps "all" to "" and a weekday to its canonical name, e.g. "Monday".
func ParseDay(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == All {
		return "", nil
	}
	wd, ok := weekdayByName[value]
	if !ok {
		return "", fmt.Errorf("%w: day %q (want all or monday..sunday)", apperrors.ErrDomainValidation, raw)
	}
	return wd.String(), nil
}

func (f Filter) Matches(t Trip) bool {
	if f.Month != 0 && t.Month != f.Month {
		return false
	}
	if f.Weekday != "" && t.Weekday != f.Weekday {
		return false
	}
	return true
}

func (f Filter) IsAll() bool {
	return f.Month == 0 && f.Weekday == ""
}

func (f Filter) MonthLabel() string {
	if f.Month == 0 {
		return All
	}
	return FilterMonths[f.Month-1]
}

func (f Filter) DayLabel() string {
	if f.Weekday == "" {
		return All
	}
	return f.Weekday
}
