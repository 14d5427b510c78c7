package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "bikeshare/internal/platform/errors"
)

const (
	ColumnStartTime    = "Start Time"
	ColumnEndTime      = "End Time"
	ColumnTripDuration = "Trip Duration"
	ColumnStartStation = "Start Station"
	ColumnEndStation   = "End Station"
	ColumnUserType     = "User Type"
	ColumnGender       = "Gender"
	ColumnBirthYear    = "Birth Year"
)

var RequiredColumns = []string{
	ColumnStartTime,
	ColumnEndTime,
	ColumnTripDuration,
	ColumnStartStation,
	ColumnEndStation,
	ColumnUserType,
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
}

// TimeParts are the fields derived from a trip's start time.
type TimeParts struct {
	Month   int
	Weekday string
	Hour    int
}

// DeriveTimeParts reads month, weekday name and hour from the wall clock of t.
func DeriveTimeParts(t time.Time) TimeParts {
	return TimeParts{Month: int(t.Month()), Weekday: t.Weekday().String(), Hour: t.Hour()}
}

func ParseTimestamp(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", apperrors.ErrMalformedTimestamp, raw)
}

// IsMissing reports whether a raw cell carries no value.
func IsMissing(raw string) bool {
	value := strings.TrimSpace(raw)
	return value == "" || strings.EqualFold(value, "nan")
}

type Trip struct {
	StartTime    time.Time
	EndTime      string
	Duration     string
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    string
	TimeParts
	// Record is the source row as read, aligned with Schema.Columns.
	Record []string
}

// Label is the combined station pair used for the most frequent trip.
func (t Trip) Label() string {
	return t.StartStation + " to " + t.EndStation
}

type Schema struct {
	Columns      []string
	HasGender    bool
	HasBirthYear bool
}

type SourceInfo struct {
	Path   string
	Format string
	Digest uint64
}

type Table struct {
	City   City
	Schema Schema
	Source SourceInfo
	Trips  []Trip
}

func (t Table) Len() int { return len(t.Trips) }

// Where returns a new table holding the trips for which keep is true, in order.
func (t Table) Where(keep func(Trip) bool) Table {
	out := t
	out.Trips = make([]Trip, 0, len(t.Trips))
	for _, trip := range t.Trips {
		if keep(trip) {
			out.Trips = append(out.Trips, trip)
		}
	}
	return out
}

// RawTable is a header plus string records as produced by a record source.
type RawTable struct {
	Columns []string
	Records [][]string
	Source  SourceInfo
}
