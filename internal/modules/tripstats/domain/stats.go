package domain

import (
	"math"
	"strconv"
	"strings"
)

type Availability string

const (
	Available   Availability = "available"
	NoData      Availability = "no_data"
	FieldAbsent Availability = "field_absent"
)

type TimeStats struct {
	Month   int
	Weekday string
	Hour    int
}

type StationStats struct {
	StartStation string
	EndStation   string
	Trip         string
}

type DurationStats struct {
	TotalSeconds float64
	TotalHours   int64
	TotalMinutes int64
	MeanSeconds  float64
	MeanMinutes  int64
	// MeanRemainder is the whole seconds left over after MeanMinutes.
	MeanRemainder int64
	Valid         int
	Skipped       int
}

type GenderStats struct {
	Status Availability
	Counts []Count
}

type BirthYearStats struct {
	Status     Availability
	Earliest   int
	MostRecent int
	MostCommon int
}

type UserStats struct {
	UserTypes []Count
	Gender    GenderStats
	BirthYear BirthYearStats
}

// CoerceNumber parses a numeric cell. Missing, malformed and non-finite
// values report false.
func CoerceNumber(raw string) (float64, bool) {
	if IsMissing(raw) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// SplitHours decomposes seconds into whole hours and the remaining whole minutes.
func SplitHours(seconds float64) (hours, minutes int64) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0, 0
	}
	hours = int64(math.Floor(seconds / 3600))
	minutes = int64(math.Floor(math.Mod(seconds, 3600) / 60))
	return hours, minutes
}

// SplitMinutes decomposes seconds into whole minutes and the remaining whole seconds.
func SplitMinutes(seconds float64) (minutes, rest int64) {
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0, 0
	}
	minutes = int64(math.Floor(seconds / 60))
	rest = int64(math.Floor(math.Mod(seconds, 60)))
	return minutes, rest
}
