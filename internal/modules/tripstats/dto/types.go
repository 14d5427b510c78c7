package dto

import "time"

const (
	StatusAvailable   = "available"
	StatusNoData      = "no_data"
	StatusFieldAbsent = "field_absent"
)

type AnalyzeInput struct {
	City  string
	Month string
	Day   string
}

type CityOutput struct {
	Name   string
	Source string
}

// SelectorsOutput lists the accepted values for each analysis selector,
// "all" first where it applies.
type SelectorsOutput struct {
	Cities []CityOutput
	Months []string
	Days   []string
}

// StatStatus tells a computed statistic apart from one that could not be computed.
type StatStatus struct {
	Status  string
	Reason  string
	Elapsed time.Duration
}

type TimeStatsOutput struct {
	StatStatus
	Month     int
	MonthName string
	Weekday   string
	Hour      int
}

type StationStatsOutput struct {
	StatStatus
	StartStation string
	EndStation   string
	Trip         string
}

type DurationStatsOutput struct {
	StatStatus
	TotalSeconds  float64
	TotalHours    int64
	TotalMinutes  int64
	MeanSeconds   float64
	MeanMinutes   int64
	MeanRemainder int64
	ValidRows     int
	SkippedRows   int
}

type CountOutput struct {
	Value string
	Count int
}

type GenderOutput struct {
	Status string
	Reason string
	Counts []CountOutput
}

type BirthYearOutput struct {
	Status     string
	Reason     string
	Earliest   int
	MostRecent int
	MostCommon int
}

type UserStatsOutput struct {
	StatStatus
	UserTypes []CountOutput
	Gender    GenderOutput
	BirthYear BirthYearOutput
}

type AnalysisOutput struct {
	RunID        string
	City         string
	Month        string
	Day          string
	SourcePath   string
	SourceFormat string
	SourceDigest string
	TotalRows    int
	MatchedRows  int
	LoadElapsed  time.Duration

	Time      TimeStatsOutput
	Stations  StationStatsOutput
	Durations DurationStatsOutput
	Users     UserStatsOutput

	// Columns and Rows hold the matched source records for raw display.
	Columns []string
	Rows    [][]string
}
