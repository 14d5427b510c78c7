package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"bikeshare/internal/modules/tripstats/domain"
	"bikeshare/internal/modules/tripstats/dto"
	tripin "bikeshare/internal/modules/tripstats/port/in"
	"bikeshare/internal/modules/tripstats/service"
	"bikeshare/internal/platform/clock"
	apperrors "bikeshare/internal/platform/errors"
	"bikeshare/internal/platform/id"
)

type Interactor struct {
	loader  *service.LoaderService
	filters *service.FilterEngine
	agg     *service.Aggregator
	clock   clock.Clock
	ids     id.Generator
	logger  *slog.Logger
}

func NewInteractor(loader *service.LoaderService, filters *service.FilterEngine, agg *service.Aggregator, clk clock.Clock, ids id.Generator, logger *slog.Logger) tripin.Usecase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interactor{loader: loader, filters: filters, agg: agg, clock: clk, ids: ids, logger: logger}
}

func (i *Interactor) Cities(ctx context.Context) ([]dto.CityOutput, error) {
	sources, err := i.loader.Sources(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CityOutput, 0, len(sources))
	for _, s := range sources {
		out = append(out, dto.CityOutput{Name: string(s.City), Source: s.Path})
	}
	return out, nil
}

func (i *Interactor) Selectors(ctx context.Context) (dto.SelectorsOutput, error) {
	cities, err := i.Cities(ctx)
	if err != nil {
		return dto.SelectorsOutput{}, err
	}
	return dto.SelectorsOutput{
		Cities: cities,
		Months: append([]string{domain.All}, domain.FilterMonths...),
		Days:   append([]string{domain.All}, domain.FilterDays...),
	}, nil
}

// Analyze validates the selectors, loads the city, filters it and computes
// every statistic group. A group that cannot be computed is reported through
// its status; only validation and load failures return an error.
func (i *Interactor) Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalysisOutput, error) {
	city, err := domain.ParseCity(input.City)
	if err != nil {
		return dto.AnalysisOutput{}, err
	}
	filter, err := domain.ParseFilter(input.Month, input.Day)
	if err != nil {
		return dto.AnalysisOutput{}, err
	}

	runID := i.ids.New()
	log := i.logger.With("run_id", runID, "city", string(city))

	started := i.clock.Now()
	table, err := i.loader.Load(ctx, city)
	if err != nil {
		log.Error("load failed", "error", err)
		return dto.AnalysisOutput{}, fmt.Errorf("load %s: %w", city, err)
	}
	loadElapsed := clock.Elapsed(i.clock, started)
	log.Info("records loaded",
		"rows", table.Len(),
		"source", table.Source.Path,
		"format", table.Source.Format,
		"digest", digest(table.Source.Digest),
		"elapsed_ms", loadElapsed.Milliseconds(),
	)

	filtered := i.filters.Apply(table, filter)
	log.Debug("filter applied", "month", filter.MonthLabel(), "day", filter.DayLabel(), "matched", filtered.Len())

	out := dto.AnalysisOutput{
		RunID:        runID,
		City:         string(city),
		Month:        filter.MonthLabel(),
		Day:          filter.DayLabel(),
		SourcePath:   table.Source.Path,
		SourceFormat: table.Source.Format,
		SourceDigest: digest(table.Source.Digest),
		TotalRows:    table.Len(),
		MatchedRows:  filtered.Len(),
		LoadElapsed:  loadElapsed,
		Columns:      table.Schema.Columns,
		Rows:         make([][]string, 0, filtered.Len()),
	}
	for _, trip := range filtered.Trips {
		out.Rows = append(out.Rows, trip.Record)
	}

	if out.Time, err = i.timeStats(filtered); err != nil {
		return dto.AnalysisOutput{}, err
	}
	if out.Stations, err = i.stationStats(filtered); err != nil {
		return dto.AnalysisOutput{}, err
	}
	if out.Durations, err = i.durationStats(filtered); err != nil {
		return dto.AnalysisOutput{}, err
	}
	if out.Users, err = i.userStats(filtered); err != nil {
		return dto.AnalysisOutput{}, err
	}

	log.Info("analysis completed",
		"month", out.Month,
		"day", out.Day,
		"matched", out.MatchedRows,
		"time", out.Time.Status,
		"stations", out.Stations.Status,
		"durations", out.Durations.Status,
		"users", out.Users.Status,
	)
	return out, nil
}

func (i *Interactor) timeStats(table domain.Table) (dto.TimeStatsOutput, error) {
	started := i.clock.Now()
	stats, err := i.agg.TimeStats(table)
	status, err := i.status(err, started)
	if err != nil || status.Status != dto.StatusAvailable {
		return dto.TimeStatsOutput{StatStatus: status}, err
	}
	return dto.TimeStatsOutput{
		StatStatus: status,
		Month:      stats.Month,
		MonthName:  monthName(stats.Month),
		Weekday:    stats.Weekday,
		Hour:       stats.Hour,
	}, nil
}

func (i *Interactor) stationStats(table domain.Table) (dto.StationStatsOutput, error) {
	started := i.clock.Now()
	stats, err := i.agg.StationStats(table)
	status, err := i.status(err, started)
	if err != nil || status.Status != dto.StatusAvailable {
		return dto.StationStatsOutput{StatStatus: status}, err
	}
	return dto.StationStatsOutput{
		StatStatus:   status,
		StartStation: stats.StartStation,
		EndStation:   stats.EndStation,
		Trip:         stats.Trip,
	}, nil
}

func (i *Interactor) durationStats(table domain.Table) (dto.DurationStatsOutput, error) {
	started := i.clock.Now()
	stats, err := i.agg.DurationStats(table)
	status, err := i.status(err, started)
	if err != nil {
		return dto.DurationStatsOutput{}, err
	}
	out := dto.DurationStatsOutput{StatStatus: status, ValidRows: stats.Valid, SkippedRows: stats.Skipped}
	if status.Status != dto.StatusAvailable {
		return out, nil
	}
	out.TotalSeconds = stats.TotalSeconds
	out.TotalHours = stats.TotalHours
	out.TotalMinutes = stats.TotalMinutes
	out.MeanSeconds = stats.MeanSeconds
	out.MeanMinutes = stats.MeanMinutes
	out.MeanRemainder = stats.MeanRemainder
	return out, nil
}

func (i *Interactor) userStats(table domain.Table) (dto.UserStatsOutput, error) {
	started := i.clock.Now()
	stats, err := i.agg.UserStats(table)
	status, err := i.status(err, started)
	if err != nil || status.Status != dto.StatusAvailable {
		return dto.UserStatsOutput{StatStatus: status}, err
	}
	out := dto.UserStatsOutput{
		StatStatus: status,
		UserTypes:  counts(stats.UserTypes),
		Gender: dto.GenderOutput{
			Status: string(stats.Gender.Status),
			Reason: optionalReason(stats.Gender.Status, domain.ColumnGender),
			Counts: counts(stats.Gender.Counts),
		},
		BirthYear: dto.BirthYearOutput{
			Status: string(stats.BirthYear.Status),
			Reason: optionalReason(stats.BirthYear.Status, domain.ColumnBirthYear),
		},
	}
	if stats.BirthYear.Status == domain.Available {
		out.BirthYear.Earliest = stats.BirthYear.Earliest
		out.BirthYear.MostRecent = stats.BirthYear.MostRecent
		out.BirthYear.MostCommon = stats.BirthYear.MostCommon
	}
	return out, nil
}

// status turns the aggregator outcome into a StatStatus, keeping any error
// that is not an unavailable-statistic condition. Absent optional columns are
// not errors here; the user group reports them through optionalReason.
func (i *Interactor) status(err error, started time.Time) (dto.StatStatus, error) {
	status := dto.StatStatus{Status: dto.StatusAvailable, Elapsed: clock.Elapsed(i.clock, started)}
	switch {
	case err == nil:
		return status, nil
	case errors.Is(err, apperrors.ErrNoDataForStatistic):
		status.Status = dto.StatusNoData
		status.Reason = err.Error()
		return status, nil
	default:
		return dto.StatStatus{}, err
	}
}

func optionalReason(status domain.Availability, column string) string {
	switch status {
	case domain.FieldAbsent:
		return fmt.Sprintf("%s: %s column not present in this dataset", apperrors.ErrOptionalFieldAbsent, column)
	case domain.NoData:
		return fmt.Sprintf("%s: %s has no values for the selected trips", apperrors.ErrNoDataForStatistic, column)
	default:
		return ""
	}
}

func counts(in []domain.Count) []dto.CountOutput {
	out := make([]dto.CountOutput, 0, len(in))
	for _, c := range in {
		out = append(out, dto.CountOutput{Value: c.Value, Count: c.Count})
	}
	return out
}

func monthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}

func digest(sum uint64) string {
	if sum == 0 {
		return ""
	}
	return strconv.FormatUint(sum, 16)
}
