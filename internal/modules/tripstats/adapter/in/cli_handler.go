package in

import (
	"context"

	"bikeshare/internal/modules/tripstats/dto"
	tripin "bikeshare/internal/modules/tripstats/port/in"
)

type CLIHandler struct {
	usecase tripin.Usecase
}

func NewCLIHandler(usecase tripin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Cities(ctx context.Context) ([]dto.CityOutput, error) {
	return h.usecase.Cities(ctx)
}

func (h CLIHandler) Selectors(ctx context.Context) (dto.SelectorsOutput, error) {
	return h.usecase.Selectors(ctx)
}

func (h CLIHandler) Analyze(ctx context.Context, city, month, day string) (dto.AnalysisOutput, error) {
	return h.usecase.Analyze(ctx, dto.AnalyzeInput{City: city, Month: month, Day: day})
}
