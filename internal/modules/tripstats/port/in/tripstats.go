package in

import (
	"context"

	"bikeshare/internal/modules/tripstats/dto"
)

type Usecase interface {
	Cities(ctx context.Context) ([]dto.CityOutput, error)
	Selectors(ctx context.Context) (dto.SelectorsOutput, error)
	Analyze(ctx context.Context, input dto.AnalyzeInput) (dto.AnalysisOutput, error)
}
