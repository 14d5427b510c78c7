package bootstrap

import (
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	tripsinadapter "bikeshare/internal/modules/tripstats/adapter/in"
	tripsoutadapter "bikeshare/internal/modules/tripstats/adapter/out"
	tripsservice "bikeshare/internal/modules/tripstats/service"
	tripsusecase "bikeshare/internal/modules/tripstats/usecase"
	"bikeshare/internal/platform/clock"
	"bikeshare/internal/platform/config"
	"bikeshare/internal/platform/id"
	uiapp "bikeshare/internal/ui/app"
)

type App struct {
	TripsCLI    tripsinadapter.CLIHandler
	RawPageSize int
}

func New(cfg config.Config, logger *slog.Logger) (*App, error) {
	catalog, err := tripsoutadapter.NewConfigCatalog(cfg.Sources)
	if err != nil {
		return nil, fmt.Errorf("new catalog: %w", err)
	}
	sqliteSource, err := tripsoutadapter.NewSQLiteSource(cfg.SQLiteTable)
	if err != nil {
		return nil, fmt.Errorf("new sqlite source: %w", err)
	}
	source := tripsoutadapter.NewSourceRouter(tripsoutadapter.NewCSVSource(), sqliteSource)

	tripsUC := tripsusecase.NewInteractor(
		tripsservice.NewLoaderService(catalog, source),
		tripsservice.NewFilterEngine(),
		tripsservice.NewAggregator(),
		clock.SystemClock{},
		id.UUID{},
		logger,
	)

	return &App{
		TripsCLI:    tripsinadapter.NewCLIHandler(tripsUC),
		RawPageSize: cfg.RawPageSize,
	}, nil
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.TripsCLI, app.RawPageSize)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
