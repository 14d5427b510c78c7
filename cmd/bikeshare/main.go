package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bikeshare/internal/bootstrap"
	tripsinadapter "bikeshare/internal/modules/tripstats/adapter/in"
	"bikeshare/internal/platform/config"
	"bikeshare/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type globalFlags struct {
	dataDir    string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:           "bikeshare",
		Short:         "Explore US bike share trip data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "directory holding the city datasets (default .)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default <data-dir>/bikeshare.yaml)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error")

	root.AddCommand(newExploreCmd(&flags))
	root.AddCommand(newStatsCmd(&flags))
	root.AddCommand(newCitiesCmd(&flags))
	return root
}

// loadApp reads the configuration and wires the application. When quiet is
// set and no log file is configured, log records are dropped so they do not
// draw over the terminal UI.
func loadApp(flags *globalFlags, quiet bool) (*bootstrap.App, func() error, error) {
	cfg, err := config.Load(config.Options{
		DataDir:    flags.dataDir,
		ConfigPath: flags.configPath,
		LogLevel:   flags.logLevel,
	})
	if err != nil {
		return nil, nil, err
	}

	var logger *slog.Logger
	closer := func() error { return nil }
	if quiet && cfg.Log.File == "" {
		logger = logging.Discard()
	} else {
		var sink io.Writer
		sink, closer, err = logging.Open(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		logger = logging.New(sink, cfg.Log.Level, cfg.Log.Format)
	}

	app, err := bootstrap.New(cfg, logger)
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	return app, closer, nil
}

func newExploreCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Pick a city, month and day interactively",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, closer, err := loadApp(flags, true)
			if err != nil {
				return err
			}
			defer closer()
			return bootstrap.RunTUI(app)
		},
	}
}

func newStatsCmd(flags *globalFlags) *cobra.Command {
	var city, month, day string
	var raw int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print trip statistics for one city",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if raw < 0 {
				return fmt.Errorf("--raw must not be negative")
			}
			app, closer, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closer()

			out, err := app.TripsCLI.Analyze(context.Background(), city, month, day)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if err := tripsinadapter.RenderText(w, out); err != nil {
				return err
			}
			if raw > 0 {
				rows, _ := tripsinadapter.RawPage(out.Rows, 0, raw)
				if len(rows) == 0 {
					_, _ = fmt.Fprintln(w, "\nNo raw rows for this selection.")
					return nil
				}
				_, _ = fmt.Fprintf(w, "\nRaw rows 1-%d of %d\n%s\n", len(rows), len(out.Rows), tripsinadapter.RenderRows(out.Columns, rows))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&city, "city", "", "chicago|new york city|washington")
	cmd.Flags().StringVar(&month, "month", "all", "all|january..june")
	cmd.Flags().StringVar(&day, "day", "all", "all|monday..sunday")
	cmd.Flags().IntVar(&raw, "raw", 0, "also print the first N matched raw rows")
	_ = cmd.MarkFlagRequired("city")
	return cmd
}

func newCitiesCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "cities",
		Short: "List cities and their data sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, closer, err := loadApp(flags, false)
			if err != nil {
				return err
			}
			defer closer()

			cities, err := app.TripsCLI.Cities(context.Background())
			if err != nil {
				return err
			}
			for _, c := range cities {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", c.Name, c.Source)
			}
			return nil
		},
	}
}
