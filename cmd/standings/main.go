// Command standings scrapes Ligue 1 standings into a season history and
// maintains the stored data.
//
// Usage:
//
//	standings scrape                         # footmercato general table
//	standings scrape 7                       # transfermarkt matchday 7
//	standings scrape --source transfermarkt --min 1 --max 34 --season 2024
//	standings watch --every 6h
//	standings repair --dataset seasons
//	standings check --dataset seasons
//	standings synthesize --season 2025/2026 --from 12 --to 16
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"StandingsScraper/internal/app"
	"StandingsScraper/internal/config"
	"StandingsScraper/internal/infrastructure/fetch"
	"StandingsScraper/internal/logging"
)

type globalFlags struct {
	configPath string
	logLevel   string
	dataset    string
}

func main() {
	_ = godotenv.Load(".env")

	flags := &globalFlags{}
	root := &cobra.Command{
		Use:           "standings",
		Short:         "Ligue 1 standings scraper and history maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config file (default $STANDINGS_CONFIG)")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "error, warn, info or debug")
	root.PersistentFlags().StringVar(&flags.dataset, "dataset", "", "history dataset name")

	root.AddCommand(scrapeCmd(flags))
	root.AddCommand(watchCmd(flags))
	root.AddCommand(repairCmd(flags))
	root.AddCommand(checkCmd(flags))
	root.AddCommand(synthesizeCmd(flags))

	if err := root.Execute(); err != nil {
		var fetchErr *fetch.Error
		if errors.As(err, &fetchErr) {
			fmt.Fprintf(os.Stderr, "fetch failed for %s: %v\n", fetchErr.URL, err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

// run loads configuration, wires the application and hands it to fn.
func run(flags *globalFlags, fn func(ctx context.Context, application *app.Application, logger *slog.Logger) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg := config.Load(flags.configPath)
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := logging.New(cfg.Logging.Level)

	application, err := app.New(ctx, cfg, flags.dataset, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := application.Close(); closeErr != nil {
			logger.Warn("close storage", "error", closeErr)
		}
	}()

	return fn(ctx, application, logger)
}
