package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"StandingsScraper/internal/app"
	"StandingsScraper/internal/domain"
	"StandingsScraper/internal/usecase"
)

func scrapeCmd(flags *globalFlags) *cobra.Command {
	var (
		req   usecase.ScrapeRequest
		views []string
	)
	cmd := &cobra.Command{
		Use:   "scrape [round]",
		Short: "Fetch standings and merge them into the season history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				round, err := strconv.Atoi(args[0])
				if err != nil || round <= 0 {
					return fmt.Errorf("round must be a positive integer, got %q", args[0])
				}
				req.Round = round
			}
			req.Views = parseViews(views)

			return run(flags, func(ctx context.Context, application *app.Application, logger *slog.Logger) error {
				res, err := application.Scrape(ctx, req)
				if err != nil {
					return err
				}
				logger.Info("scrape finished", "season", res.Season, "snapshots", len(res.Snapshots))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Source, "source", "", "footmercato or transfermarkt")
	cmd.Flags().StringVarP(&req.Season, "season", "s", "", "season, e.g. 2025 or 2025/2026")
	cmd.Flags().IntVarP(&req.Min, "min", "m", 0, "first matchday (transfermarkt)")
	cmd.Flags().IntVarP(&req.Max, "max", "M", 0, "last matchday (transfermarkt)")
	cmd.Flags().StringSliceVar(&views, "view", nil, "footmercato views: general, home, away")
	cmd.Flags().BoolVar(&req.Fresh, "fresh", false, "discard the season before storing the first snapshot")
	cmd.Flags().BoolVar(&req.Cumulative, "cumulative", false, "fetch windows 1..r instead of single matchdays")
	cmd.Flags().BoolVar(&req.Final, "final", false, "mark the last window as final standings")
	return cmd
}

func watchCmd(flags *globalFlags) *cobra.Command {
	var (
		req   usecase.ScrapeRequest
		views []string
		every time.Duration
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Scrape on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Views = parseViews(views)
			return run(flags, func(ctx context.Context, application *app.Application, _ *slog.Logger) error {
				return application.Watch(ctx, req, every)
			})
		},
	}
	cmd.Flags().StringVar(&req.Source, "source", "", "footmercato or transfermarkt")
	cmd.Flags().StringVarP(&req.Season, "season", "s", "", "season, e.g. 2025 or 2025/2026")
	cmd.Flags().IntVarP(&req.Min, "min", "m", 0, "first matchday (transfermarkt)")
	cmd.Flags().IntVarP(&req.Max, "max", "M", 0, "last matchday (transfermarkt)")
	cmd.Flags().StringSliceVar(&views, "view", nil, "footmercato views: general, home, away")
	cmd.Flags().DurationVar(&every, "every", 0, "interval between runs (default schedule.interval)")
	return cmd
}

func repairCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "repair",
		Short: "Backfill missing rounds and synthetic dates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, func(ctx context.Context, application *app.Application, _ *slog.Logger) error {
				report, err := application.Repair(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "rounds filled: %d, dates filled: %d, matchdays filled: %d\n",
					report.RoundsFilled, report.DatesFilled, report.MatchdaysFilled)
				return nil
			})
		},
	}
}

func checkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Summarize the stored seasons",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, func(ctx context.Context, application *app.Application, _ *slog.Logger) error {
				summaries, err := application.Check(ctx)
				if err != nil {
					return err
				}
				app.RenderSummaries(os.Stdout, summaries)
				return nil
			})
		},
	}
}

func synthesizeCmd(flags *globalFlags) *cobra.Command {
	var req usecase.SynthesizeRequest
	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Append synthetic evolution snapshots for chart testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(flags, func(ctx context.Context, application *app.Application, _ *slog.Logger) error {
				count, err := application.Synthesize(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stdout, "created %d synthetic snapshots\n", count)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Season, "season", "", "season key (default current season)")
	cmd.Flags().IntVar(&req.From, "from", 12, "first round")
	cmd.Flags().IntVar(&req.To, "to", 16, "last round")
	cmd.Flags().IntVar(&req.Top, "top", usecase.DefaultSyntheticTop, "number of leading clubs")
	cmd.Flags().Uint64Var(&req.Seed, "seed", 0, "random seed (0 picks one)")
	return cmd
}

func parseViews(values []string) []domain.SnapshotType {
	var views []domain.SnapshotType
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			views = append(views, domain.SnapshotType(v))
		}
	}
	return views
}
