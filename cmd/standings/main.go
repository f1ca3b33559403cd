package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/riskibarqy/league-standings/internal/app"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/observability"
	idgen "github.com/riskibarqy/league-standings/internal/platform/id"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	season int
	quiet  bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	cfg, opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.LogFormat, cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, logger, os.Stdout); err != nil {
		logger.Error("standings job failed", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg config.Config) (config.Config, options, error) {
	var opts options

	fs := flag.NewFlagSet("standings", flag.ContinueOnError)
	fs.IntVar(&cfg.SeasonStart, "start", cfg.SeasonStart, "first season id (inclusive)")
	fs.IntVar(&cfg.SeasonEnd, "end", cfg.SeasonEnd, "last season id (inclusive)")
	fs.BoolVar(&cfg.Write, "write", cfg.Write, "persist tables and the combined dataset")
	fs.StringVar(&cfg.Sink, "sink", cfg.Sink, "standings sink: csv, json, postgres or memory")
	fs.StringVar(&cfg.Source, "source", cfg.Source, "record source: csv or memory")
	fs.IntVar(&cfg.MaxWorkers, "workers", cfg.MaxWorkers, "seasons processed concurrently")
	fs.IntVar(&opts.season, "season", -1, "build a single season without combining")
	fs.BoolVar(&cfg.ReadStored, "stored", false, "print the season table stored in the sink (requires -season)")
	fs.BoolVar(&opts.quiet, "quiet", false, "do not print tables to stdout")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, options{}, err
	}
	if cfg.ReadStored && opts.season < 0 {
		return config.Config{}, options{}, fmt.Errorf("-stored requires -season")
	}

	cfg.Sink = strings.ToLower(strings.TrimSpace(cfg.Sink))
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	if err := cfg.Validate(); err != nil {
		return config.Config{}, options{}, err
	}
	return cfg, opts, nil
}

func run(ctx context.Context, cfg config.Config, opts options, logger *logging.Logger, stdout io.Writer) error {
	runID, err := idgen.NewRandomGenerator("run_").NewID()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}
	logger = logger.With("run_id", runID)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return fmt.Errorf("init uptrace: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return fmt.Errorf("init pyroscope: %w", err)
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	job, err := app.NewJob(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("build job: %w", err)
	}
	defer func() {
		if err := job.Close(); err != nil {
			logger.Warn("close job", "error", err)
		}
	}()

	if cfg.ReadStored {
		table, err := job.Standings.StoredSeason(ctx, match.Season(opts.season))
		if err != nil {
			return err
		}
		if !opts.quiet {
			return printTable(stdout, table)
		}
		return nil
	}

	if opts.season >= 0 {
		season, err := job.Standings.RunSeason(ctx, match.Season(opts.season), cfg.Write)
		if err != nil {
			return err
		}
		logSeason(ctx, logger, season)
		if !opts.quiet {
			return printTable(stdout, season.Table)
		}
		return nil
	}

	result, err := job.Standings.Run(ctx, usecase.RunInput{
		Start:      match.Season(cfg.SeasonStart),
		End:        match.Season(cfg.SeasonEnd),
		Write:      cfg.Write,
		MaxWorkers: cfg.MaxWorkers,
	})
	if err != nil {
		return err
	}

	for _, season := range result.Seasons {
		logSeason(ctx, logger, season)
		if opts.quiet {
			continue
		}
		if err := printTable(stdout, season.Table); err != nil {
			return err
		}
	}
	return nil
}

func logSeason(ctx context.Context, logger *logging.Logger, season usecase.SeasonResult) {
	logger.InfoContext(ctx, "season standings",
		"season", season.Table.Season.Label(),
		"teams", len(season.Table.Rows),
		"matches", season.Matches,
		"leader", leader(season.Table),
		"written", season.Written,
	)
}

func leader(table standing.Table) string {
	if len(table.Rows) == 0 {
		return ""
	}
	return table.Rows[0].Team
}

func printTable(w io.Writer, table standing.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\n", table.Season.Label())
	fmt.Fprintln(tw, "Place\tTeam\tW\tD\tL\tGF\tGA\tGD\tPts\t")
	for _, row := range table.Rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t\n",
			row.Place, row.Team, row.Wins, row.Draws, row.Losses,
			row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points,
		)
	}
	fmt.Fprintln(tw)
	return tw.Flush()
}
