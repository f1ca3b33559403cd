package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type RunInput struct {
	Start match.Season
	End   match.Season
	// Write persists tables and the combined dataset; false is a dry run.
	Write      bool
	MaxWorkers int
}

type RunResult struct {
	Seasons      []SeasonResult `json:"seasons"`
	SeasonCount  int            `json:"season_count"`
	MatchCount   int            `json:"match_count"`
	WrittenCount int            `json:"written_count"`
	WorkerCount  int            `json:"worker_count"`
	DryRun       bool           `json:"dry_run"`
}

type SeasonResult struct {
	Table      standing.Table `json:"table"`
	Matches    int            `json:"matches"`
	Written    bool           `json:"written"`
	DurationMs int64          `json:"duration_ms"`
}

type StandingsService struct {
	combine *CombineService
	source  match.Source
	sink    standing.Sink
	logger  *logging.Logger
}

func NewStandingsService(combine *CombineService, source match.Source, sink standing.Sink, logger *logging.Logger) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsService{
		combine: combine,
		source:  source,
		sink:    sink,
		logger:  logger,
	}
}

// Run combines the season range, builds one ranked table per season and, in
// write mode, hands every table to the sink in season order. Tables are only
// persisted once every season has been built.
func (s *StandingsService) Run(ctx context.Context, input RunInput) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.Run",
		attribute.Int("season.start", int(input.Start)),
		attribute.Int("season.end", int(input.End)),
		attribute.Bool("write", input.Write),
	)
	defer span.End()

	result, err := s.run(ctx, input)
	recordSpanError(span, err)
	return result, err
}

func (s *StandingsService) run(ctx context.Context, input RunInput) (RunResult, error) {
	if input.Start > input.End {
		return RunResult{}, fmt.Errorf("%w: season start %d is after end %d", ErrInvalidInput, input.Start, input.End)
	}
	if s.combine == nil {
		return RunResult{}, fmt.Errorf("%w: combiner is not configured", ErrDependencyUnavailable)
	}
	if input.Write && s.sink == nil {
		return RunResult{}, fmt.Errorf("%w: standings sink is not configured", ErrDependencyUnavailable)
	}

	workerCount := input.MaxWorkers
	if workerCount <= 0 {
		workerCount = 1
	}

	records, err := s.combine.Combine(ctx, input.Start, input.End)
	if err != nil {
		return RunResult{}, fmt.Errorf("combine seasons: %w", err)
	}

	_, groups := match.GroupBySeason(records)
	seasons := match.Seasons(input.Start, input.End)

	built, err := s.buildAll(ctx, seasons, groups, workerCount)
	if err != nil {
		return RunResult{}, err
	}

	if input.Write {
		if err := s.combine.Write(ctx, records); err != nil {
			return RunResult{}, err
		}
	}

	result := RunResult{
		Seasons:     built,
		SeasonCount: len(built),
		MatchCount:  len(records),
		WorkerCount: workerCount,
		DryRun:      !input.Write,
	}

	for i := range result.Seasons {
		item := &result.Seasons[i]
		if !input.Write {
			s.logger.InfoContext(ctx, "standings built (dry run)",
				"season", item.Table.Season.Label(),
				"teams", len(item.Table.Rows),
				"matches", item.Matches,
			)
			continue
		}
		if err := s.sink.ReplaceBySeason(ctx, item.Table.Season, item.Table.Rows); err != nil {
			return RunResult{}, fmt.Errorf("%w: write standings season %s: %w", ErrDependencyUnavailable, item.Table.Season.Label(), err)
		}
		item.Written = true
		result.WrittenCount++
	}

	s.logger.InfoContext(ctx, "standings run finished",
		"seasons", result.SeasonCount,
		"matches", result.MatchCount,
		"written", result.WrittenCount,
		"dry_run", result.DryRun,
	)
	return result, nil
}

// RunSeason builds one season straight from the source and, when write is
// set, replaces that season's table in the sink.
func (s *StandingsService) RunSeason(ctx context.Context, season match.Season, write bool) (SeasonResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.RunSeason",
		attribute.Int("season", int(season)),
		attribute.Bool("write", write),
	)
	defer span.End()

	if write && s.sink == nil {
		err := fmt.Errorf("%w: standings sink is not configured", ErrDependencyUnavailable)
		recordSpanError(span, err)
		return SeasonResult{}, err
	}

	start := time.Now()
	table, err := s.BuildSeason(ctx, season)
	if err != nil {
		recordSpanError(span, err)
		return SeasonResult{}, err
	}
	result := SeasonResult{Table: table, Matches: table.Matches()}

	if write {
		if err := s.sink.ReplaceBySeason(ctx, season, table.Rows); err != nil {
			err = fmt.Errorf("%w: write standings season %s: %w", ErrDependencyUnavailable, season.Label(), err)
			recordSpanError(span, err)
			return SeasonResult{}, err
		}
		result.Written = true
	}
	result.DurationMs = time.Since(start).Milliseconds()

	s.logger.InfoContext(ctx, "season standings built",
		"season", season.Label(),
		"teams", len(table.Rows),
		"written", result.Written,
	)
	return result, nil
}

// StoredSeason reads a season's table back from the sink.
func (s *StandingsService) StoredSeason(ctx context.Context, season match.Season) (standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.StoredSeason",
		attribute.Int("season", int(season)),
	)
	defer span.End()

	reader, ok := s.sink.(standing.Reader)
	if !ok {
		err := fmt.Errorf("%w: standings sink %T cannot read stored tables", ErrInvalidInput, s.sink)
		recordSpanError(span, err)
		return standing.Table{}, err
	}

	rows, err := reader.ListBySeason(ctx, season)
	if err != nil {
		if !errors.Is(err, standing.ErrNotStored) {
			err = fmt.Errorf("%w: %w", ErrDependencyUnavailable, err)
		}
		err = fmt.Errorf("read stored season %s: %w", season.Label(), err)
		recordSpanError(span, err)
		return standing.Table{}, err
	}
	return standing.Table{Season: season, Rows: rows}, nil
}

// BuildSeason builds one season straight from the source without combining.
func (s *StandingsService) BuildSeason(ctx context.Context, season match.Season) (standing.Table, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.BuildSeason",
		attribute.Int("season", int(season)),
	)
	defer span.End()

	if s.source == nil {
		return standing.Table{}, fmt.Errorf("%w: record source is not configured", ErrDependencyUnavailable)
	}

	records, err := s.source.ListBySeason(ctx, season)
	if err != nil {
		err = fmt.Errorf("load season %s: %w", season.Label(), err)
		recordSpanError(span, err)
		return standing.Table{}, err
	}

	tagged := make([]match.Record, 0, len(records))
	for _, r := range records {
		tagged = append(tagged, r.WithSeason(season))
	}

	table, err := standing.Build(season, tagged)
	if err != nil {
		err = fmt.Errorf("build season %s: %w", season.Label(), err)
		recordSpanError(span, err)
		return standing.Table{}, err
	}
	return table, nil
}

type seasonBuild struct {
	result SeasonResult
	err    error
}

func (s *StandingsService) buildAll(
	ctx context.Context,
	seasons []match.Season,
	groups map[match.Season][]match.Record,
	workerCount int,
) ([]SeasonResult, error) {
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	builds := make([]seasonBuild, len(seasons))

	var workers sync.WaitGroup
	for i, season := range seasons {
		i, season := i, season
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			if err := ctx.Err(); err != nil {
				builds[i].err = err
				return
			}

			records := groups[season]
			table, err := standing.Build(season, records)
			if err != nil {
				builds[i].err = fmt.Errorf("build season %s: %w", season.Label(), err)
				return
			}
			builds[i].result = SeasonResult{
				Table:      table,
				Matches:    len(records),
				DurationMs: time.Since(start).Milliseconds(),
			}
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit season build to worker pool: %w", err)
		}
	}
	workers.Wait()

	out := make([]SeasonResult, 0, len(builds))
	for _, b := range builds {
		if b.err != nil {
			return nil, b.err
		}
		out = append(out, b.result)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Table.Season < out[j].Table.Season
	})
	return out, nil
}
