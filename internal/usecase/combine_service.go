package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
)

// CombinedWriter persists the concatenated dataset.
type CombinedWriter interface {
	WriteCombined(ctx context.Context, records []match.Record) error
}

type CombineService struct {
	source     match.Source
	writer     CombinedWriter
	maxWorkers int
	logger     *logging.Logger
}

// NewCombineService builds the combiner. writer may be nil when the combined
// dataset is never persisted.
func NewCombineService(source match.Source, writer CombinedWriter, maxWorkers int, logger *logging.Logger) *CombineService {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &CombineService{
		source:     source,
		writer:     writer,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// Combine loads every season in [start, end] and concatenates them in season
// order, keeping source order within a season. Any failed season aborts the
// whole call.
func (s *CombineService) Combine(ctx context.Context, start, end match.Season) ([]match.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CombineService.Combine",
		attribute.Int("season.start", int(start)),
		attribute.Int("season.end", int(end)),
	)
	defer span.End()

	if start > end {
		return nil, fmt.Errorf("%w: season start %d is after end %d", ErrInvalidInput, start, end)
	}
	if s.source == nil {
		return nil, fmt.Errorf("%w: record source is not configured", ErrDependencyUnavailable)
	}

	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	seasons := match.Seasons(start, end)
	mapper := iter.Mapper[match.Season, []match.Record]{MaxGoroutines: s.maxWorkers}
	loaded, err := mapper.MapErr(seasons, func(season *match.Season) ([]match.Record, error) {
		records, err := s.loadSeason(loadCtx, *season)
		if err != nil {
			cancel()
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		err = firstSeasonError(err)
		recordSpanError(span, err)
		return nil, err
	}

	total := 0
	for _, records := range loaded {
		total += len(records)
	}
	out := make([]match.Record, 0, total)
	for i, records := range loaded {
		for _, r := range records {
			out = append(out, r.WithSeason(seasons[i]))
		}
	}

	s.logger.InfoContext(ctx, "seasons combined",
		"start", start.Label(),
		"end", end.Label(),
		"seasons", len(seasons),
		"records", len(out),
	)
	return out, nil
}

// Write persists a combined dataset through the configured writer.
func (s *CombineService) Write(ctx context.Context, records []match.Record) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.CombineService.Write")
	defer span.End()

	if s.writer == nil {
		return fmt.Errorf("%w: combined writer is not configured", ErrDependencyUnavailable)
	}
	if err := s.writer.WriteCombined(ctx, records); err != nil {
		err = fmt.Errorf("%w: write combined dataset: %w", ErrDependencyUnavailable, err)
		recordSpanError(span, err)
		return err
	}
	return nil
}

func (s *CombineService) loadSeason(ctx context.Context, season match.Season) ([]match.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, seasonLoadError{season: season, err: err}
	}

	records, err := s.source.ListBySeason(ctx, season)
	if err != nil {
		if !errors.Is(err, match.ErrSourceUnavailable) && ctx.Err() == nil {
			err = fmt.Errorf("%w: %w", match.ErrSourceUnavailable, err)
		}
		return nil, seasonLoadError{season: season, err: err}
	}
	return records, nil
}

type seasonLoadError struct {
	season match.Season
	err    error
}

func (e seasonLoadError) Error() string {
	return fmt.Sprintf("load season %s: %v", e.season.Label(), e.err)
}

func (e seasonLoadError) Unwrap() error {
	return e.err
}

// firstSeasonError picks the earliest season that failed on its own,
// skipping loads that only observed the cancellation it triggered.
func firstSeasonError(joined error) error {
	var first, canceled *seasonLoadError
	for _, err := range flattenErrors(joined) {
		var loadErr seasonLoadError
		if !errors.As(err, &loadErr) {
			continue
		}
		if errors.Is(loadErr.err, context.Canceled) {
			if canceled == nil || loadErr.season < canceled.season {
				canceled = &loadErr
			}
			continue
		}
		if first == nil || loadErr.season < first.season {
			first = &loadErr
		}
	}
	switch {
	case first != nil:
		return *first
	case canceled != nil:
		return *canceled
	default:
		return joined
	}
}

func flattenErrors(err error) []error {
	multi, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []error{err}
	}
	out := make([]error, 0)
	for _, inner := range multi.Unwrap() {
		out = append(out, flattenErrors(inner)...)
	}
	return out
}
