package cached

import (
	"context"
	"time"

	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/platform/cache"
)

// Source memoises season loads so a combine and a later per-season build
// read each file once. Failed loads are retried on the next call.
type Source struct {
	next  match.Source
	store *cache.Store[match.Season, []match.Record]
}

func NewSource(next match.Source, ttl time.Duration) *Source {
	return &Source{
		next:  next,
		store: cache.NewStore[match.Season, []match.Record](ttl),
	}
}

func (s *Source) ListBySeason(ctx context.Context, season match.Season) ([]match.Record, error) {
	records, err := s.store.GetOrLoad(ctx, season, func(ctx context.Context) ([]match.Record, error) {
		return s.next.ListBySeason(ctx, season)
	})
	if err != nil {
		return nil, err
	}

	out := make([]match.Record, len(records))
	copy(out, records)
	return out, nil
}

func (s *Source) Forget(ctx context.Context, season match.Season) {
	s.store.Delete(ctx, season)
}
