package memory

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/match"
)

type MatchRepository struct {
	mu              sync.RWMutex
	recordsBySeason map[match.Season][]match.Record
}

func NewMatchRepository(records []match.Record) *MatchRepository {
	recordsBySeason := make(map[match.Season][]match.Record)
	for _, item := range records {
		recordsBySeason[item.Season] = append(recordsBySeason[item.Season], item)
	}

	return &MatchRepository{recordsBySeason: recordsBySeason}
}

// ListBySeason returns the season's records in insertion order. A season
// that was never stored is unavailable, an empty stored season is not.
func (r *MatchRepository) ListBySeason(_ context.Context, season match.Season) ([]match.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records, ok := r.recordsBySeason[season]
	if !ok {
		return nil, errors.Wrapf(match.ErrSourceUnavailable, "season %s not stored", season.Label())
	}
	out := make([]match.Record, 0, len(records))
	out = append(out, records...)

	return out, nil
}

func (r *MatchRepository) PutSeason(_ context.Context, season match.Season, records []match.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]match.Record, 0, len(records))
	for _, item := range records {
		out = append(out, item.WithSeason(season))
	}
	r.recordsBySeason[season] = out
}
