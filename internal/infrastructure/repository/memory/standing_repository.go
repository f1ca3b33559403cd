package memory

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
)

type StandingRepository struct {
	mu           sync.RWMutex
	rowsBySeason map[match.Season][]standing.Row
}

func NewStandingRepository() *StandingRepository {
	return &StandingRepository{rowsBySeason: make(map[match.Season][]standing.Row)}
}

func (r *StandingRepository) ReplaceBySeason(_ context.Context, season match.Season, rows []standing.Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]standing.Row, 0, len(rows))
	out = append(out, rows...)
	r.rowsBySeason[season] = out

	return nil
}

func (r *StandingRepository) ListBySeason(_ context.Context, season match.Season) ([]standing.Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows, ok := r.rowsBySeason[season]
	if !ok {
		return nil, errors.Wrapf(standing.ErrNotStored, "season %s", season.Label())
	}
	out := make([]standing.Row, 0, len(rows))
	out = append(out, rows...)

	return out, nil
}
