package standing

import (
	"context"
	"errors"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

var ErrNotStored = errors.New("no stored table for season")

// Sink persists a ranked table for one season.
type Sink interface {
	ReplaceBySeason(ctx context.Context, season match.Season, rows []Row) error
}

// Reader is implemented by sinks that can serve a persisted table back in
// place order. A season never written yields ErrNotStored.
type Reader interface {
	ListBySeason(ctx context.Context, season match.Season) ([]Row, error)
}
