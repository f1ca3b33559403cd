package match

import (
	"context"
	"errors"
)

var ErrSourceUnavailable = errors.New("season records unavailable")

// Source yields the fixtures of one season in file order.
type Source interface {
	ListBySeason(ctx context.Context, season Season) ([]Record, error)
}
