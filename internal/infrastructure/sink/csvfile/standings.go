package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/infrastructure/seasonfile"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
)

var standingsHeader = []string{"Team", "W", "D", "L", "GF", "GA", "GD", "Pts", "Place"}

// StandingsWriter writes one CSV table per season.
type StandingsWriter struct {
	template string
	logger   *logging.Logger
}

func NewStandingsWriter(template string, logger *logging.Logger) *StandingsWriter {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsWriter{template: template, logger: logger}
}

// ReplaceBySeason overwrites the season file with rows in the given order.
func (w *StandingsWriter) ReplaceBySeason(ctx context.Context, season match.Season, rows []standing.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := seasonfile.Path(w.template, season)
	records := make([][]string, 0, len(rows)+1)
	records = append(records, standingsHeader)
	for _, row := range rows {
		records = append(records, []string{
			row.Team,
			strconv.Itoa(row.Wins),
			strconv.Itoa(row.Draws),
			strconv.Itoa(row.Losses),
			strconv.Itoa(row.GoalsFor),
			strconv.Itoa(row.GoalsAgainst),
			strconv.Itoa(row.GoalDifference),
			strconv.Itoa(row.Points),
			strconv.Itoa(row.Place),
		})
	}

	if err := writeAll(path, records); err != nil {
		return crerr.Wrapf(err, "write standings season=%s", season.Label())
	}

	w.logger.InfoContext(ctx, "standings written", "season", season.Label(), "path", path, "rows", len(rows))
	return nil
}

func writeAll(path string, records [][]string) error {
	return seasonfile.WriteAtomic(path, func(w io.Writer) error {
		return csv.NewWriter(w).WriteAll(records)
	})
}
