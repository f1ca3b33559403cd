package jsonfile

import (
	"context"
	"io"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/infrastructure/seasonfile"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
)

type tableDocument struct {
	Season   string        `json:"season"`
	SeasonID int           `json:"season_id"`
	Rows     []rowDocument `json:"rows"`
}

type rowDocument struct {
	Place          int    `json:"place"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// StandingsWriter writes one JSON document per season.
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

func (w *StandingsWriter) ReplaceBySeason(ctx context.Context, season match.Season, rows []standing.Row) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc := tableDocument{
		Season:   season.Label(),
		SeasonID: int(season),
		Rows:     make([]rowDocument, 0, len(rows)),
	}
	for _, row := range rows {
		doc.Rows = append(doc.Rows, rowDocument{
			Place:          row.Place,
			Team:           row.Team,
			Played:         row.Wins + row.Draws + row.Losses,
			Wins:           row.Wins,
			Draws:          row.Draws,
			Losses:         row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(doc); err != nil {
		return crerr.Wrapf(err, "encode standings season=%s", season.Label())
	}

	path := seasonfile.Path(w.template, season)
	err := seasonfile.WriteAtomic(path, func(out io.Writer) error {
		_, err := out.Write(buf.B)
		return err
	})
	if err != nil {
		return crerr.Wrapf(err, "write standings season=%s", season.Label())
	}

	w.logger.InfoContext(ctx, "standings written", "season", season.Label(), "path", path, "rows", len(rows))
	return nil
}
