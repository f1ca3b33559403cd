package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	qb "github.com/riskibarqy/league-standings/internal/platform/querybuilder"
)

const seasonStandingsTable = "season_standings"

type SeasonStandingRepository struct {
	db *sqlx.DB
}

func NewSeasonStandingRepository(db *sqlx.DB) *SeasonStandingRepository {
	return &SeasonStandingRepository{db: db}
}

// ListBySeason returns the live rows of a season in place order.
func (r *SeasonStandingRepository) ListBySeason(ctx context.Context, season match.Season) ([]standing.Row, error) {
	query, args, err := listSeasonQuery(season)
	if err != nil {
		return nil, fmt.Errorf("build list season standings query: %w", err)
	}

	var rows []seasonStandingTableModel
	err = r.db.SelectContext(ctx, &rows, query, args...)
	if isRetryablePreparedStatementError(err) {
		rows = rows[:0]
		err = r.db.SelectContext(ctx, &rows, query, args...)
	}
	if err != nil {
		return nil, fmt.Errorf("list season standings season=%s: %w", season.Label(), err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: season=%s", standing.ErrNotStored, season.Label())
	}

	out := make([]standing.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowFromTableModel(row))
	}
	return out, nil
}

// ReplaceBySeason soft-deletes the live rows of a season and inserts the new
// table in one transaction.
func (r *SeasonStandingRepository) ReplaceBySeason(ctx context.Context, season match.Season, rows []standing.Row) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace season standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := clearSeasonQuery(season)
	if err != nil {
		return fmt.Errorf("build clear season standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear season standings season=%s: %w", season.Label(), err)
	}

	if len(rows) > 0 {
		query, args, err := qb.InsertModels(seasonStandingsTable, insertModelsFromRows(season, rows), "")
		if err != nil {
			return fmt.Errorf("build insert season standings query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert season standings season=%s rows=%d: %w", season.Label(), len(rows), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace season standings tx: %w", err)
	}
	return nil
}

func listSeasonQuery(season match.Season) (string, []any, error) {
	return qb.Select("*").From(seasonStandingsTable).
		Where(
			qb.Eq("season", int(season)),
			qb.IsNull("deleted_at"),
		).
		OrderBy("place", "id").
		ToSQL()
}

func clearSeasonQuery(season match.Season) (string, []any, error) {
	return qb.Update(seasonStandingsTable).
		SetExpr("deleted_at", "NOW()").
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season", int(season)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
}

func insertModelsFromRows(season match.Season, rows []standing.Row) []seasonStandingInsertModel {
	out := make([]seasonStandingInsertModel, 0, len(rows))
	for _, row := range rows {
		out = append(out, seasonStandingInsertModel{
			Season:         int(season),
			SeasonLabel:    season.Label(),
			Team:           row.Team,
			Place:          row.Place,
			Played:         row.Wins + row.Draws + row.Losses,
			Won:            row.Wins,
			Draw:           row.Draws,
			Lost:           row.Losses,
			GoalsFor:       row.GoalsFor,
			GoalsAgainst:   row.GoalsAgainst,
			GoalDifference: row.GoalDifference,
			Points:         row.Points,
		})
	}
	return out
}

func rowFromTableModel(row seasonStandingTableModel) standing.Row {
	return standing.Row{
		Team:           row.Team,
		Wins:           row.Won,
		Draws:          row.Draw,
		Losses:         row.Lost,
		GoalsFor:       row.GoalsFor,
		GoalsAgainst:   row.GoalsAgainst,
		GoalDifference: row.GoalDifference,
		Points:         row.Points,
		Place:          row.Place,
	}
}
