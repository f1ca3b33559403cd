package standing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/riskibarqy/league-standings/internal/domain/match"
)

var (
	ErrEmptyTable    = errors.New("no teams to rank")
	ErrUnknownTeam   = errors.New("team missing from table")
	ErrUnknownResult = errors.New("unknown full-time result")
)

// BuildTable folds one season's fixtures into per-team totals. Every team
// seen as home or away starts from zero before any result is applied.
func BuildTable(records []match.Record) (map[string]TeamStats, error) {
	table := make(map[string]*TeamStats)
	for _, r := range records {
		if _, ok := table[r.HomeTeam]; !ok {
			table[r.HomeTeam] = &TeamStats{}
		}
		if _, ok := table[r.AwayTeam]; !ok {
			table[r.AwayTeam] = &TeamStats{}
		}
	}

	for i, r := range records {
		// Unreachable while the pass above registers both sides of every record.
		home, ok := table[r.HomeTeam]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, r.HomeTeam)
		}
		away, ok := table[r.AwayTeam]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownTeam, r.AwayTeam)
		}

		switch r.Result {
		case match.ResultHomeWin:
			home.Wins++
			away.Losses++
		case match.ResultAwayWin:
			away.Wins++
			home.Losses++
		case match.ResultDraw:
			home.Draws++
			away.Draws++
		default:
			return nil, fmt.Errorf("%w: record=%d result=%q %s vs %s", ErrUnknownResult, i, r.Result, r.HomeTeam, r.AwayTeam)
		}

		home.GoalsFor += r.HomeGoals
		home.GoalsAgainst += r.AwayGoals
		away.GoalsFor += r.AwayGoals
		away.GoalsAgainst += r.HomeGoals
	}

	out := make(map[string]TeamStats, len(table))
	for team, stats := range table {
		out[team] = *stats
	}
	return out, nil
}

// Rank orders teams by points, then goal difference, then goals scored.
// Exact ties fall back to team name so places are reproducible.
func Rank(season match.Season, stats map[string]TeamStats) (Table, error) {
	if len(stats) == 0 {
		return Table{}, fmt.Errorf("%w: season=%s", ErrEmptyTable, season.Label())
	}

	rows := make([]Row, 0, len(stats))
	for team, s := range stats {
		rows = append(rows, Row{
			Team:           team,
			Wins:           s.Wins,
			Draws:          s.Draws,
			Losses:         s.Losses,
			GoalsFor:       s.GoalsFor,
			GoalsAgainst:   s.GoalsAgainst,
			GoalDifference: s.GoalDifference(),
			Points:         s.Points(),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		if rows[i].GoalsFor != rows[j].GoalsFor {
			return rows[i].GoalsFor > rows[j].GoalsFor
		}
		return rows[i].Team < rows[j].Team
	})

	for i := range rows {
		rows[i].Place = i + 1
	}

	return Table{Season: season, Rows: rows}, nil
}

// Build runs BuildTable and Rank for one season.
func Build(season match.Season, records []match.Record) (Table, error) {
	stats, err := BuildTable(records)
	if err != nil {
		return Table{}, err
	}
	return Rank(season, stats)
}
