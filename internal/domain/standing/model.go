package standing

import "github.com/riskibarqy/league-standings/internal/domain/match"

const (
	PointsPerWin  = 3
	PointsPerDraw = 1
)

// TeamStats accumulates one team's season results.
type TeamStats struct {
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
}

func (s TeamStats) Played() int {
	return s.Wins + s.Draws + s.Losses
}

func (s TeamStats) GoalDifference() int {
	return s.GoalsFor - s.GoalsAgainst
}

func (s TeamStats) Points() int {
	return PointsPerWin*s.Wins + PointsPerDraw*s.Draws
}

// Row represents a league table row for one team.
type Row struct {
	Team           string
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Points         int
	Place          int
}

// Table is the ranked standings of one season, place 1 first.
type Table struct {
	Season match.Season
	Rows   []Row
}

// Matches counts the fixtures folded into the table. Every fixture adds one
// played game to two rows.
func (t Table) Matches() int {
	played := 0
	for _, row := range t.Rows {
		played += row.Wins + row.Draws + row.Losses
	}
	return played / 2
}
