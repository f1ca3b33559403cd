package postgres

import "time"

type seasonStandingTableModel struct {
	ID             int64      `db:"id"`
	Season         int        `db:"season"`
	SeasonLabel    string     `db:"season_label"`
	Team           string     `db:"team"`
	Place          int        `db:"place"`
	Played         int        `db:"played"`
	Won            int        `db:"won"`
	Draw           int        `db:"draw"`
	Lost           int        `db:"lost"`
	GoalsFor       int        `db:"goals_for"`
	GoalsAgainst   int        `db:"goals_against"`
	GoalDifference int        `db:"goal_difference"`
	Points         int        `db:"points"`
	CreatedAt      time.Time  `db:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"`
	DeletedAt      *time.Time `db:"deleted_at"`
}

type seasonStandingInsertModel struct {
	Season         int    `db:"season"`
	SeasonLabel    string `db:"season_label"`
	Team           string `db:"team"`
	Place          int    `db:"place"`
	Played         int    `db:"played"`
	Won            int    `db:"won"`
	Draw           int    `db:"draw"`
	Lost           int    `db:"lost"`
	GoalsFor       int    `db:"goals_for"`
	GoalsAgainst   int    `db:"goals_against"`
	GoalDifference int    `db:"goal_difference"`
	Points         int    `db:"points"`
}
