package memory

import "github.com/riskibarqy/league-standings/internal/domain/match"

// SeedRecords is a small two-season fixture list used for local dry runs.
func SeedRecords() []match.Record {
	return []match.Record{
		{Division: "E0", Date: "15/08/2009", HomeTeam: "Chelsea", AwayTeam: "Hull", HomeGoals: 2, AwayGoals: 1, Result: match.ResultHomeWin, Season: 9},
		{Division: "E0", Date: "15/08/2009", HomeTeam: "Everton", AwayTeam: "Arsenal", HomeGoals: 1, AwayGoals: 6, Result: match.ResultAwayWin, Season: 9},
		{Division: "E0", Date: "16/08/2009", HomeTeam: "Hull", AwayTeam: "Everton", HomeGoals: 1, AwayGoals: 1, Result: match.ResultDraw, Season: 9},
		{Division: "E0", Date: "22/08/2009", HomeTeam: "Arsenal", AwayTeam: "Chelsea", HomeGoals: 0, AwayGoals: 3, Result: match.ResultAwayWin, Season: 9},
		{Division: "E0", Date: "14/08/2010", HomeTeam: "Chelsea", AwayTeam: "West Brom", HomeGoals: 6, AwayGoals: 0, Result: match.ResultHomeWin, Season: 10},
		{Division: "E0", Date: "14/08/2010", HomeTeam: "Man United", AwayTeam: "Newcastle", HomeGoals: 3, AwayGoals: 0, Result: match.ResultHomeWin, Season: 10},
		{Division: "E0", Date: "21/08/2010", HomeTeam: "Newcastle", AwayTeam: "Chelsea", HomeGoals: 0, AwayGoals: 0, Result: match.ResultDraw, Season: 10},
		{Division: "E0", Date: "22/08/2010", HomeTeam: "West Brom", AwayTeam: "Man United", HomeGoals: 1, AwayGoals: 2, Result: match.ResultAwayWin, Season: 10},
	}
}
