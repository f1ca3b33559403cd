package match

import (
	"fmt"
	"sort"
	"strings"
)

// Result is the full-time outcome code of a fixture.
type Result string

const (
	ResultHomeWin Result = "H"
	ResultAwayWin Result = "A"
	ResultDraw    Result = "D"
)

var AllResults = map[Result]struct{}{
	ResultHomeWin: {},
	ResultAwayWin: {},
	ResultDraw:    {},
}

func ParseResult(value string) (Result, bool) {
	r := Result(strings.ToUpper(strings.TrimSpace(value)))
	_, ok := AllResults[r]
	return r, ok
}

// Season identifies one competition cycle by its starting year. Short
// two-digit identifiers (9 for 2009-10) are accepted as-is.
type Season int

func (s Season) Next() Season {
	return s + 1
}

// Label renders the season as "2009-10".
func (s Season) Label() string {
	start := int(s)
	if start < 100 {
		start += 2000
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// Record is one played fixture.
type Record struct {
	Division  string
	Date      string
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
	Result    Result
	Season    Season
	// Raw keeps the source row as read, for sources that have one.
	Raw RawRow
}

// RawRow is an untyped source row. Header is shared by every row of one
// season file.
type RawRow struct {
	Header []string
	Fields []string
}

// Value returns the field under column, or "" when the row has none.
func (r RawRow) Value(column string) string {
	for i, name := range r.Header {
		if name == column {
			if i < len(r.Fields) {
				return r.Fields[i]
			}
			return ""
		}
	}
	return ""
}

// WithSeason returns a copy of the record tagged with season.
func (r Record) WithSeason(season Season) Record {
	r.Season = season
	return r
}

// Seasons lists every season in [start, end].
func Seasons(start, end Season) []Season {
	if start > end {
		return nil
	}
	out := make([]Season, 0, int(end-start)+1)
	for s := start; s <= end; s++ {
		out = append(out, s)
	}
	return out
}

// GroupBySeason partitions records by season, keeping input order inside
// each group. The returned season slice is ascending.
func GroupBySeason(records []Record) ([]Season, map[Season][]Record) {
	groups := make(map[Season][]Record)
	seasons := make([]Season, 0)
	for _, r := range records {
		if _, ok := groups[r.Season]; !ok {
			seasons = append(seasons, r.Season)
		}
		groups[r.Season] = append(groups[r.Season], r)
	}
	sort.Slice(seasons, func(i, j int) bool { return seasons[i] < seasons[j] })
	return seasons, groups
}
