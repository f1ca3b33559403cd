package app

import (
	"strings"
	"testing"
)

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace(" SELECT   *\nFROM season_standings \t WHERE season = $1 ")
	want := "SELECT * FROM season_standings WHERE season = $1"
	if got != want {
		t.Fatalf("unexpected formatted query: %q", got)
	}
}

func TestFormatDBQueryForTrace_Truncates(t *testing.T) {
	long := "SELECT " + strings.Repeat("col, ", 200) + "id FROM season_standings"
	got := formatDBQueryForTrace(long)
	if len(got) != maxTracedQueryLength+3 || !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated query, got len=%d", len(got))
	}
}
