package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
)

func testConfig(dir string) config.Config {
	return config.Config{
		AppEnv:                config.EnvDev,
		SeasonStart:           9,
		SeasonEnd:             10,
		Source:                config.SourceMemory,
		Sink:                  config.SinkCSV,
		SeasonFileTemplate:    filepath.Join(dir, "season-{season}{next}.csv"),
		ColumnLimit:           23,
		CombinedOutFile:       filepath.Join(dir, "raw_combined.csv"),
		StandingsFileTemplate: filepath.Join(dir, "standings-{season}{next}.csv"),
		StandingsJSONTemplate: filepath.Join(dir, "standings-{season}{next}.json"),
		MaxWorkers:            2,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
	}
}

func TestNewJob_MemorySourceCSVSink(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Write = true

	job, err := NewJob(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	defer job.Close()

	got, err := job.Standings.Run(context.Background(), usecase.RunInput{Start: 9, End: 10, Write: true, MaxWorkers: 2})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.WrittenCount != 2 {
		t.Fatalf("expected 2 seasons written, got %d", got.WrittenCount)
	}

	for _, name := range []string{"standings-910.csv", "standings-1011.csv", "raw_combined.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("expected %s to be written: %v", name, err)
		}
	}
}

func TestNewJob_JSONSink(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Write = true
	cfg.Sink = config.SinkJSON
	cfg.CacheEnabled = false

	job, err := NewJob(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	if _, err := job.Standings.Run(context.Background(), usecase.RunInput{Start: 10, End: 10, Write: true}); err != nil {
		t.Fatalf("run: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "standings-1011.json")); err != nil {
		t.Fatalf("expected json standings: %v", err)
	}
}

func TestNewJob_CSVSourceFromFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := testConfig(dir)
	cfg.Source = config.SourceCSV

	content := "Div,Date,Time,HomeTeam,AwayTeam,FTHG,FTAG,FTR\n" +
		"E0,15/08/2009,15:00,Chelsea,Hull,2,1,H\n" +
		"E0,16/08/2009,15:00,Hull,Everton,1,1,D\n"
	if err := os.WriteFile(filepath.Join(dir, "season-910.csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	job, err := NewJob(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	table, err := job.Standings.BuildSeason(context.Background(), 9)
	if err != nil {
		t.Fatalf("build season: %v", err)
	}
	if len(table.Rows) != 3 || table.Rows[0].Team != "Chelsea" {
		t.Fatalf("unexpected table: %+v", table.Rows)
	}
}

func TestNewJob_UnsupportedSource(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Source = "ftp"

	if _, err := NewJob(context.Background(), cfg, nil); err == nil {
		t.Fatalf("expected error for unsupported source")
	}
}

func TestNewJob_MemorySinkReadsBackSeason(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Write = true
	cfg.Sink = config.SinkMemory

	job, err := NewJob(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new job: %v", err)
	}

	ctx := context.Background()
	built, err := job.Standings.RunSeason(ctx, 10, true)
	if err != nil {
		t.Fatalf("run season: %v", err)
	}
	if !built.Written {
		t.Fatalf("expected season to be written")
	}

	stored, err := job.Standings.StoredSeason(ctx, 10)
	if err != nil {
		t.Fatalf("stored season: %v", err)
	}
	if len(stored.Rows) != len(built.Table.Rows) || stored.Rows[0] != built.Table.Rows[0] {
		t.Fatalf("stored table differs:\nbuilt:  %+v\nstored: %+v", built.Table.Rows, stored.Rows)
	}
}
