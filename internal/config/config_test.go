package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STANDINGS_SEASON_START", "")
	t.Setenv("STANDINGS_SEASON_END", "")
	t.Setenv("STANDINGS_WRITE", "")
	t.Setenv("STANDINGS_SINK", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.SeasonStart != 9 || cfg.SeasonEnd != 21 {
		t.Fatalf("unexpected season range: %d..%d", cfg.SeasonStart, cfg.SeasonEnd)
	}
	if cfg.Write {
		t.Fatalf("expected write mode off by default")
	}
	if cfg.Sink != SinkCSV {
		t.Fatalf("unexpected sink: %q", cfg.Sink)
	}
	if cfg.ColumnLimit != 23 {
		t.Fatalf("unexpected column limit: %d", cfg.ColumnLimit)
	}
	if cfg.SeasonFileTemplate != "raw_data/season-{season}{next}.csv" {
		t.Fatalf("unexpected season file template: %q", cfg.SeasonFileTemplate)
	}
	if cfg.CacheTTL != 10*time.Minute {
		t.Fatalf("unexpected cache ttl: %s", cfg.CacheTTL)
	}
}

func TestLoad_SeasonRangeValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("STANDINGS_SEASON_START", "15")
	t.Setenv("STANDINGS_SEASON_END", "12")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when season end precedes start")
	}
}

func TestLoad_SinkValidation(t *testing.T) {
	tests := []struct {
		name    string
		sink    string
		write   string
		dbURL   string
		wantErr bool
	}{
		{name: "csv", sink: "csv", write: "true"},
		{name: "json upper case", sink: "JSON", write: "true"},
		{name: "postgres", sink: "postgres", write: "true", dbURL: "postgres://localhost/x"},
		{name: "memory", sink: "memory", write: "true"},
		{name: "unknown sink", sink: "parquet", write: "true", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("UPTRACE_ENABLED", "false")
			t.Setenv("STANDINGS_SINK", tc.sink)
			t.Setenv("STANDINGS_WRITE", tc.write)
			t.Setenv("DB_URL", tc.dbURL)

			_, err := Load()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for sink %q", tc.sink)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn=\"https://token@api.uptrace.dev\"")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_LogLevel(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_LOG_LEVEL", "warning")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel.String() != "warn" {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel.String())
	}
}

func TestLoad_SourceValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Setenv("STANDINGS_SOURCE", "Memory")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Source != SourceMemory {
		t.Fatalf("unexpected source: %q", cfg.Source)
	}

	t.Setenv("STANDINGS_SOURCE", "s3")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STANDINGS_SOURCE")
	}
}

func TestValidate_AfterOverride(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg.SeasonStart = 20
	cfg.SeasonEnd = 10
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error after overriding season range")
	}
}

func TestValidate_ReadStoredNeedsReadableSink(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	cfg.ReadStored = true
	cfg.Sink = SinkCSV
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error reading stored tables from csv sink")
	}

	cfg.Sink = SinkMemory
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for memory sink: %v", err)
	}
}
