package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/league-standings/internal/config"
	"github.com/riskibarqy/league-standings/internal/domain/match"
	"github.com/riskibarqy/league-standings/internal/domain/standing"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/league-standings/internal/infrastructure/repository/postgres"
	csvsink "github.com/riskibarqy/league-standings/internal/infrastructure/sink/csvfile"
	jsonsink "github.com/riskibarqy/league-standings/internal/infrastructure/sink/jsonfile"
	"github.com/riskibarqy/league-standings/internal/infrastructure/source/cached"
	csvsource "github.com/riskibarqy/league-standings/internal/infrastructure/source/csvfile"
	"github.com/riskibarqy/league-standings/internal/platform/dburl"
	"github.com/riskibarqy/league-standings/internal/platform/logging"
	"github.com/riskibarqy/league-standings/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const dbPingTimeout = 5 * time.Second

// Job holds the wired services of one standings run.
type Job struct {
	Combine   *usecase.CombineService
	Standings *usecase.StandingsService

	db *sqlx.DB
}

func NewJob(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Job, error) {
	if logger == nil {
		logger = logging.Default()
	}

	source, err := newSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	job := &Job{}
	var sink standing.Sink
	if cfg.Write || cfg.ReadStored {
		sink, err = job.newSink(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
	}

	combinedWriter := csvsink.NewCombinedWriter(cfg.CombinedOutFile, logger)
	job.Combine = usecase.NewCombineService(source, combinedWriter, cfg.MaxWorkers, logger)
	job.Standings = usecase.NewStandingsService(job.Combine, source, sink, logger)

	logger.Info("standings job wired",
		"source", cfg.Source,
		"sink", cfg.Sink,
		"write", cfg.Write,
		"cache_enabled", cfg.CacheEnabled,
		"max_workers", cfg.MaxWorkers,
	)
	return job, nil
}

func (j *Job) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

func newSource(cfg config.Config, logger *logging.Logger) (match.Source, error) {
	var source match.Source
	switch cfg.Source {
	case config.SourceCSV:
		source = csvsource.NewSource(cfg.SeasonFileTemplate, cfg.ColumnLimit, logger)
	case config.SourceMemory:
		source = memory.NewMatchRepository(memory.SeedRecords())
	default:
		return nil, fmt.Errorf("unsupported record source %q", cfg.Source)
	}

	if cfg.CacheEnabled {
		source = cached.NewSource(source, cfg.CacheTTL)
	}
	return source, nil
}

func (j *Job) newSink(ctx context.Context, cfg config.Config, logger *logging.Logger) (standing.Sink, error) {
	switch cfg.Sink {
	case config.SinkCSV:
		return csvsink.NewStandingsWriter(cfg.StandingsFileTemplate, logger), nil
	case config.SinkJSON:
		return jsonsink.NewStandingsWriter(cfg.StandingsJSONTemplate, logger), nil
	case config.SinkPostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		j.db = db
		return postgres.NewSeasonStandingRepository(db), nil
	case config.SinkMemory:
		return memory.NewStandingRepository(), nil
	default:
		return nil, fmt.Errorf("unsupported standings sink %q", cfg.Sink)
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := dburl.Normalize(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dburl.Name(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}
