// Package app wires configuration, storage and services into the
// runnable pipeline.
package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/pitchmart/external/statsbomb"
	"github.com/riskibarqy/pitchmart/internal/config"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/bronze"
	"github.com/riskibarqy/pitchmart/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/pitchmart/internal/platform/logging"
	"github.com/riskibarqy/pitchmart/internal/platform/metrics"
	"github.com/riskibarqy/pitchmart/internal/platform/resilience"
	"github.com/riskibarqy/pitchmart/internal/usecase"
)

type App struct {
	Config   config.Config
	Logger   *logging.Logger
	DB       *sqlx.DB
	Metrics  *metrics.Manager
	Pipeline *usecase.PipelineService
}

func New(cfg config.Config, logger *logging.Logger, m *metrics.Manager) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	client := statsbomb.NewClient(statsbomb.ClientConfig{
		BaseURL:    cfg.StatsBombBaseURL,
		RawDir:     cfg.RawDataDir,
		Timeout:    cfg.StatsBombTimeout,
		MaxRetries: cfg.StatsBombMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.BreakerConfig{
			Enabled:          cfg.StatsBombCircuitEnabled,
			FailureThreshold: cfg.StatsBombCircuitFailures,
			OpenTimeout:      cfg.StatsBombCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.StatsBombCircuitHalfOpenReq,
		},
	})

	store := bronze.NewStore(cfg.BronzePath)

	competitionRepo := postgres.NewCompetitionRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	playerRepo := postgres.NewPlayerRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	eventRepo := postgres.NewEventRepository(db)
	goldRepo := postgres.NewGoldRepository(db)
	stateRepo := postgres.NewMatchStateRepository(db)

	download := usecase.NewDownloadService(client, cfg.IngestMaxWorkers, logger)
	bronzeSvc := usecase.NewBronzeService(client, store, cfg.IngestMaxWorkers, m, logger)
	silver := usecase.NewSilverService(
		store, competitionRepo, teamRepo, playerRepo, matchRepo, eventRepo, stateRepo,
		usecase.SilverConfig{RejectThreshold: cfg.SilverRejectThreshold}, m, logger,
	)
	gold := usecase.NewGoldService(matchRepo, eventRepo, stateRepo, goldRepo, usecase.GoldConfig{
		PPDAZoneX:               cfg.PPDAZoneX,
		PassNetworkCutoffMinute: int64(cfg.PassNetworkCutoffMinute),
		XTMaxIterations:         cfg.XTMaxIterations,
		XTEpsilon:               cfg.XTEpsilon,
		XTMinMatches:            cfg.XTMinMatches,
		MaxWorkers:              cfg.IngestMaxWorkers,
	}, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Metrics:  m,
		Pipeline: usecase.NewPipelineService(download, bronzeSvc, silver, gold, logger),
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
