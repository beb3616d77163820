package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/goalcrush/fantasy-scoring/internal/config"
	"github.com/goalcrush/fantasy-scoring/internal/domain/fantasy"
	"github.com/goalcrush/fantasy-scoring/internal/domain/scoring"
	"github.com/goalcrush/fantasy-scoring/internal/infrastructure/notify"
	repocache "github.com/goalcrush/fantasy-scoring/internal/infrastructure/repository/cache"
	"github.com/goalcrush/fantasy-scoring/internal/infrastructure/repository/postgres"
	"github.com/goalcrush/fantasy-scoring/internal/interfaces/httpapi"
	basecache "github.com/goalcrush/fantasy-scoring/internal/platform/cache"
	"github.com/goalcrush/fantasy-scoring/internal/platform/logging"
	"github.com/goalcrush/fantasy-scoring/internal/platform/resilience"
	"github.com/goalcrush/fantasy-scoring/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router into one
// http.Server. The caller owns startup and shutdown.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	matchRepo := postgres.NewMatchRepository(db)
	scoringRepo := postgres.NewScoringRepository(db)

	var fantasyRepo fantasy.Repository = postgres.NewFantasyRepository(db)
	if cfg.CacheEnabled {
		fantasyRepo = repocache.NewFantasyRepository(fantasyRepo, basecache.NewStore(cfg.CacheTTL))
		logger.Info("fantasy repository cache enabled", "ttl", cfg.CacheTTL)
	}

	rules := scoring.DefaultRuleSet()
	if err := rules.Validate(); err != nil {
		return nil, nil, fmt.Errorf("validate ruleset: %w", err)
	}

	var publisher usecase.MatchScoredPublisher
	if cfg.WebhookEnabled {
		publisher = notify.NewWebhookPublisher(notify.WebhookPublisherConfig{
			TargetURL: cfg.WebhookTargetURL,
			Token:     cfg.WebhookToken,
			Timeout:   cfg.WebhookTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.WebhookCircuitEnabled,
				FailureThreshold: cfg.WebhookCircuitFailureCount,
				OpenTimeout:      cfg.WebhookCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.WebhookCircuitHalfOpenMax,
			},
		}, logger)
		logger.Info("match scored webhook enabled", "target_url", cfg.WebhookTargetURL)
	}

	totals := usecase.NewTeamTotalService(fantasyRepo, scoringRepo)
	scoringSvc := usecase.NewMatchScoringService(matchRepo, fantasyRepo, scoringRepo, totals, publisher, rules)
	recalcSvc := usecase.NewSeasonRecalcService(matchRepo, scoringSvc)

	handler := httpapi.NewHandler(scoringSvc, recalcSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, db.Close, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}
