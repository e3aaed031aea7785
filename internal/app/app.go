package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/plwordle/plwordle/internal/config"
	"github.com/plwordle/plwordle/internal/domain/catalog"
	"github.com/plwordle/plwordle/internal/domain/game"
	"github.com/plwordle/plwordle/internal/domain/user"
	"github.com/plwordle/plwordle/internal/infrastructure/repository/memory"
	"github.com/plwordle/plwordle/internal/infrastructure/repository/postgres"
	"github.com/plwordle/plwordle/internal/interfaces/httpapi"
	"github.com/plwordle/plwordle/internal/platform/cache"
	idgen "github.com/plwordle/plwordle/internal/platform/id"
	"github.com/plwordle/plwordle/internal/platform/logging"
	"github.com/plwordle/plwordle/internal/usecase"
)

type stores struct {
	catalogRepo catalog.Repository
	gameRepo    game.Repository
	userRepo    user.Repository
	sessionRepo user.SessionRepository
}

// NewHTTPServer wires repositories, services and the router into a ready
// http.Server. The returned cleanup closes the database pool when the
// postgres driver is active.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	st, cleanup, err := newStores(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	authService := usecase.NewAuthService(
		st.userRepo,
		st.sessionRepo,
		idgen.NewRandomGenerator(),
		cfg.SessionTTL,
		logger,
	)
	catalogService := usecase.NewCatalogService(st.catalogRepo, cache.NewStore(cfg.NameCacheTTL))
	gameService := usecase.NewGameService(st.gameRepo, logger)
	targetService := usecase.NewDailyTargetService(st.gameRepo, st.catalogRepo, logger)

	handler := httpapi.NewHandler(authService, catalogService, gameService, targetService, logger)
	router := httpapi.NewRouter(handler, authService, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newStores(cfg config.Config, logger *logging.Logger) (stores, func() error, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage driver", "driver", config.StorageMemory)
		return stores{
			catalogRepo: memory.SeededCatalogRepository(),
			gameRepo:    memory.NewGameRepository(),
			userRepo:    memory.NewUserRepository(),
			sessionRepo: memory.NewSessionRepository(),
		}, func() error { return nil }, nil

	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return stores{}, nil, err
		}
		logger.Info("storage driver", "driver", config.StoragePostgres, "db", dbNameFromURL(cfg.DBURL))
		return stores{
			catalogRepo: postgres.NewCatalogRepository(db),
			gameRepo:    postgres.NewGameRepository(db),
			userRepo:    postgres.NewUserRepository(db),
			sessionRepo: postgres.NewSessionRepository(db),
		}, db.Close, nil

	default:
		return stores{}, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
