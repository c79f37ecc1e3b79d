package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"gamecafe/backend/libs/db"
	libredis "gamecafe/backend/libs/redis"
	"gamecafe/backend/services/coordinator/internal/auth"
	"gamecafe/backend/services/coordinator/internal/billing"
	"gamecafe/backend/services/coordinator/internal/config"
	httpserver "gamecafe/backend/services/coordinator/internal/http"
	"gamecafe/backend/services/coordinator/internal/http/handlers"
	"gamecafe/backend/services/coordinator/internal/ledger"
	"gamecafe/backend/services/coordinator/internal/models"
	redisstore "gamecafe/backend/services/coordinator/internal/redis"
	"gamecafe/backend/services/coordinator/internal/registry"
	"gamecafe/backend/services/coordinator/internal/repository"
	"gamecafe/backend/services/coordinator/internal/session"
	"gamecafe/backend/services/coordinator/internal/ws"
)

// App wires coordinator dependencies. Postgres and Redis are optional; the
// in-memory registries are the system of record either way.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	var (
		sqlDB       *sql.DB
		redisClient *redis.Client
		err         error
	)

	if cfg.Database.DSN != "" {
		sqlDB, err = db.NewPostgres(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Redis.Addr != "" {
		redisClient, err = libredis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			if sqlDB != nil {
				sqlDB.Close()
			}
			return nil, err
		}
	}

	stations := registry.NewStationRegistry(cfg.DefaultHourlyRate())
	rates := billing.NewRateService()
	revenue := ledger.NewRevenueLedger()

	var cache session.ActiveSessionCache
	if redisClient != nil {
		cache = redisstore.NewStore(redisClient, cfg.ActiveSessionTTL())
	}

	var archiver session.ChargeArchiver
	var users auth.UserSource
	if sqlDB != nil {
		archiver = repository.NewChargeRepository(sqlDB)
		users = repository.NewUserRepository(sqlDB)
	}

	coordinator := session.NewCoordinator(stations, rates, revenue, cache, archiver, logger)

	hub := ws.NewHub(logger)
	coordinator.Subscribe(session.ObserverFuncs{
		OnStarted: func(s models.Session) {
			logger.Info("session started", zap.Int64("session_id", s.ID), zap.Int64("station_id", s.StationID))
			hub.Broadcast("session_started", s)
		},
		OnEnded: func(s models.Session) {
			logger.Info("session ended",
				zap.Int64("session_id", s.ID),
				zap.Int64("station_id", s.StationID),
				zap.String("status", s.Status),
				zap.String("total_cost", s.TotalCost.String()),
			)
			hub.Broadcast("session_ended", s)
		},
	})

	hasher := auth.NewBcryptHasher(0)
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	bootstrap, err := bootstrapUser(cfg, hasher)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		if redisClient != nil {
			redisClient.Close()
		}
		return nil, err
	}
	authService := auth.NewService(users, hasher, tokens, bootstrap, logger)

	routes := httpserver.Routes{
		Stations: handlers.NewStationsHandler(stations, logger),
		Sessions: handlers.NewSessionsHandler(coordinator, logger),
		Billing:  handlers.NewBillingHandler(revenue, coordinator, logger),
		Auth:     handlers.NewAuthHandler(authService, logger),
		Events:   hub.HandleWS,
		Health:   handlers.NewHealthHandler(),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

func bootstrapUser(cfg *config.Config, hasher auth.Hasher) (*models.User, error) {
	if cfg.Auth.BootstrapUser == "" || cfg.Auth.BootstrapPassword == "" {
		return nil, nil
	}
	hash, err := hasher.Hash(cfg.Auth.BootstrapPassword)
	if err != nil {
		return nil, err
	}
	return &models.User{
		ID:           1,
		Username:     cfg.Auth.BootstrapUser,
		PasswordHash: hash,
		Role:         models.RoleOperator,
		IsActive:     true,
	}, nil
}

// Run starts the HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
