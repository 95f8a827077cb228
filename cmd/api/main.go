package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/comitanigiacomo/kanso-progression-engine/docs"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/config"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/core/workers"
	"github.com/comitanigiacomo/kanso-progression-engine/internal/logger"
)

// @title                      Kanso Progression Engine API
// @version                    1.0
// @description                Habit tracking with progressive daily doses, streaks and milestones.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Critical: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Critical: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

type application struct {
	router *gin.Engine
	worker *workers.StreakWorker
	db     *sqlx.DB
	redis  *redis.Client
}

func (a *application) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.db != nil {
		_ = a.db.Close()
	}
}

type storage struct {
	users      domain.UserRepository
	habits     domain.HabitRepository
	entries    domain.DailyEntryRepository
	milestones domain.MilestoneRepository
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, *sqlx.DB, error) {
	if cfg.Storage == config.StorageMemory {
		log.Warn("running on memory storage, data is lost on restart")
		return &storage{
			users:      repository.NewInMemoryUserRepository(),
			habits:     repository.NewInMemoryHabitRepository(),
			entries:    repository.NewInMemoryEntryRepository(),
			milestones: repository.NewInMemoryMilestoneRepository(),
		}, nil, nil
	}

	log.Info("connecting to database", zap.String("driver", cfg.DB.Driver), zap.String("host", cfg.DB.Host))

	db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, cfg.DB.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	db.SetMaxIdleConns(cfg.DB.MaxOpenConns)
	db.SetConnMaxLifetime(5 * time.Minute)

	if cfg.DB.Migrate {
		if err := repository.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		log.Info("database schema is up to date")
	}

	return &storage{
		users:      repository.NewPostgresUserRepository(db),
		habits:     repository.NewPostgresHabitRepository(db),
		entries:    repository.NewPostgresEntryRepository(db),
		milestones: repository.NewPostgresMilestoneRepository(db),
	}, db, nil
}

func newApplication(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	store, db, err := openStorage(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	app := &application{db: db}

	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = rdb
		log.Info("redis connected", zap.String("host", cfg.Redis.Host))

		store.habits = repository.NewCachedHabitRepository(store.habits, rdb, log.Named("habit_cache"))
		store.milestones = repository.NewCachedMilestoneRepository(store.milestones, rdb, log.Named("milestone_cache"))
	}

	app.worker = workers.NewStreakWorker(store.habits, store.entries, log)

	tokenService := services.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL, store.users)
	authService := services.NewAuthService(store.users, tokenService)
	habitService := services.NewHabitService(store.habits, store.entries)
	milestoneService := services.NewMilestoneService(store.milestones, store.habits, log.Named("milestones"))
	entryService := services.NewEntryService(store.entries, store.habits, milestoneService, app.worker, log.Named("entries"))
	statsService := services.NewStatsService(store.habits, store.entries)

	app.router = adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:  adapterHTTP.NewAuthHandler(authService),
		HabitHandler: adapterHTTP.NewHabitHandler(habitService, milestoneService),
		EntryHandler: adapterHTTP.NewEntryHandler(entryService),
		StatsHandler: adapterHTTP.NewStatsHandler(statsService),
		TokenService: tokenService,
		DB:           db,
		Redis:        app.redis,
		RateLimit:    cfg.RateLimit,
		Logger:       log,
		StartTime:    time.Now(),
	})

	return app, nil
}

func run(cfg *config.Config, log *zap.Logger) error {
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer app.Close()

	app.worker.Start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      app.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("kanso progression engine listening", zap.String("addr", srv.Addr), zap.String("storage", cfg.Storage))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("stop signal received, shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped gracefully")
	return nil
}
