package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wcraske/simpleCalendar/internal/api"
	"github.com/wcraske/simpleCalendar/internal/auth"
	"github.com/wcraske/simpleCalendar/internal/config"
	"github.com/wcraske/simpleCalendar/internal/db"
	"github.com/wcraske/simpleCalendar/internal/logger"
	"github.com/wcraske/simpleCalendar/internal/metrics"
	repo "github.com/wcraske/simpleCalendar/internal/repository"
	"github.com/wcraske/simpleCalendar/internal/repository/postgres"
	"github.com/wcraske/simpleCalendar/internal/repository/sqlite"
	"github.com/wcraske/simpleCalendar/internal/services"
	"github.com/wcraske/simpleCalendar/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Error("store", "driver", cfg.DBDriver, "err", err)
		os.Exit(1)
	}
	defer store.Close()

	tm, err := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL, auth.WithIssuer(cfg.JWTIssuer))
	if err != nil {
		log.Error("token manager", "err", err)
		os.Exit(1)
	}

	userSvc := services.NewUserService(store, tm, cfg)
	eventSvc := services.NewEventService(store)
	if err := userSvc.EnsureAdmin(ctx); err != nil {
		log.Error("bootstrap admin", "err", err)
		os.Exit(1)
	}

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:      cfg,
		Log:      log,
		UserSvc:  userSvc,
		EventSvc: eventSvc,
		Weather:  weather.NewClient(cfg.WeatherBaseURL, cfg.WeatherAPIKey, cfg.WeatherTimeout),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "db", cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

func openStore(ctx context.Context, cfg config.Config) (repo.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("db connect: %w", err)
		}
		if cfg.Migrate {
			if err := db.RunMigrations(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrations: %w", err)
			}
		}
		return postgres.NewStore(pool), nil
	default:
		gdb, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		s, err := sqlite.NewStore(gdb)
		if err != nil {
			return nil, fmt.Errorf("sqlite schema: %w", err)
		}
		return s, nil
	}
}
