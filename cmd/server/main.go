package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"employee_backend/internal/app/di"
	"employee_backend/internal/app/router"
	"employee_backend/internal/platform/config"
	infradb "employee_backend/internal/platform/db"
	"employee_backend/internal/platform/http/handler"
	"employee_backend/internal/platform/logger"
	"employee_backend/internal/platform/metrics"
	infraredis "employee_backend/internal/platform/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	l, err := logger.New(os.Stdout, cfg.Log.Level, cfg.Log.Format, cfg.Env)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build logger")
	}
	logger.SetGlobal(l)

	// Metrics
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// db
	conn, err := infradb.Open(ctx, di.NewDBConfig(cfg.Database), cfg.Database.ConnectTimeout)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to DB")
	}
	defer conn.Close()

	if cfg.Database.AutoMigrate {
		if err := infradb.Migrate(conn.Gorm); err != nil {
			l.Fatal().Err(err).Msg("failed to migrate")
		}
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
		if errors.Is(err, infraredis.ErrDisabled) {
			l.Info().Msg("Redis not configured. Running without cache.")
		} else {
			l.Warn().Err(err).Msg("Redis unavailable. Running without cache.")
		}
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				l.Error().Err(err).Msg("failed to close Redis client")
			}
		}()
	}

	// Repository -> Usecase -> Handler
	repo := di.NewEmployeeRepository(conn.Gorm, rdb, appMetrics, cfg.Cache)
	employeeH := di.NewEmployeeHandler(repo)

	r, err := router.NewRouter(router.Deps{
		Logger:    l,
		Metrics:   appMetrics,
		Gatherer:  reg,
		Employees: employeeH,
		Readiness: handler.NewReadinessHandler(conn.Pool, 0),
	})
	if err != nil {
		l.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		l.Info().Str("addr", srv.Addr).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			l.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	l.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("graceful shutdown failed")
	}
	l.Info().Msg("server stopped gracefully")
}
