// @title                       User/Task Service API
// @version                     1.0
// @description                 CRUD over users and tasks plus aggregate reports.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/99minutos/usertask-service/internal/api"
	"github.com/99minutos/usertask-service/internal/api/handler"
	"github.com/99minutos/usertask-service/internal/core/ports"
	"github.com/99minutos/usertask-service/internal/core/service"
	"github.com/99minutos/usertask-service/internal/infrastructure/db/redis"
	"github.com/99minutos/usertask-service/internal/pkg/config"
	"github.com/99minutos/usertask-service/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "usertask",
	})

	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("service stopped")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	checks := map[string]handler.CheckFunc{st.name: st.ping}

	var idem ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		rdb, err := redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()

		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	} else {
		log.Warn().Msg("REDIS_ADDR empty, Idempotency-Key handling disabled")
	}

	e := api.NewRouter(api.Dependencies{
		Users:     service.NewUserService(st.users, st.tasks, idem, logger.Named("user_service")),
		Tasks:     service.NewTaskService(st.tasks, st.users, idem, logger.Named("task_service")),
		Reports:   service.NewReportService(st.users, st.tasks, logger.Named("report_service")),
		Checks:    checks,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Named("http"),
	})
	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET empty, /v1 routes are unauthenticated")
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", st.name).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
		close(srvErr)
	}()

	select {
	case err := <-srvErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}

	log.Info().Msg("server shutdown completed")
	return nil
}
