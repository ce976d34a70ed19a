package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/foodsales/dashboard/internal/api"
	"github.com/foodsales/dashboard/internal/api/handler"
	"github.com/foodsales/dashboard/internal/core/access"
	"github.com/foodsales/dashboard/internal/core/service"
	mongodb "github.com/foodsales/dashboard/internal/infrastructure/db/mongo"
	redisdb "github.com/foodsales/dashboard/internal/infrastructure/db/redis"
	"github.com/foodsales/dashboard/internal/infrastructure/queue"
	"github.com/foodsales/dashboard/internal/infrastructure/upstream"
	"github.com/foodsales/dashboard/internal/pkg/config"
	"github.com/foodsales/dashboard/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		l := logger.Init(logger.Options{})
		l.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "dashboard",
		Env:     cfg.Env,
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("dashboard stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer rdb.Close()

	auditRepo := mongodb.NewAuditRepository(db)
	if err := auditRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("audit indexes not ensured")
	}

	// Workers outlive ctx so entries queued during shutdown are still written.
	audit := queue.NewAuditDispatcher(0, auditRepo, log)
	audit.Start(context.Background())
	defer audit.Close()

	client := upstream.NewClient(upstream.Config{BaseURL: cfg.Upstream.URL, Timeout: cfg.Upstream.Timeout})
	sessions := redisdb.NewSessionStore(rdb)
	identities := redisdb.NewIdentityCache(rdb)
	policy := access.DefaultPolicy()

	sessionSvc := service.NewSessionService(client, sessions, identities, cfg.Session.Secret, cfg.Session.TTL, log)
	resolver := service.NewIdentityResolver(client, sessions, identities, cfg.Session.IdentityTTL, log)
	dashboardSvc := service.NewDashboardService(policy, client, sessions, log)

	e := api.NewRouter(api.Deps{
		Policy:    policy,
		Sessions:  sessionSvc,
		Resolver:  resolver,
		Dashboard: dashboardSvc,
		Audit:     audit,
		Health: map[string]handler.HealthCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		CookieSecure:   cfg.Session.CookieSecure,
		LoginRateLimit: cfg.Session.LoginRateLimit,
		Logger:         log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("dashboard listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
