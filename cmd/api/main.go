package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/angelmondragon/reviewhub-backend/api/responses"
	"github.com/angelmondragon/reviewhub-backend/api/routes"
	"github.com/angelmondragon/reviewhub-backend/internal/admins"
	"github.com/angelmondragon/reviewhub-backend/internal/auth"
	"github.com/angelmondragon/reviewhub-backend/internal/comments"
	"github.com/angelmondragon/reviewhub-backend/internal/entities"
	"github.com/angelmondragon/reviewhub-backend/internal/notifications"
	"github.com/angelmondragon/reviewhub-backend/internal/repo"
	"github.com/angelmondragon/reviewhub-backend/internal/submissions"
	"github.com/angelmondragon/reviewhub-backend/internal/users"
	"github.com/angelmondragon/reviewhub-backend/internal/validationqueue"
	"github.com/angelmondragon/reviewhub-backend/pkg/config"
	"github.com/angelmondragon/reviewhub-backend/pkg/db"
	"github.com/angelmondragon/reviewhub-backend/pkg/instance"
	"github.com/angelmondragon/reviewhub-backend/pkg/logger"
	"github.com/angelmondragon/reviewhub-backend/pkg/metrics"
	"github.com/angelmondragon/reviewhub-backend/pkg/migrate"
	"github.com/angelmondragon/reviewhub-backend/pkg/redis"
	"github.com/angelmondragon/reviewhub-backend/pkg/security"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	responses.ExposeDebug(cfg.App.IsDev())

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRun(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured; login rate limiting and idempotent replays disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	reviewMetrics := metrics.NewReviewMetrics(registry)

	deps, err := buildDeps(cfg, logg, dbClient, reviewMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}
	deps.Redis = redisClient
	deps.Gatherer = registry
	deps.HTTPMetrics = metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": instance.GetID(),
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info(ctx, "starting api server")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(ctx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}

func buildDeps(cfg *config.Config, logg *logger.Logger, client *db.Client, reviewMetrics *metrics.ReviewMetrics) (routes.Deps, error) {
	base := repo.FromClient(client)

	hasher, err := security.NewHasher(cfg.Password)
	if err != nil {
		return routes.Deps{}, err
	}

	usersRepo := users.NewRepository(base)
	usersSvc, err := users.NewService(usersRepo, hasher)
	if err != nil {
		return routes.Deps{}, err
	}

	registry := entities.NewRegistry(base)
	entitiesSvc, err := entities.NewService(registry)
	if err != nil {
		return routes.Deps{}, err
	}

	notificationsRepo := notifications.NewRepository(base)
	notificationsSvc, err := notifications.NewService(notificationsRepo)
	if err != nil {
		return routes.Deps{}, err
	}

	submissionsSvc, err := submissions.NewService(submissions.ServiceParams{
		Tx:            client,
		Conns:         client,
		Repo:          submissions.NewRepository(base),
		Users:         usersRepo,
		Entities:      registry,
		Notifications: notificationsRepo,
		Metrics:       reviewMetrics,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	commentsSvc, err := comments.NewService(comments.NewRepository(base))
	if err != nil {
		return routes.Deps{}, err
	}

	queueSvc, err := validationqueue.NewService(client, validationqueue.NewRepository(base))
	if err != nil {
		return routes.Deps{}, err
	}

	adminsSvc, err := admins.NewService(admins.NewRepository(base), hasher)
	if err != nil {
		return routes.Deps{}, err
	}

	authSvc, err := auth.NewService(auth.ServiceParams{
		Admins:    adminsSvc,
		JWTConfig: cfg.JWT,
		Metrics:   reviewMetrics,
	})
	if err != nil {
		return routes.Deps{}, err
	}

	return routes.Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            client,
		Auth:          authSvc,
		Submissions:   submissionsSvc,
		Entities:      entitiesSvc,
		Users:         usersSvc,
		Notifications: notificationsSvc,
		Comments:      commentsSvc,
		Queue:         queueSvc,
		Admins:        adminsSvc,
	}, nil
}
