package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/adapters/event"
	httpAdapter "github.com/khoahotran/assistant-relay/adapters/http"
	"github.com/khoahotran/assistant-relay/adapters/llm"
	"github.com/khoahotran/assistant-relay/adapters/persistence"
	activityUC "github.com/khoahotran/assistant-relay/internal/application/usecase/activity"
	authUC "github.com/khoahotran/assistant-relay/internal/application/usecase/auth"
	chatUC "github.com/khoahotran/assistant-relay/internal/application/usecase/chat"
	syncUC "github.com/khoahotran/assistant-relay/internal/application/usecase/sync"
	"github.com/khoahotran/assistant-relay/internal/config"
	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/auth"
	"github.com/khoahotran/assistant-relay/pkg/logger"
	"github.com/khoahotran/assistant-relay/pkg/tokens"
	"github.com/khoahotran/assistant-relay/pkg/tracing"
)

const migrationsDir = "migrations"

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Start Assistant Relay API Server...", zap.String("env", cfg.App.Env))

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTracing, err := tracing.Init(cfg, appLogger, "assistant-relay-api")
	if err != nil {
		appLogger.Fatal("Cannot initialize tracing", err)
	}
	defer shutdownTracing(context.Background())

	if !cfg.HasAPIKey() {
		appLogger.Warn("DEEPSEEK_API_KEY is not configured; chat requests will fail upstream")
	}

	// Services
	gateway := llm.NewDeepSeekAdapter(cfg, appLogger)
	counter := tokens.NewCounter(tokens.DefaultEncoding)
	if !counter.Exact() {
		appLogger.Warn("tiktoken ranks unavailable, prompt tokens are estimated")
	}

	var publisher activity.Publisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err := event.NewKafkaProducerClient(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot init Kafka", err)
		}
		defer kafkaClient.Close()
		publisher = kafkaClient
	}

	deps := httpAdapter.RouterDeps{
		Logger:      appLogger,
		CORSOrigins: cfg.App.CORSOrigins,
		Static:      httpAdapter.NewStaticHandler(cfg.App.StaticDir),
	}

	// Optional persistence: accounts, workspace sync and chat stats
	var workspaceRepo workspace.Repository
	if cfg.DB.DSN != "" {
		if cfg.Auth.JWTSecret == "" {
			appLogger.Fatal("JWT_SECRET is required when DB_DSN is set", nil)
		}
		if err := persistence.RunMigrations(migrationsDir, cfg.DB.DSN, appLogger); err != nil {
			appLogger.Fatal("Cannot migrate database", err)
		}

		dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Cannot connect Postgres", err)
		}
		defer dbPool.Close()

		userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
		workspaceRepo = persistence.NewPostgresWorkspaceRepo(dbPool, appLogger)

		var redisClient *redis.Client
		if cfg.Redis.Addr != "" {
			redisClient, err = persistence.NewRedisClient(cfg, appLogger)
			if err != nil {
				appLogger.Fatal("Cannot connect Redis", err)
			}
			defer redisClient.Close()
			workspaceRepo = persistence.NewCachedWorkspaceRepo(workspaceRepo, redisClient, cfg.Redis.CacheTTL, appLogger)
		}

		jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
		deps.JWT = jwtSvc
		deps.Auth = httpAdapter.NewAuthHandler(
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewRegisterUseCase(userRepo, appLogger),
		)
		deps.Sync = httpAdapter.NewSyncHandler(syncUC.NewSyncUseCase(workspaceRepo, appLogger))
		if redisClient != nil {
			deps.Stats = httpAdapter.NewStatsHandler(activityUC.NewActivityUseCase(persistence.NewRedisActivityStore(redisClient), appLogger))
		}
	}

	chatUseCase := chatUC.NewChatUseCase(gateway, counter, workspaceRepo, publisher, appLogger)
	deps.Chat = httpAdapter.NewChatHandler(chatUseCase, appLogger)

	router := httpAdapter.NewRouter(deps)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		appLogger.Info("Server running", zap.String("port", cfg.App.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatal("Cannot run server", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 35*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", err)
	}
}
