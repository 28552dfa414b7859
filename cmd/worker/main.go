package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/adapters/event"
	"github.com/khoahotran/assistant-relay/adapters/persistence"
	activityUC "github.com/khoahotran/assistant-relay/internal/application/usecase/activity"
	"github.com/khoahotran/assistant-relay/internal/config"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

func main() {
	// Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)
	defer appLogger.Sync()
	appLogger.Info("Starting Assistant Relay Worker...")

	if len(cfg.Kafka.Brokers) == 0 {
		appLogger.Fatal("KAFKA_BROKERS is required for the worker", nil)
	}

	// Redis
	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Cannot connect Redis", err)
	}
	defer redisClient.Close()

	// Worker Use Case
	recordActivityUC := activityUC.NewActivityUseCase(persistence.NewRedisActivityStore(redisClient), appLogger)

	// Kafka Consumer
	consumer := event.NewChatEventsReader(cfg)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appLogger.Info("Worker listening", zap.String("topic", event.TopicChatEvents))

	for {
		msg, err := consumer.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				appLogger.Info("Worker stopped")
				return
			}
			appLogger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := appLogger.With(zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		ev, err := event.DecodeChatEvent(msg)
		if err != nil {
			l.Error("Failed to decode chat event, skipping", err)
			commitMessage(consumer, msg, l)
			continue
		}

		if err := recordActivityUC.Record(ctx, ev); err != nil {
			l.Error("Failed to record chat activity", err)
			continue
		}

		commitMessage(consumer, msg, l)
	}
}

func commitMessage(consumer *kafka.Reader, msg kafka.Message, log logger.Logger) {
	if err := consumer.CommitMessages(context.Background(), msg); err != nil {
		log.Error("Failed to commit message", err)
	}
}
