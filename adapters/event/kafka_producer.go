package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/khoahotran/assistant-relay/internal/config"
	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

const (
	TopicChatEvents = "chat.events"
	ActivityGroupID = "chat-activity-group"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ChatEventsWriter messageWriter
	log              logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	chatWriter := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        TopicChatEvents,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Info("Initialize Kafka Producers successfully.")
	return &KafkaProducerClient{ChatEventsWriter: chatWriter, log: log}, nil
}

func (c *KafkaProducerClient) PublishChatEvent(ctx context.Context, ev activity.ChatEvent) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal chat event: %w", err)
	}
	return c.ChatEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.EventID.String()),
		Value: value,
		Time:  ev.OccurredAt,
	})
}

func (c *KafkaProducerClient) Close() {
	if c.ChatEventsWriter != nil {
		c.ChatEventsWriter.Close()
	}
	c.log.Info("Closed Kafka Producers")
}

// NoopPublisher drops events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishChatEvent(context.Context, activity.ChatEvent) error { return nil }

func NewChatEventsReader(cfg config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicChatEvents,
		GroupID:  ActivityGroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func DecodeChatEvent(msg kafka.Message) (activity.ChatEvent, error) {
	var ev activity.ChatEvent
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		return ev, fmt.Errorf("unmarshal chat event: %w", err)
	}
	return ev, nil
}
