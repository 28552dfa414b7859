package event

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/assistant-relay/internal/config"
	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

type recordingWriter struct {
	msgs []kafka.Message
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error { return nil }

func TestPublishChatEvent_RoundTrip(t *testing.T) {
	w := &recordingWriter{}
	client := &KafkaProducerClient{ChatEventsWriter: w, log: logger.NewNop()}

	owner := uuid.New()
	ev := activity.ChatEvent{
		EventID:      uuid.New(),
		OwnerID:      &owner,
		Outcome:      activity.OutcomeSucceeded,
		Todos:        2,
		PromptTokens: 120,
		OccurredAt:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	require.NoError(t, client.PublishChatEvent(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, ev.EventID.String(), string(w.msgs[0].Key))

	decoded, err := DecodeChatEvent(w.msgs[0])
	require.NoError(t, err)
	assert.Equal(t, ev.EventID, decoded.EventID)
	assert.Equal(t, owner, *decoded.OwnerID)
	assert.Equal(t, activity.OutcomeSucceeded, decoded.Outcome)
	assert.True(t, ev.OccurredAt.Equal(decoded.OccurredAt))
}

func TestDecodeChatEvent_Invalid(t *testing.T) {
	_, err := DecodeChatEvent(kafka.Message{Value: []byte("not json")})
	assert.Error(t, err)
}

func TestNewKafkaProducerClient_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaProducerClient(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}
