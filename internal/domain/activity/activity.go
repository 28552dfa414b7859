package activity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// ChatEvent is published once per handled chat request.
type ChatEvent struct {
	EventID      uuid.UUID  `json:"event_id"`
	OwnerID      *uuid.UUID `json:"owner_id,omitempty"`
	Outcome      Outcome    `json:"outcome"`
	Todos        int        `json:"todos"`
	Plans        int        `json:"plans"`
	Notes        int        `json:"notes"`
	PromptTokens int        `json:"prompt_tokens"`
	OccurredAt   time.Time  `json:"occurred_at"`
}

// DailyStats are the chat counters for one UTC day.
type DailyStats struct {
	Date      string `json:"date"`
	Total     int64  `json:"total"`
	Succeeded int64  `json:"succeeded"`
	Failed    int64  `json:"failed"`
}

const DateLayout = "2006-01-02"

func DayKey(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

type Publisher interface {
	PublishChatEvent(ctx context.Context, ev ChatEvent) error
}

type Store interface {
	Record(ctx context.Context, ev ChatEvent) error
	Daily(ctx context.Context, day string) (*DailyStats, error)
}
