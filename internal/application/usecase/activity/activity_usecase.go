package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

type ActivityUseCase struct {
	store  activity.Store
	logger logger.Logger
	now    func() time.Time
}

func NewActivityUseCase(store activity.Store, log logger.Logger) *ActivityUseCase {
	return &ActivityUseCase{store: store, logger: log, now: time.Now}
}

// Record is called by the worker for every consumed chat event.
func (uc *ActivityUseCase) Record(ctx context.Context, ev activity.ChatEvent) error {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = uc.now().UTC()
	}
	if err := uc.store.Record(ctx, ev); err != nil {
		return err
	}
	uc.logger.Debug("Chat activity recorded",
		zap.String("event_id", ev.EventID.String()),
		zap.String("outcome", string(ev.Outcome)),
	)
	return nil
}

// Daily returns the counters for day (YYYY-MM-DD); an empty day means today in UTC.
func (uc *ActivityUseCase) Daily(ctx context.Context, day string) (*activity.DailyStats, error) {
	if day == "" {
		day = activity.DayKey(uc.now())
	} else if _, err := time.Parse(activity.DateLayout, day); err != nil {
		return nil, apperror.NewInvalidInput("date must be formatted as YYYY-MM-DD", err)
	}
	return uc.store.Daily(ctx, day)
}
