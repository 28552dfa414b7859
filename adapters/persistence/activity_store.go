package persistence

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
)

const (
	activityKeyPrefix = "chat:activity:"
	activityRetention = 90 * 24 * time.Hour
)

type redisActivityStore struct {
	rdb redis.Cmdable
}

func NewRedisActivityStore(rdb redis.Cmdable) activity.Store {
	return &redisActivityStore{rdb: rdb}
}

func activityKey(day string) string {
	return activityKeyPrefix + day
}

func (s *redisActivityStore) Record(ctx context.Context, ev activity.ChatEvent) error {
	key := activityKey(activity.DayKey(ev.OccurredAt))
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, key, "total", 1)
		pipe.HIncrBy(ctx, key, string(ev.Outcome), 1)
		pipe.Expire(ctx, key, activityRetention)
		return nil
	})
	if err != nil {
		return apperror.NewInternal("failed to record chat activity", err)
	}
	return nil
}

func (s *redisActivityStore) Daily(ctx context.Context, day string) (*activity.DailyStats, error) {
	fields, err := s.rdb.HGetAll(ctx, activityKey(day)).Result()
	if err != nil {
		return nil, apperror.NewInternal("failed to read chat activity", err)
	}

	stats := &activity.DailyStats{Date: day}
	stats.Total = parseCounter(fields["total"])
	stats.Succeeded = parseCounter(fields[string(activity.OutcomeSucceeded)])
	stats.Failed = parseCounter(fields[string(activity.OutcomeFailed)])
	return stats, nil
}

func parseCounter(v string) int64 {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
