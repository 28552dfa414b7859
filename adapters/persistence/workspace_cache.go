package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

const workspaceCachePrefix = "workspace:"

// cachedWorkspaceRepo serves reads from Redis and drops the entry on every write.
// Redis failures are logged and the call falls through to the wrapped repository.
type cachedWorkspaceRepo struct {
	next   workspace.Repository
	rdb    redis.Cmdable
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedWorkspaceRepo(next workspace.Repository, rdb redis.Cmdable, ttl time.Duration, logger logger.Logger) workspace.Repository {
	return &cachedWorkspaceRepo{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func workspaceCacheKey(ownerID uuid.UUID) string {
	return workspaceCachePrefix + ownerID.String()
}

func (r *cachedWorkspaceRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error) {
	key := workspaceCacheKey(ownerID)

	raw, err := r.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		ws := &workspace.Workspace{}
		if jsonErr := json.Unmarshal(raw, ws); jsonErr == nil {
			return ws, nil
		}
		r.logger.Warn("Discarding unreadable workspace cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("Workspace cache read failed", zap.String("key", key), zap.Error(err))
	}

	ws, err := r.next.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(ws); err == nil {
		if err := r.rdb.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("Workspace cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return ws, nil
}

func (r *cachedWorkspaceRepo) Upsert(ctx context.Context, ws *workspace.Workspace) error {
	if err := r.next.Upsert(ctx, ws); err != nil {
		return err
	}
	if err := r.rdb.Del(ctx, workspaceCacheKey(ws.OwnerID)).Err(); err != nil {
		r.logger.Warn("Workspace cache invalidation failed", zap.String("owner_id", ws.OwnerID.String()), zap.Error(err))
	}
	return nil
}
