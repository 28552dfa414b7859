package sync

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

type SyncUseCase struct {
	repo   workspace.Repository
	logger logger.Logger
	now    func() time.Time
}

func NewSyncUseCase(repo workspace.Repository, log logger.Logger) *SyncUseCase {
	return &SyncUseCase{repo: repo, logger: log, now: time.Now}
}

// Fetch returns the owner's stored workspace, or an empty one if nothing was synced yet.
func (uc *SyncUseCase) Fetch(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error) {
	ws, err := uc.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return &workspace.Workspace{OwnerID: ownerID, Bundle: workspace.Bundle{}.Normalized()}, nil
		}
		return nil, err
	}
	ws.Bundle = ws.Bundle.Normalized()
	return ws, nil
}

// Save replaces all todos, plans and notes of the owner with bundle.
func (uc *SyncUseCase) Save(ctx context.Context, ownerID uuid.UUID, bundle workspace.Bundle) (*workspace.Workspace, error) {
	ws := &workspace.Workspace{
		OwnerID:   ownerID,
		Bundle:    bundle.Normalized(),
		UpdatedAt: uc.now().UTC(),
	}
	if err := uc.repo.Upsert(ctx, ws); err != nil {
		return nil, err
	}

	uc.logger.Info("Workspace synced",
		zap.String("owner_id", ownerID.String()),
		zap.Int("todos", len(ws.Bundle.Todos)),
		zap.Int("plans", len(ws.Bundle.Plans)),
		zap.Int("notes", len(ws.Bundle.Notes)),
	)
	return ws, nil
}
