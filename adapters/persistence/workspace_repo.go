package persistence

import (
	"context"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

type postgresWorkspaceRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresWorkspaceRepo(db *pgxpool.Pool, logger logger.Logger) workspace.Repository {
	return &postgresWorkspaceRepo{db: db, logger: logger}
}

func (r *postgresWorkspaceRepo) FindByOwner(ctx context.Context, ownerID uuid.UUID) (*workspace.Workspace, error) {
	query, args, err := psql.Select("owner_id", "todos", "plans", "notes", "updated_at").
		From("workspaces").
		Where(sq.Eq{"owner_id": ownerID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build workspace query", err)
	}

	ws := &workspace.Workspace{}
	var todos, plans, notes []byte
	err = r.db.QueryRow(ctx, query, args...).Scan(&ws.OwnerID, &todos, &plans, &notes, &ws.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("workspace", ownerID.String())
		}
		return nil, apperror.NewInternal("failed to scan workspace row", err)
	}

	columns := []struct {
		name string
		raw  []byte
		dst  any
	}{
		{"todos", todos, &ws.Bundle.Todos},
		{"plans", plans, &ws.Bundle.Plans},
		{"notes", notes, &ws.Bundle.Notes},
	}
	for _, col := range columns {
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			r.logger.Error("Failed to unmarshal workspace column", err,
				zap.String("owner_id", ownerID.String()), zap.String("column", col.name))
			return nil, apperror.NewInternal("failed to decode workspace "+col.name, err)
		}
	}
	ws.Bundle = ws.Bundle.Normalized()
	return ws, nil
}

// Upsert replaces all three lists at once.
func (r *postgresWorkspaceRepo) Upsert(ctx context.Context, ws *workspace.Workspace) error {
	b := ws.Bundle.Normalized()
	todos, err := json.Marshal(b.Todos)
	if err != nil {
		return apperror.NewInternal("failed to marshal todos", err)
	}
	plans, err := json.Marshal(b.Plans)
	if err != nil {
		return apperror.NewInternal("failed to marshal plans", err)
	}
	notes, err := json.Marshal(b.Notes)
	if err != nil {
		return apperror.NewInternal("failed to marshal notes", err)
	}

	query, args, err := psql.Insert("workspaces").
		Columns("owner_id", "todos", "plans", "notes", "updated_at").
		Values(ws.OwnerID, todos, plans, notes, ws.UpdatedAt).
		Suffix("ON CONFLICT (owner_id) DO UPDATE SET todos = EXCLUDED.todos, plans = EXCLUDED.plans, notes = EXCLUDED.notes, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build workspace upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.logger.Error("Failed to upsert workspace", err, zap.String("owner_id", ws.OwnerID.String()))
		return apperror.NewInternal("failed to save workspace", err)
	}
	return nil
}
