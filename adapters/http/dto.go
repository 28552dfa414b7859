package http

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/internal/domain/user"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
)

// Chat DTOs

type ChatRequest struct {
	Query string `json:"query"`
	// empty when the key is absent, "null" when sent as null
	Context json.RawMessage `json:"context"`
}

// ContextBundle returns nil only when the request had no "context" key.
// An explicit null is an empty bundle.
func (r ChatRequest) ContextBundle() (*workspace.Bundle, error) {
	if len(r.Context) == 0 {
		return nil, nil
	}
	bundle := &workspace.Bundle{}
	if bytes.Equal(bytes.TrimSpace(r.Context), []byte("null")) {
		return bundle, nil
	}
	if err := json.Unmarshal(r.Context, bundle); err != nil {
		return nil, err
	}
	return bundle, nil
}

type ChatResponse struct {
	Response string `json:"response"`
}

// Auth DTOs

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func ToUserDTO(u *user.User) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Sync DTOs

type SyncRequest struct {
	Todos []workspace.Todo `json:"todos"`
	Plans []workspace.Plan `json:"plans"`
	Notes []workspace.Note `json:"notes"`
}

func (r SyncRequest) ToBundle() workspace.Bundle {
	return workspace.Bundle{Todos: r.Todos, Plans: r.Plans, Notes: r.Notes}
}

type WorkspaceDTO struct {
	Todos     []workspace.Todo `json:"todos"`
	Plans     []workspace.Plan `json:"plans"`
	Notes     []workspace.Note `json:"notes"`
	UpdatedAt *time.Time       `json:"updated_at"`
}

func ToWorkspaceDTO(ws *workspace.Workspace) WorkspaceDTO {
	b := ws.Bundle.Normalized()
	dto := WorkspaceDTO{Todos: b.Todos, Plans: b.Plans, Notes: b.Notes}
	if !ws.UpdatedAt.IsZero() {
		t := ws.UpdatedAt
		dto.UpdatedAt = &t
	}
	return dto
}

// Stats DTOs

type ChatStatsDTO = activity.DailyStats
