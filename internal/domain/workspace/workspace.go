package workspace

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Todo, Plan, Subtask and Note mirror the browser's local storage records.
// ID and Timestamp are opaque to the server and only round-trip through sync.
type Todo struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Date      string          `json:"date"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
}

type Subtask struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Text      string          `json:"text"`
	Completed bool            `json:"completed"`
}

type Plan struct {
	ID          json.RawMessage `json:"id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Subtasks    []Subtask       `json:"subtasks"`
}

// IsCompleted is true only for a plan that has subtasks and all of them are done.
func (p Plan) IsCompleted() bool {
	if len(p.Subtasks) == 0 {
		return false
	}
	for _, s := range p.Subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

type Note struct {
	ID        json.RawMessage `json:"id,omitempty"`
	Content   string          `json:"content"`
	Timestamp json.RawMessage `json:"timestamp,omitempty"`
}

// Bundle is the productivity context attached to a chat request.
type Bundle struct {
	Todos []Todo `json:"todos"`
	Plans []Plan `json:"plans"`
	Notes []Note `json:"notes"`
}

func (b Bundle) IsEmpty() bool {
	return len(b.Todos) == 0 && len(b.Plans) == 0 && len(b.Notes) == 0
}

// Normalized replaces nil lists with empty ones so JSON output is always [].
func (b Bundle) Normalized() Bundle {
	if b.Todos == nil {
		b.Todos = []Todo{}
	}
	plans := make([]Plan, len(b.Plans))
	copy(plans, b.Plans)
	for i := range plans {
		if plans[i].Subtasks == nil {
			plans[i].Subtasks = []Subtask{}
		}
	}
	b.Plans = plans
	if b.Notes == nil {
		b.Notes = []Note{}
	}
	return b
}

// Workspace is a bundle synced by a signed-in owner.
type Workspace struct {
	OwnerID   uuid.UUID `json:"owner_id"`
	Bundle    Bundle    `json:"bundle"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Repository interface {
	// FindByOwner returns apperror.ErrNotFound when the owner never synced.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) (*Workspace, error)
	Upsert(ctx context.Context, ws *Workspace) error
}
