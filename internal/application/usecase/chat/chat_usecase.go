package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/assistant-relay/internal/application/prompt"
	"github.com/khoahotran/assistant-relay/internal/application/service"
	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
)

var tracer = otel.Tracer("chat_usecase")

type ChatUseCase struct {
	gateway    service.CompletionGateway
	counter    service.TokenCounter
	workspaces workspace.Repository
	publisher  activity.Publisher
	logger     logger.Logger
	now        func() time.Time
}

// NewChatUseCase wires the gateway. workspaces may be nil when no database is
// configured; stored context is then never looked up.
func NewChatUseCase(
	gw service.CompletionGateway,
	counter service.TokenCounter,
	workspaces workspace.Repository,
	publisher activity.Publisher,
	log logger.Logger,
) *ChatUseCase {
	return &ChatUseCase{
		gateway:    gw,
		counter:    counter,
		workspaces: workspaces,
		publisher:  publisher,
		logger:     log,
		now:        time.Now,
	}
}

type ChatInput struct {
	Query string
	// Context is nil when the request had no "context" key.
	Context *workspace.Bundle
	// OwnerID is set when the caller presented a valid bearer token.
	OwnerID *uuid.UUID
}

type ChatOutput struct {
	Response string `json:"response"`
}

func (uc *ChatUseCase) Execute(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, apperror.NewInvalidInput("query must not be empty", nil)
	}

	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	bundle, err := uc.resolveBundle(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	l := uc.logger.With(
		zap.String("query", input.Query),
		zap.Int("todos", len(bundle.Todos)),
		zap.Int("plans", len(bundle.Plans)),
		zap.Int("notes", len(bundle.Notes)),
	)
	l.Info("ChatUseCase received query")

	messages := prompt.Build(input.Query, bundle)
	promptTokens := uc.counter.CountMessages(messages)
	span.SetAttributes(attribute.Int("chat.prompt_tokens", promptTokens))
	l.Info("Prompt built for LLM", zap.Int("prompt_tokens", promptTokens))

	// The outbound call is bounded by the gateway timeout, not by the client connection.
	reply, err := uc.gateway.Complete(context.WithoutCancel(ctx), messages)

	ev := activity.ChatEvent{
		EventID:      uuid.New(),
		OwnerID:      input.OwnerID,
		Outcome:      activity.OutcomeSucceeded,
		Todos:        len(bundle.Todos),
		Plans:        len(bundle.Plans),
		Notes:        len(bundle.Notes),
		PromptTokens: promptTokens,
		OccurredAt:   uc.now().UTC(),
	}
	if err != nil {
		ev.Outcome = activity.OutcomeFailed
	}
	go func() {
		if pubErr := uc.publisher.PublishChatEvent(context.Background(), ev); pubErr != nil {
			uc.logger.Error("Failed to publish chat event", pubErr, zap.String("event_id", ev.EventID.String()))
		}
	}()

	if err != nil {
		span.RecordError(err)
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, appErr
		}
		return nil, apperror.NewInternal("failed to generate LLM response", err)
	}

	l.Info("LLM response generated", zap.Int("response_len", len(reply)))
	return &ChatOutput{Response: reply}, nil
}

func (uc *ChatUseCase) resolveBundle(ctx context.Context, input ChatInput) (workspace.Bundle, error) {
	if input.Context != nil {
		return *input.Context, nil
	}
	if input.OwnerID == nil || uc.workspaces == nil {
		return workspace.Bundle{}, nil
	}

	ws, err := uc.workspaces.FindByOwner(ctx, *input.OwnerID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return workspace.Bundle{}, nil
		}
		uc.logger.Error("Failed to load stored workspace", err, zap.String("owner_id", input.OwnerID.String()))
		return workspace.Bundle{}, err
	}
	return ws.Bundle, nil
}
