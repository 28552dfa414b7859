package service

import (
	"context"

	"github.com/khoahotran/assistant-relay/internal/domain/chat"
)

// CompletionGateway sends a prompt to the model provider and returns the reply text.
// Failures are *apperror.AppError with base ErrUpstream or ErrUpstreamMalformed.
type CompletionGateway interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

type TokenCounter interface {
	CountMessages(messages []chat.Message) int
}
