package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainchat "github.com/khoahotran/assistant-relay/internal/domain/chat"
	"github.com/khoahotran/assistant-relay/internal/domain/activity"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
	"github.com/khoahotran/assistant-relay/pkg/apperror"
	"github.com/khoahotran/assistant-relay/pkg/logger"
	"github.com/khoahotran/assistant-relay/pkg/tokens"
)

type fakeGateway struct {
	reply    string
	err      error
	calls    int
	messages []domainchat.Message
	ctxErr   error
}

func (g *fakeGateway) Complete(ctx context.Context, messages []domainchat.Message) (string, error) {
	g.calls++
	g.messages = messages
	g.ctxErr = ctx.Err()
	return g.reply, g.err
}

type fakeWorkspaces struct {
	ws  *workspace.Workspace
	err error
}

func (f *fakeWorkspaces) FindByOwner(context.Context, uuid.UUID) (*workspace.Workspace, error) {
	return f.ws, f.err
}

func (f *fakeWorkspaces) Upsert(context.Context, *workspace.Workspace) error { return nil }

type chanPublisher struct {
	events chan activity.ChatEvent
}

func newChanPublisher() *chanPublisher {
	return &chanPublisher{events: make(chan activity.ChatEvent, 4)}
}

func (p *chanPublisher) PublishChatEvent(_ context.Context, ev activity.ChatEvent) error {
	p.events <- ev
	return nil
}

func (p *chanPublisher) next(t *testing.T) activity.ChatEvent {
	t.Helper()
	select {
	case ev := <-p.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("no chat event published")
		return activity.ChatEvent{}
	}
}

func newUseCase(gw *fakeGateway, ws workspace.Repository, pub activity.Publisher) *ChatUseCase {
	return NewChatUseCase(gw, tokens.NewHeuristicCounter(), ws, pub, logger.NewNop())
}

func TestExecute_RejectsBlankQuery(t *testing.T) {
	gw := &fakeGateway{}
	uc := newUseCase(gw, nil, newChanPublisher())

	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := uc.Execute(context.Background(), ChatInput{Query: q})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	}
	assert.Equal(t, 0, gw.calls)
}

func TestExecute_Success(t *testing.T) {
	gw := &fakeGateway{reply: "You finished one task."}
	pub := newChanPublisher()
	uc := newUseCase(gw, nil, pub)

	bundle := &workspace.Bundle{Todos: []workspace.Todo{{Date: "2024-5-1", Text: "report", Completed: true}}}
	out, err := uc.Execute(context.Background(), ChatInput{Query: "summarize my week", Context: bundle})

	require.NoError(t, err)
	assert.Equal(t, "You finished one task.", out.Response)
	require.Len(t, gw.messages, 2)
	assert.Contains(t, gw.messages[1].Content, "Task: report, Status: done")

	ev := pub.next(t)
	assert.Equal(t, activity.OutcomeSucceeded, ev.Outcome)
	assert.Equal(t, 1, ev.Todos)
	assert.Positive(t, ev.PromptTokens)
	assert.Nil(t, ev.OwnerID)
}

func TestExecute_GatewayFailureKeepsKind(t *testing.T) {
	gw := &fakeGateway{err: apperror.NewUpstream("transport failure", errors.New("timeout"))}
	pub := newChanPublisher()
	uc := newUseCase(gw, nil, pub)

	_, err := uc.Execute(context.Background(), ChatInput{Query: "hi"})

	assert.ErrorIs(t, err, apperror.ErrUpstream)
	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, activity.OutcomeFailed, pub.next(t).Outcome)
}

func TestExecute_UntypedGatewayErrorBecomesInternal(t *testing.T) {
	gw := &fakeGateway{err: errors.New("boom")}
	uc := newUseCase(gw, nil, newChanPublisher())

	_, err := uc.Execute(context.Background(), ChatInput{Query: "hi"})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestExecute_ClientCancelDoesNotCancelUpstream(t *testing.T) {
	gw := &fakeGateway{reply: "ok"}
	uc := newUseCase(gw, nil, newChanPublisher())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := uc.Execute(ctx, ChatInput{Query: "hi"})

	require.NoError(t, err)
	assert.NoError(t, gw.ctxErr)
}

func TestExecute_UsesStoredWorkspaceWhenContextAbsent(t *testing.T) {
	owner := uuid.New()
	gw := &fakeGateway{reply: "ok"}
	ws := &fakeWorkspaces{ws: &workspace.Workspace{
		OwnerID: owner,
		Bundle:  workspace.Bundle{Notes: []workspace.Note{{Content: "stored note"}}},
	}}
	pub := newChanPublisher()
	uc := newUseCase(gw, ws, pub)

	_, err := uc.Execute(context.Background(), ChatInput{Query: "hi", OwnerID: &owner})

	require.NoError(t, err)
	assert.Contains(t, gw.messages[1].Content, "Content: stored note")
	assert.Equal(t, owner, *pub.next(t).OwnerID)
}

func TestExecute_ExplicitContextWinsOverStored(t *testing.T) {
	owner := uuid.New()
	gw := &fakeGateway{reply: "ok"}
	ws := &fakeWorkspaces{ws: &workspace.Workspace{
		Bundle: workspace.Bundle{Notes: []workspace.Note{{Content: "stored note"}}},
	}}
	uc := newUseCase(gw, ws, newChanPublisher())

	_, err := uc.Execute(context.Background(), ChatInput{Query: "hi", OwnerID: &owner, Context: &workspace.Bundle{}})

	require.NoError(t, err)
	assert.NotContains(t, gw.messages[1].Content, "stored note")
}

func TestExecute_MissingStoredWorkspaceIsEmpty(t *testing.T) {
	owner := uuid.New()
	gw := &fakeGateway{reply: "ok"}
	ws := &fakeWorkspaces{err: apperror.NewNotFound("workspace", owner.String())}
	uc := newUseCase(gw, ws, newChanPublisher())

	_, err := uc.Execute(context.Background(), ChatInput{Query: "hi", OwnerID: &owner})
	require.NoError(t, err)
	assert.Equal(t, 1, gw.calls)
}

func TestExecute_StoredWorkspaceFailure(t *testing.T) {
	owner := uuid.New()
	gw := &fakeGateway{reply: "ok"}
	ws := &fakeWorkspaces{err: apperror.NewInternal("db down", nil)}
	uc := newUseCase(gw, ws, newChanPublisher())

	_, err := uc.Execute(context.Background(), ChatInput{Query: "hi", OwnerID: &owner})
	assert.ErrorIs(t, err, apperror.ErrInternal)
	assert.Equal(t, 0, gw.calls)
}
