package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/assistant-relay/internal/domain/chat"
)

func TestRender_FromStdinAsJSON(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(`{"todos":[{"date":"2024-5-1","text":"pay rent"}]}`))
	cmd.SetArgs([]string{"render", "-q", "what is left?", "-c", "-", "--json"})

	require.NoError(t, cmd.Execute())

	var msgs []chat.Message
	require.NoError(t, json.Unmarshal(out.Bytes(), &msgs))
	require.Len(t, msgs, 2)
	assert.Equal(t, chat.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Task: pay rent, Status: not done")
}

func TestRender_RequiresQuery(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"render"})

	assert.Error(t, cmd.Execute())
}
