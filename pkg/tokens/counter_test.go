package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/assistant-relay/internal/domain/chat"
)

func TestHeuristicCounter_CountText(t *testing.T) {
	c := NewHeuristicCounter()

	assert.False(t, c.Exact())
	assert.Equal(t, 0, c.CountText(""))
	assert.Equal(t, 1, c.CountText("abcd"))
	assert.Equal(t, 2, c.CountText("abcde"))
	assert.Equal(t, 3, c.CountText("待办事"))
}

func TestHeuristicCounter_CountMessages(t *testing.T) {
	c := NewHeuristicCounter()

	assert.Equal(t, 0, c.CountMessages(nil))

	msgs := []chat.Message{
		{Role: chat.RoleSystem, Content: "abcd"},
		{Role: chat.RoleUser, Content: "abcdefgh"},
	}
	// priming 3 + (3 + "system" 2 + 1) + (3 + "user" 1 + 2)
	assert.Equal(t, 15, c.CountMessages(msgs))
}
