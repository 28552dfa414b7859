package workspace

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlan_IsCompleted(t *testing.T) {
	assert.True(t, Plan{Subtasks: []Subtask{{Completed: true}, {Completed: true}}}.IsCompleted())
	assert.False(t, Plan{Subtasks: []Subtask{{Completed: true}, {Completed: false}}}.IsCompleted())
	assert.False(t, Plan{}.IsCompleted())
}

func TestBundle_DecodeDefaultsMissingFields(t *testing.T) {
	raw := `{"todos":[{"text":"x"}],"plans":[{"id":17,"title":"p"}],"notes":[{"content":"n","timestamp":"2024-05-01T10:00:00Z"}]}`

	var b Bundle
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.Equal(t, "", b.Todos[0].Date)
	assert.False(t, b.Todos[0].Completed)
	assert.Empty(t, b.Plans[0].Subtasks)
	assert.JSONEq(t, `17`, string(b.Plans[0].ID))
	assert.JSONEq(t, `"2024-05-01T10:00:00Z"`, string(b.Notes[0].Timestamp))
}

func TestBundle_Normalized(t *testing.T) {
	b := Bundle{Plans: []Plan{{Title: "p"}}}.Normalized()

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"todos":[],"plans":[{"title":"p","subtasks":[]}],"notes":[]}`, string(out))
	assert.False(t, b.IsEmpty())
	assert.True(t, Bundle{}.IsEmpty())
}
