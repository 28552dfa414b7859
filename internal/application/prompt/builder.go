// Package prompt turns a user query and its productivity context into the
// messages sent to the chat-completion endpoint. Everything here is pure.
package prompt

import (
	"fmt"
	"strings"

	"github.com/khoahotran/assistant-relay/internal/domain/chat"
	"github.com/khoahotran/assistant-relay/internal/domain/workspace"
)

const (
	NotePreviewLimit = 100
	Ellipsis         = "..."
)

const SystemPrompt = "You are a personal productivity assistant that helps the user summarize schedules, produce progress reports and answer general questions.\n" +
	"Use the context data provided by the user and answer in a friendly, professional way.\n" +
	"For schedule summaries and progress reports, be thorough and offer useful suggestions.\n" +
	"For general questions, answer from your own knowledge.\n" +
	"If you really do not know the answer, say so politely instead of making something up, and suggest where the user could find it."

const closingInstruction = "Based on the data above, answer the user's request in the first person and in a friendly tone. Keep the answer concise and focused on what the user is asking for."

// Build always returns exactly two messages: the fixed system prompt and the
// user prompt assembled from query and bundle.
func Build(query string, bundle workspace.Bundle) []chat.Message {
	return []chat.Message{
		{Role: chat.RoleSystem, Content: SystemPrompt},
		{Role: chat.RoleUser, Content: UserPrompt(query, bundle)},
	}
}

// UserPrompt renders the header, one section per non-empty list and the closing line.
func UserPrompt(query string, bundle workspace.Bundle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "User request: %s\n\n", query)

	if len(bundle.Todos) > 0 {
		b.WriteString("Todo items:\n")
		for _, t := range bundle.Todos {
			fmt.Fprintf(&b, "Date: %s, Task: %s, Status: %s\n", t.Date, t.Text, doneLabel(t.Completed))
		}
		b.WriteString("\n")
	}

	if len(bundle.Plans) > 0 {
		b.WriteString("Long-term plans:\n")
		for _, p := range bundle.Plans {
			fmt.Fprintf(&b, "Plan: %s, Status: %s\n", p.Title, planLabel(p))
			if len(p.Subtasks) > 0 {
				b.WriteString("  Subtasks:\n")
				for i, s := range p.Subtasks {
					fmt.Fprintf(&b, "    %d. %s (%s)\n", i+1, s.Text, doneLabel(s.Completed))
				}
			}
		}
		b.WriteString("\n")
	}

	if len(bundle.Notes) > 0 {
		b.WriteString("Notes:\n")
		for _, n := range bundle.Notes {
			fmt.Fprintf(&b, "Content: %s\n", Preview(n.Content))
		}
	}

	b.WriteString("\n")
	b.WriteString(closingInstruction)
	return b.String()
}

// Preview keeps the first NotePreviewLimit characters and marks the cut with Ellipsis.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= NotePreviewLimit {
		return content
	}
	return string(runes[:NotePreviewLimit]) + Ellipsis
}

func doneLabel(completed bool) string {
	if completed {
		return "done"
	}
	return "not done"
}

func planLabel(p workspace.Plan) string {
	if p.IsCompleted() {
		return "completed"
	}
	return "in progress"
}
