// Package tokens estimates prompt size before it is sent to the provider.
package tokens

import (
	"unicode"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/khoahotran/assistant-relay/internal/domain/chat"
)

const (
	DefaultEncoding = "cl100k_base"

	// per OpenAI's accounting: role + separators per message, plus reply priming
	perMessageOverhead = 3
	replyPriming       = 3
)

type Counter struct {
	encoder *tiktoken.Tiktoken
}

// NewCounter loads the BPE ranks for encoding. When they cannot be loaded
// (offline host, no cache dir) the counter falls back to a character heuristic.
func NewCounter(encoding string) *Counter {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return &Counter{}
	}
	return &Counter{encoder: enc}
}

func NewHeuristicCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Exact() bool {
	return c.encoder != nil
}

func (c *Counter) CountText(text string) int {
	if text == "" {
		return 0
	}
	if c.encoder == nil {
		return heuristic(text)
	}
	return len(c.encoder.Encode(text, nil, nil))
}

func (c *Counter) CountMessages(messages []chat.Message) int {
	if len(messages) == 0 {
		return 0
	}
	total := replyPriming
	for _, m := range messages {
		total += perMessageOverhead + c.CountText(string(m.Role)) + c.CountText(m.Content)
	}
	return total
}

// heuristic counts one token per Han/Hiragana/Katakana/Hangul rune and
// roughly one per four other characters.
func heuristic(text string) int {
	wide, other := 0, 0
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		text = text[size:]
		if unicode.In(r, unicode.Han, unicode.Hiragana, unicode.Katakana, unicode.Hangul) {
			wide++
		} else {
			other++
		}
	}
	return wide + (other+3)/4
}
