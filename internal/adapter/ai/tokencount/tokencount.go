// Package tokencount provides token counting for LLM prompt budgeting.
//
// It uses tiktoken-go to size prompt fragments so that transcripts and
// resume excerpts can be truncated to a fixed token budget before they are
// embedded into a prompt. Counting is best-effort: when no encoding is
// available the counter falls back to a bytes/4 estimate rather than
// failing the caller.
package tokencount

import (
	"log/slog"
	"strings"
	"sync"

	tiktoken "github.com/pkoukk/tiktoken-go"
)

const defaultEncoding = "cl100k_base"

// Counter provides thread-safe token counting.
type Counter struct {
	mu  sync.Mutex
	enc *tiktoken.Tiktoken
}

// NewCounter creates a new token counter instance.
func NewCounter() *Counter { return &Counter{} }

// DefaultCounter is a global token counter instance.
var DefaultCounter = NewCounter()

func (c *Counter) encoding() *tiktoken.Tiktoken {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.enc != nil {
		return c.enc
	}
	enc, err := tiktoken.GetEncoding(defaultEncoding)
	if err != nil {
		slog.Warn("token encoding unavailable, using byte estimate", slog.Any("error", err))
		return nil
	}
	c.enc = enc
	return c.enc
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	if text == "" {
		return 0
	}
	if enc := c.encoding(); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	// Rough heuristic: one token per ~4 bytes of English text.
	return (len(text) + 3) / 4
}

// Truncate cuts text to at most maxTokens tokens, appending an ellipsis
// marker when anything was removed.
func (c *Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 || text == "" {
		return text
	}
	if enc := c.encoding(); enc != nil {
		ids := enc.Encode(text, nil, nil)
		if len(ids) <= maxTokens {
			return text
		}
		return strings.TrimSpace(enc.Decode(ids[:maxTokens])) + "..."
	}
	limit := maxTokens * 4
	if len(text) <= limit {
		return text
	}
	return strings.TrimSpace(text[:limit]) + "..."
}
