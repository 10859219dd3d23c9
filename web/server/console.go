package server

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info" or "error"
}

// Console implements core.Logger. Messages are echoed to out and the most
// recent ones are kept for the /api/console endpoint.
type Console struct {
	mu       sync.Mutex
	out      io.Writer
	messages []ConsoleMessage
	limit    int
}

// NewConsole keeps up to limit messages. out may be nil.
func NewConsole(out io.Writer, limit int) *Console {
	if limit <= 0 {
		limit = 1
	}
	return &Console{out: out, limit: limit}
}

// Printf implements core.Logger interface
func (c *Console) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	level := "info"
	lower := strings.ToLower(message)
	if strings.Contains(lower, "failed") || strings.Contains(lower, "error") {
		level = "error"
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.out != nil {
		fmt.Fprint(c.out, message)
	}

	c.messages = append(c.messages, ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
	})
	if over := len(c.messages) - c.limit; over > 0 {
		c.messages = append(c.messages[:0], c.messages[over:]...)
	}
}

// Messages returns a copy of the retained messages, oldest first
func (c *Console) Messages() []ConsoleMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ConsoleMessage(nil), c.messages...)
}
