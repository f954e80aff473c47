// Package notify defines the progress/result channel the pipeline reports
// through. The pipeline does not know whether the channel is a socket, a
// queue or a test harness.
package notify

import (
	"encoding/json"
	"io"
	"sync"
)

// MessageType discriminates pipeline notifications.
type MessageType string

const (
	TypeProgress  MessageType = "progress"
	TypeCompleted MessageType = "completed"
	TypeFailed    MessageType = "error"
)

// Preview carries the rendered artifacts attached to a completion message.
type Preview struct {
	Markup     string `json:"markup"`
	Stylesheet string `json:"stylesheet"`
}

// Message is one pipeline notification. Type is the discriminant; the
// remaining fields are populated per type.
type Message struct {
	Type      MessageType `json:"type"`
	SceneID   string      `json:"scene_id,omitempty"`
	Step      int         `json:"step,omitempty"`
	Total     int         `json:"total,omitempty"`
	Operation string      `json:"operation,omitempty"`
	Location  string      `json:"location,omitempty"`
	Files     []string    `json:"files,omitempty"`
	Preview   *Preview    `json:"preview,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// Notifier receives pipeline notifications. Publishing is best-effort;
// implementations must not block pipeline progress on slow consumers.
type Notifier interface {
	Publish(msg Message)
}

// Noop discards all messages.
type Noop struct{}

func (Noop) Publish(Message) {}

// Collector buffers messages in memory for inspection, mainly by tests.
type Collector struct {
	mu       sync.Mutex
	messages []Message
}

func (c *Collector) Publish(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
}

// Messages returns a copy of everything published so far.
func (c *Collector) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Writer streams each message as one JSON line to an io.Writer.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
}

// NewWriter creates a line-delimited JSON notifier.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Publish(msg Message) {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	data = append(data, '\n')
	_, _ = w.out.Write(data)
}
