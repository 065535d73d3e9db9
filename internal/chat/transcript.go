package chat

import (
	"fmt"
	"sync"
)

// Transcript is the append-only, ordered message log rendered by the UI.
// Each Append swaps in a fresh slice, so a stored slice is never written to
// after it has been published.
type Transcript struct {
	mu       sync.Mutex
	messages []Message
	ids      map[string]struct{}
}

func NewTranscript() *Transcript {
	return &Transcript{ids: make(map[string]struct{})}
}

func (t *Transcript) Append(msg Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.ids == nil {
		t.ids = make(map[string]struct{})
	}
	if _, exists := t.ids[msg.ID]; exists {
		return fmt.Errorf("append %s: %w", msg.ID, ErrDuplicateID)
	}

	next := make([]Message, len(t.messages), len(t.messages)+1)
	copy(next, t.messages)
	t.messages = append(next, msg)
	t.ids[msg.ID] = struct{}{}

	return nil
}

// Snapshot returns the messages in insertion order. The slice is a copy.
func (t *Transcript) Snapshot() []Message {
	t.mu.Lock()
	current := t.messages
	t.mu.Unlock()

	copied := make([]Message, len(current))
	copy(copied, current)

	return copied
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
