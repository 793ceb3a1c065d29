// Package assistant receives the intents the widget hands off: it records
// them, logs them and optionally answers them with an LLM.
package assistant

import (
	"sync"
	"time"
)

// Role identifies who wrote a transcript entry.
type Role string

const (
	RoleShopper   Role = "shopper"
	RoleAssistant Role = "assistant"
)

// Entry is one line of the conversation.
type Entry struct {
	Role Role      `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Transcript is a bounded, concurrency-safe conversation log. As a sink it
// records forwarded intents as shopper entries.
type Transcript struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
	now     func() time.Time
}

// NewTranscript keeps at most max entries; zero or less keeps everything.
func NewTranscript(max int) *Transcript {
	return &Transcript{max: max, now: time.Now}
}

// Send records text from the shopper.
func (t *Transcript) Send(text string) {
	t.Append(RoleShopper, text)
}

// Append records an entry, evicting the oldest when full.
func (t *Transcript) Append(role Role, text string) Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := Entry{Role: role, Text: text, At: t.now()}
	t.entries = append(t.entries, e)
	if t.max > 0 && len(t.entries) > t.max {
		t.entries = append(t.entries[:0:0], t.entries[len(t.entries)-t.max:]...)
	}
	return e
}

// Entries returns a copy of the conversation, oldest first.
func (t *Transcript) Entries() []Entry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len returns the number of entries kept.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}
