package logger

import (
	"sync"
	"time"

	"go.uber.org/zap/zapcore"
)

const defaultRingSize = 200

// Entry is one buffered log line.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// RingBuffer keeps the most recent log entries with FIFO eviction. Safe for
// concurrent use; no ordering guarantee beyond append order.
type RingBuffer struct {
	mu      sync.Mutex
	entries []Entry
	next    int
	full    bool
}

func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = defaultRingSize
	}
	return &RingBuffer{entries: make([]Entry, size)}
}

// Hook satisfies the zap.Hooks callback shape.
func (r *RingBuffer) Hook(e zapcore.Entry) error {
	r.Add(Entry{Time: e.Time, Level: e.Level.String(), Message: e.Message})
	return nil
}

func (r *RingBuffer) Add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[r.next] = e
	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}
}

// Entries returns a copy of the buffered entries, oldest first.
func (r *RingBuffer) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}
