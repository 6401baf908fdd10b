package logger

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRingBuffer_FIFOEviction(t *testing.T) {
	r := NewRingBuffer(3)

	for i := 1; i <= 5; i++ {
		r.Add(Entry{Message: fmt.Sprintf("msg-%d", i)})
	}

	entries := r.Entries()
	assert.Len(t, entries, 3)
	assert.Equal(t, "msg-3", entries[0].Message)
	assert.Equal(t, "msg-4", entries[1].Message)
	assert.Equal(t, "msg-5", entries[2].Message)
}

func TestRingBuffer_PartialFill(t *testing.T) {
	r := NewRingBuffer(10)
	r.Add(Entry{Message: "only"})

	entries := r.Entries()
	assert.Len(t, entries, 1)
	assert.Equal(t, "only", entries[0].Message)
}

func TestRingBuffer_DefaultSize(t *testing.T) {
	r := NewRingBuffer(0)
	assert.Equal(t, defaultRingSize, len(r.entries))
}
