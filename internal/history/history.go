// Package history holds the bounded rolling history of sensor readings and the
// statistics derived from it. A Buffer is not safe for concurrent use; the
// sensor service serializes access to it.
package history

import "github.com/thatsimonsguy/sensor-dashboard/internal/model"

// Capacity is the number of entries kept before the oldest is evicted.
const Capacity = 50

type Buffer struct {
	entries  []model.HistoryEntry
	capacity int
}

func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		entries:  make([]model.HistoryEntry, 0, capacity),
		capacity: capacity,
	}
}

// Append adds an entry, removing the oldest first when the buffer is full.
func (b *Buffer) Append(entry model.HistoryEntry) {
	if len(b.entries) >= b.capacity {
		copy(b.entries, b.entries[1:])
		b.entries = b.entries[:len(b.entries)-1]
	}
	b.entries = append(b.entries, entry)
}

func (b *Buffer) Clear() {
	b.entries = b.entries[:0]
}

func (b *Buffer) Len() int {
	return len(b.entries)
}

func (b *Buffer) Capacity() int {
	return b.capacity
}

// Snapshot returns a copy of the entries, oldest first.
func (b *Buffer) Snapshot() []model.HistoryEntry {
	out := make([]model.HistoryEntry, len(b.entries))
	copy(out, b.entries)
	return out
}
