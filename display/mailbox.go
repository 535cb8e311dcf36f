package display

import "go.uber.org/atomic"

// Mailbox is a single-slot latch between one asynchronous producer and one
// consumer. Only the most recent value is retained; older values are
// overwritten without back-pressure, and reads never block.
type Mailbox[T any] struct {
	slot atomic.Pointer[T]
}

// Store latches v as the current value.
func (m *Mailbox[T]) Store(v *T) {
	m.slot.Store(v)
}

// Load snapshots the current value, or nil if none has been stored.
func (m *Mailbox[T]) Load() *T {
	return m.slot.Load()
}

// Clear empties the mailbox.
func (m *Mailbox[T]) Clear() {
	m.slot.Store(nil)
}
