package display

import (
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/atomic"
)

// HostClock is a ClockSource backed by a clock.Clock, with a runtime-settable
// sync mode. Hosts that keep their own notion of visualization time can
// provide their own ClockSource instead.
type HostClock struct {
	clock clock.Clock
	mode  atomic.Int32
}

// NewHostClock returns a HostClock reading from c with the given initial sync
// mode.
func NewHostClock(c clock.Clock, mode SyncMode) *HostClock {
	hc := &HostClock{clock: c}
	hc.mode.Store(int32(mode))
	return hc
}

// Now returns the current visualization time.
func (hc *HostClock) Now() time.Time {
	return hc.clock.Now()
}

// SyncMode returns the active synchronization policy.
func (hc *HostClock) SyncMode() SyncMode {
	return SyncMode(hc.mode.Load())
}

// SetSyncMode changes the active synchronization policy.
func (hc *HostClock) SetSyncMode(mode SyncMode) {
	hc.mode.Store(int32(mode))
}
