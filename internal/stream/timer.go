package stream

import (
	"sync"
	"time"
)

type timerHandle interface {
	Stop() bool
}

// reconnectTimer holds at most one pending delayed call. Scheduling always
// cancels whatever was pending first, which is what keeps "one scheduled
// reconnect at a time" a mechanical property instead of a convention.
type reconnectTimer struct {
	mu      sync.Mutex
	pending timerHandle

	// after is time.AfterFunc unless a test swaps it out.
	after func(d time.Duration, fn func()) timerHandle
}

func newReconnectTimer() *reconnectTimer {
	return &reconnectTimer{
		after: func(d time.Duration, fn func()) timerHandle {
			return time.AfterFunc(d, fn)
		},
	}
}

func (r *reconnectTimer) Schedule(d time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil {
		r.pending.Stop()
	}
	r.pending = r.after(d, fn)
}

func (r *reconnectTimer) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pending != nil {
		r.pending.Stop()
		r.pending = nil
	}
}
