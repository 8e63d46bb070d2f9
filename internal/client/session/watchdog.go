package session

import (
	"sync"
	"time"
)

// watchdog is a single-shot inactivity timer. Reset atomically replaces the
// pending expiry instead of stacking a second timer, so rapid activity never
// leaks timers: there is exactly one outstanding timer while armed.
type watchdog struct {
	mu      sync.Mutex
	timeout time.Duration
	expired func()
	timer   *time.Timer
}

func newWatchdog(timeout time.Duration, expired func()) *watchdog {
	return &watchdog{timeout: timeout, expired: expired}
}

// Reset arms the watchdog, or pushes the pending expiry out by the full
// timeout if it is already armed.
func (w *watchdog) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer == nil {
		w.timer = time.AfterFunc(w.timeout, w.expired)
		return
	}
	w.timer.Stop()
	w.timer.Reset(w.timeout)
}

// Stop disarms the watchdog. Safe to call when not armed.
func (w *watchdog) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}
