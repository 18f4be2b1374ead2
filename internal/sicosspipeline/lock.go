/*
Package sicosspipeline - period advisory lock

FILE: internal/sicosspipeline/lock.go

PeriodLock is an in-memory advisory lock keyed by fiscal period, grounded on
the teacher's per-key in-memory map + mutex shape in
internal/middleware/ratelimit.go. A second /sicoss/process call for a period
already running gets PeriodBusy (§6.3: 409 Conflict) instead of racing the
first run's persistence transaction.
*/
package sicosspipeline

import (
	"sync"

	sicosserrors "sicoss/internal/errors"
)

// PeriodLock tracks which fiscal periods currently have a run in progress.
type PeriodLock struct {
	mu   sync.Mutex
	busy map[string]bool
}

// NewPeriodLock builds an empty PeriodLock.
func NewPeriodLock() *PeriodLock {
	return &PeriodLock{busy: make(map[string]bool)}
}

// Acquire marks period as busy, or returns PeriodBusy if it already is.
func (l *PeriodLock) Acquire(period string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.busy[period] {
		return sicosserrors.ErrPeriodBusy
	}
	l.busy[period] = true
	return nil
}

// Release clears the busy flag for period. Safe to call even if Acquire was
// never called for it.
func (l *PeriodLock) Release(period string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.busy, period)
}
