package search

import (
	"sync"
	"time"
)

// Timer is the part of *time.Timer the scheduler needs.
type Timer interface {
	Stop() bool
}

// Clock creates timers. Tests substitute a manual clock.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the wall-clock implementation of Clock.
var SystemClock Clock = realClock{}

// Handle identifies one scheduled action. The zero Handle is never pending.
type Handle struct {
	id uint64
}

// Scheduler runs at most one delayed action at a time. Scheduling a new
// action cancels the pending one, so a burst of calls collapses into the
// last of them.
type Scheduler struct {
	clock Clock

	mu      sync.Mutex
	nextID  uint64
	pending uint64
	timer   Timer
	stopped bool
}

func NewScheduler(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock
	}
	return &Scheduler{clock: clock}
}

// Schedule cancels any pending action and arranges for action to run
// after delay. After Stop it does nothing and returns the zero Handle.
func (s *Scheduler) Schedule(delay time.Duration, action func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return Handle{}
	}
	s.cancelLocked()

	s.nextID++
	id := s.nextID
	s.pending = id
	s.timer = s.clock.AfterFunc(delay, func() { s.fire(id, action) })
	return Handle{id: id}
}

// Cancel stops h if it is still pending. Safe to call any number of times.
func (s *Scheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if h.id != 0 && h.id == s.pending {
		s.cancelLocked()
	}
}

// CancelPending stops whatever action is pending.
func (s *Scheduler) CancelPending() {
	s.mu.Lock()
	s.cancelLocked()
	s.mu.Unlock()
}

// Pending reports whether an action is waiting to fire.
func (s *Scheduler) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != 0
}

// Stop cancels the pending action and disables the scheduler for good.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.cancelLocked()
	s.mu.Unlock()
}

func (s *Scheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = nil
	s.pending = 0
}

// fire runs action unless the timer was superseded or cancelled after the
// clock had already committed to calling it.
func (s *Scheduler) fire(id uint64, action func()) {
	s.mu.Lock()
	if s.stopped || s.pending != id {
		s.mu.Unlock()
		return
	}
	s.pending = 0
	s.timer = nil
	s.mu.Unlock()

	action()
}
