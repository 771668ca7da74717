package uiloop

import (
	"sync/atomic"

	"github.com/mramsden/Observable/observable"
)

// Scheduler queues callbacks for the loop goroutine and wakes the loop.
// Wake-ups are coalesced: at most one is in flight until the loop drains it.
type Scheduler struct {
	queue   *observable.Queue
	wake    func() bool
	pending atomic.Bool
}

// NewScheduler wires a queue to a wake function. wake reports whether the
// wake-up was delivered.
func NewScheduler(queue *observable.Queue, wake func() bool) *Scheduler {
	if queue == nil {
		queue = observable.NewQueue()
	}
	return &Scheduler{
		queue: queue,
		wake:  wake,
	}
}

// Schedule enqueues fn and wakes the loop if no wake-up is pending.
func (s *Scheduler) Schedule(fn func()) {
	if s == nil || s.queue == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	if s.wake == nil {
		return
	}
	if s.pending.CompareAndSwap(false, true) {
		if !s.wake() {
			s.pending.Store(false)
		}
	}
}

func (s *Scheduler) resetPending() {
	if s == nil {
		return
	}
	s.pending.Store(false)
}
