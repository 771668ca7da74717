package observable

import "sync"

// Scheduler is the context a subscriber's callbacks are delivered on.
// An observable hands it one func per notification and never waits for it.
type Scheduler interface {
	Schedule(fn func())
}

// SchedulerFunc lets a plain function act as a delivery context.
type SchedulerFunc func(func())

// Schedule passes fn to f. A nil f drops fn.
func (f SchedulerFunc) Schedule(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// DirectScheduler delivers on whichever goroutine enumerates subscribers,
// which for an Observable is its serial queue. A slow callback therefore
// holds up every later subscribe, unsubscribe and notification.
var DirectScheduler Scheduler = SchedulerFunc(func(fn func()) {
	if fn != nil {
		fn()
	}
})

// AsyncScheduler starts a goroutine per notification.
// Two changes may reach the same subscriber out of order.
type AsyncScheduler struct{}

// Schedule runs fn on a new goroutine.
func (AsyncScheduler) Schedule(fn func()) {
	if fn == nil {
		return
	}
	go fn()
}

// Queue holds notifications until the owner drains it with Flush, as a frame
// loop or a test does.
type Queue struct {
	mu      sync.Mutex
	pending []func()
}

// NewQueue returns an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Schedule appends fn.
func (q *Queue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending = append(q.pending, fn)
	q.mu.Unlock()
}

// Len is the number of notifications waiting for Flush.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Flush delivers what was queued before the call, oldest first, on the
// calling goroutine, and reports how many ran. Work queued by those
// callbacks waits for the next Flush.
func (q *Queue) Flush() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
