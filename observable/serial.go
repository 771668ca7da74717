package observable

import (
	"sync"

	"github.com/ef-ds/deque"
)

// SerialQueue runs submitted work one item at a time in FIFO order.
//
// A drain goroutine is started when work arrives on an idle queue and exits
// once the queue is empty again, so an unused SerialQueue holds no goroutine
// and needs no Close. A panic in submitted work is not recovered.
type SerialQueue struct {
	name    string
	mu      sync.Mutex
	pending deque.Deque
	running bool
}

var mainQueue = NewSerialQueue("main")

// Main returns the process-wide serial queue used as the default delivery
// and update context.
func Main() *SerialQueue {
	return mainQueue
}

// NewSerialQueue creates an idle serial queue.
func NewSerialQueue(name string) *SerialQueue {
	return &SerialQueue{name: name}
}

// Name returns the label the queue was created with.
func (q *SerialQueue) Name() string {
	if q == nil {
		return ""
	}
	return q.name
}

// Schedule appends fn and returns without waiting for it to run.
func (q *SerialQueue) Schedule(fn func()) {
	if q == nil || fn == nil {
		return
	}
	q.mu.Lock()
	q.pending.PushBack(fn)
	if q.running {
		q.mu.Unlock()
		return
	}
	q.running = true
	q.mu.Unlock()
	go q.drain()
}

// Len reports how many items are waiting to run.
func (q *SerialQueue) Len() int {
	if q == nil {
		return 0
	}
	q.mu.Lock()
	n := q.pending.Len()
	q.mu.Unlock()
	return n
}

func (q *SerialQueue) drain() {
	for {
		q.mu.Lock()
		next, ok := q.pending.PopFront()
		if !ok {
			q.running = false
			q.mu.Unlock()
			return
		}
		q.mu.Unlock()
		next.(func())()
	}
}
