package observable

import "sync"

// Bindings tracks releasers so they can be released together.
type Bindings struct {
	mu    sync.Mutex
	items []Releaser
	sched Scheduler
}

// NewBindings creates a Bindings whose BindTo calls deliver on scheduler.
func NewBindings(scheduler Scheduler) *Bindings {
	return &Bindings{sched: scheduler}
}

// SetScheduler updates the default scheduler.
func (b *Bindings) SetScheduler(scheduler Scheduler) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.sched = scheduler
	b.mu.Unlock()
}

// Scheduler returns the default scheduler.
func (b *Bindings) Scheduler() Scheduler {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	scheduler := b.sched
	b.mu.Unlock()
	return scheduler
}

// Add tracks r.
func (b *Bindings) Add(r Releaser) {
	if b == nil || r == nil {
		return
	}
	b.mu.Lock()
	b.items = append(b.items, r)
	b.mu.Unlock()
}

// Len reports how many releasers are tracked.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	n := len(b.items)
	b.mu.Unlock()
	return n
}

// Release releases every tracked releaser and forgets them.
func (b *Bindings) Release() {
	if b == nil {
		return
	}
	b.mu.Lock()
	items := b.items
	b.items = nil
	b.mu.Unlock()
	for _, r := range items {
		r.Release()
	}
}

// BindTo binds fn to source and tracks the binding in bs. The default
// scheduler of bs applies unless opts pick another with On.
func BindTo[T any](bs *Bindings, source Readable[T], fn Callback[T], opts ...SubscribeOption) *Binding {
	if scheduler := bs.Scheduler(); scheduler != nil {
		opts = append([]SubscribeOption{On(scheduler)}, opts...)
	}
	b := Bind(source, fn, opts...)
	bs.Add(b)
	return b
}
