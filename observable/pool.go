package observable

import "github.com/gammazero/workerpool"

// PoolScheduler delivers callbacks on a bounded pool of goroutines.
// Callbacks may run concurrently and in any order, including two
// notifications for the same subscriber.
type PoolScheduler struct {
	pool *workerpool.WorkerPool
}

// NewPoolScheduler starts a pool with at most workers goroutines.
func NewPoolScheduler(workers int) *PoolScheduler {
	if workers < 1 {
		workers = 1
	}
	return &PoolScheduler{pool: workerpool.New(workers)}
}

// Schedule submits fn to the pool. Work submitted after Stop is dropped;
// Schedule must not race with Stop.
func (p *PoolScheduler) Schedule(fn func()) {
	if p == nil || fn == nil || p.pool.Stopped() {
		return
	}
	p.pool.Submit(fn)
}

// Stop waits for queued callbacks to finish and stops the workers.
func (p *PoolScheduler) Stop() {
	if p == nil {
		return
	}
	p.pool.StopWait()
}
