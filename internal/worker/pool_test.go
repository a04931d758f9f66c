package worker

import (
	"context"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int64
}

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	return &countResult{}
}

type countResult struct{}

func (r *countResult) GetError() error { return nil }

func TestPoolExecutesAllJobs(t *testing.T) {
	var counter int64
	pool := NewPoolWithCapacity(4, 100)
	pool.Start()

	for i := 0; i < 100; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()

	if len(results) != 100 {
		t.Errorf("results = %d, want 100", len(results))
	}
	if n := atomic.LoadInt64(&counter); n != 100 {
		t.Errorf("executions = %d, want 100", n)
	}
}

func TestPoolZeroWorkersClamped(t *testing.T) {
	var counter int64
	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestPoolWaitWithNoJobs(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	if results := pool.Wait(); len(results) != 0 {
		t.Errorf("results = %d, want 0", len(results))
	}
}

func TestPoolShutdownStopsWorkers(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown() // must not hang or panic
}
