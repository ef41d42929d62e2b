package gateway

import (
	"sync/atomic"
	"testing"
)

func TestWorkerPoolRunsSubmittedWork(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		pool.Submit(func() { ran.Add(1) })
	}
	pool.Wait()

	if got := ran.Load(); got != 10 {
		t.Fatalf("expected all 10 units to run, got %d", got)
	}
}

// Wait is a drain point, not a terminal state: the pool must accept more
// work after it (the dispatcher and responder share a long-lived pool).
func TestWorkerPoolReusableAfterWait(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var ran atomic.Int32
	pool.Submit(func() { ran.Add(1) })
	pool.Wait()
	pool.Submit(func() { ran.Add(1) })
	pool.Wait()

	if got := ran.Load(); got != 2 {
		t.Fatalf("expected both rounds to run, got %d", got)
	}
}

// Work submitted from within a worker (dispatcher handing a reply to the
// responder) must be waited for too: Wait returns only once the whole
// chain has finished.
func TestWorkerPoolWaitCoversNestedSubmits(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var ran atomic.Int32
	pool.Submit(func() {
		pool.Submit(func() { ran.Add(1) })
	})
	pool.Wait()

	if got := ran.Load(); got != 1 {
		t.Fatalf("expected nested unit to have completed before Wait returned, got %d", got)
	}
}

func TestWorkerPoolClampsSizeToDefault(t *testing.T) {
	pool := NewWorkerPool(0)
	defer pool.Close()

	var ran atomic.Int32
	pool.Submit(func() { ran.Add(1) })
	pool.Wait()
	if ran.Load() != 1 {
		t.Fatal("expected a zero-size pool to clamp and still run work")
	}
}
