// Package concurrency implements the worker-pool KeySetup uses to fan its
// per-slot loops (generating p_i, crtCoeff_i, g_i, xp_i, the varpi halves and
// the zero-tester summands) across the host's logical cores, while still
// serializing the handful of shared accumulators (x0, v) that every worker
// must fold into.
package concurrency

import (
	"sync"

	"github.com/klauspost/cpuid/v2"
)

// Workers returns the default worker count for KeySetup's parallel loops:
// one goroutine per logical core, detected once from the host CPU. Callers
// that want a fixed worker count (e.g. deterministic tests) can bypass this
// and pass their own count to Range.
func Workers() int {
	if n := cpuid.CPU.LogicalCores; n > 0 {
		return n
	}
	return 1
}

// Range runs f(i) for every i in [0, n), spread across `workers` goroutines,
// and returns the first error encountered (if any). It blocks until every
// index has been processed. This is the parallel-for primitive behind every
// "loops over i in [0, N) run in parallel" requirement in spec.md §5.
func Range(n, workers int, f func(i int) error) error {
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if n == 0 {
		return nil
	}

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	idx := make(chan int, n)
	for i := 0; i < n; i++ {
		idx <- i
	}
	close(idx)

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range idx {
				if err := f(i); err != nil {
					errOnce.Do(func() { firstErr = err })
					return
				}
			}
		}()
	}
	wg.Wait()
	return firstErr
}

// Accumulator serializes folds into a single shared value (x0 = prod(p_i),
// v = sum of zero-tester summands) from concurrent workers, matching
// spec.md §4.1's "accumulation must be serialized" requirement.
type Accumulator[T any] struct {
	mu    sync.Mutex
	value T
	fold  func(acc, next T) T
}

// NewAccumulator creates an Accumulator seeded at init, combining further
// values with fold under a mutex.
func NewAccumulator[T any](init T, fold func(acc, next T) T) *Accumulator[T] {
	return &Accumulator[T]{value: init, fold: fold}
}

// Add folds next into the accumulator. Safe for concurrent use.
func (a *Accumulator[T]) Add(next T) {
	a.mu.Lock()
	a.value = a.fold(a.value, next)
	a.mu.Unlock()
}

// Value returns the accumulated result. Callers must only read it after
// every producing goroutine has finished (e.g. after Range returns).
func (a *Accumulator[T]) Value() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}
