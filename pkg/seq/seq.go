// Package seq tags asynchronous dispatches with sequence numbers, so that
// only the response to the latest dispatch for a key gets applied.
package seq

import "sync"

// Tracker keeps the latest dispatched sequence number per key.
// Zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// Next returns a new sequence number for the key, superseding all
// previously dispatched ones.
func (t *Tracker) Next(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest == nil {
		t.latest = make(map[string]uint64)
	}

	t.latest[key]++
	return t.latest[key]
}

// Observe marks n as dispatched for the key. Unlike Next, the numbers
// come from the caller, e.g. increasing message ids, so the dispatches
// may be observed out of order: a lower n never supersedes a higher one.
func (t *Tracker) Observe(key string, n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.latest == nil {
		t.latest = make(map[string]uint64)
	}

	t.latest[key] = max(t.latest[key], n)
}

// IsLatest reports whether n is the latest number dispatched for the key.
func (t *Tracker) IsLatest(key string, n uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[key] == n
}

// Invalidate supersedes all dispatched numbers for the key without
// dispatching a new one.
func (t *Tracker) Invalidate(key string) { _ = t.Next(key) }
