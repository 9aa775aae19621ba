/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: cache.go
Description: Optional memoization layer for analysis results, keyed by raw
input (URL string or element fingerprint). Never required for correctness:
the engine is deterministic, so concurrent misses simply recompute the same
value. Explicitly clearable, never silently stale.
*/

package cache

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Memo is a bounded read-through cache. Writes go through the LRU's internal
// lock, so each key has at most one writer at a time; racing computations for
// the same key produce identical values and the last write wins harmlessly.
type Memo[K comparable, V any] struct {
	lru *lru.Cache[K, V]
}

// New creates a memo bounded to size entries.
func New[K comparable, V any](size int) (*Memo[K, V], error) {
	l, err := lru.New[K, V](size)
	if err != nil {
		return nil, fmt.Errorf("creating lru: %w", err)
	}
	return &Memo[K, V]{lru: l}, nil
}

// GetOrCompute returns the cached value for key, computing and storing it on
// a miss. Compute errors are returned and never cached. A nil Memo always
// computes.
func (m *Memo[K, V]) GetOrCompute(key K, compute func() (V, error)) (V, error) {
	if m == nil {
		return compute()
	}
	if v, ok := m.lru.Get(key); ok {
		return v, nil
	}
	v, err := compute()
	if err != nil {
		var zero V
		return zero, err
	}
	m.lru.Add(key, v)
	return v, nil
}

// Get reports the cached value for key without computing.
func (m *Memo[K, V]) Get(key K) (V, bool) {
	if m == nil {
		var zero V
		return zero, false
	}
	return m.lru.Get(key)
}

// Invalidate drops one key. External invalidation is the only way a stale
// entry leaves the cache.
func (m *Memo[K, V]) Invalidate(key K) {
	if m != nil {
		m.lru.Remove(key)
	}
}

// Purge drops every entry.
func (m *Memo[K, V]) Purge() {
	if m != nil {
		m.lru.Purge()
	}
}

// Len reports the number of cached entries.
func (m *Memo[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return m.lru.Len()
}
