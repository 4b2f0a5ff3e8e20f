package pvclient

import (
	"sync"
)

// SyncMap is a synchronized map that can be accessed concurrently.
//
// The store swaps its content as a whole with Replace and hands out copies with Snapshot; single lookups go
// through Get under the read lock.
type SyncMap[K comparable, V any] struct {
	sync.RWMutex
	M map[K]V
}

// Get looks up a single key under the read lock.
func (sm *SyncMap[K, V]) Get(key K) (V, bool) {
	sm.RLock()
	defer sm.RUnlock()

	val, ok := sm.M[key]
	return val, ok
}

// Len reports the number of entries in the current content.
func (sm *SyncMap[K, V]) Len() int {
	sm.RLock()
	defer sm.RUnlock()

	return len(sm.M)
}

// Replace swaps the whole content of the SyncMap for a copy of m.
// Readers see either the old or the new content, never a mix.
//
// Args:
//   - m: The new content. A nil map empties the SyncMap.
func (sm *SyncMap[K, V]) Replace(m map[K]V) {
	next := make(map[K]V, len(m))
	for k, v := range m {
		next[k] = v
	}

	sm.Lock()
	defer sm.Unlock()

	sm.M = next
}

// Snapshot returns a copy of the current content.
//
// Returns:
//   - map[K]V: A map the caller may modify freely.
func (sm *SyncMap[K, V]) Snapshot() map[K]V {
	sm.RLock()
	defer sm.RUnlock()

	snapshot := make(map[K]V, len(sm.M))
	for k, v := range sm.M {
		snapshot[k] = v
	}

	return snapshot
}

// NewSyncMap creates a new instance of SyncMap.
//
// Returns:
//   - SyncMap[K, V]: A new instance of SyncMap.
func NewSyncMap[K comparable, V any]() SyncMap[K, V] {
	return SyncMap[K, V]{M: map[K]V{}}
}
