// Package keylock provides a mutex keyed by string, used to serialize
// concurrent work on the same entity while letting work on different
// entities proceed in parallel.
package keylock

import "sync"

// KeyLock hands out one mutex per key. Locks are created lazily on first
// use and kept for the lifetime of the KeyLock; the expected key space
// (order identifiers under active processing) is small.
type KeyLock struct {
	locks sync.Map
}

// New creates an empty KeyLock.
func New() *KeyLock {
	return &KeyLock{}
}

// Lock acquires the mutex for the given key, blocking until it is free.
// The returned function releases it.
//
// Example:
//
//	unlock := locks.Lock(orderID.String())
//	defer unlock()
func (k *KeyLock) Lock(key string) func() {
	v, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
