package xswap

import (
	"sort"
	"sync"
)

// keyedMutex provides a mutex per key. Different keys never contend.
// Entries are dropped as soon as nobody holds or waits for them.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refMutex)}
}

// Lock blocks until the lock of given key is acquired. The returned
// function releases it.
func (k *keyedMutex) Lock(key []byte) func() {
	name := string(key)

	k.mu.Lock()
	m, ok := k.locks[name]
	if !ok {
		m = &refMutex{}
		k.locks[name] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, name)
		}
		k.mu.Unlock()
	}
}

// LockAll acquires the locks of all given keys in ascending order. Keys are
// deduplicated.
func (k *keyedMutex) LockAll(keys ...[]byte) func() {
	names := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, key := range keys {
		if seen[string(key)] {
			continue
		}
		seen[string(key)] = true
		names = append(names, string(key))
	}
	sort.Strings(names)

	unlocks := make([]func(), 0, len(names))
	for _, n := range names {
		unlocks = append(unlocks, k.Lock([]byte(n)))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

// size returns the number of tracked keys.
func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
