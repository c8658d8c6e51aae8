package store

import (
	"sync"
)

// LockedStore makes a KVStore safe for concurrent use. Reads are served
// under a shared lock and every batch, including the one behind a cache
// wrap, is written while holding the exclusive lock. Readers never observe
// a partially written batch.
//
// Iterators are materialized while the read lock is held, so they stay
// valid when the store is modified afterwards.
type LockedStore struct {
	mu      sync.RWMutex
	kv      KVStore
	onWrite func() error
}

var _ CacheableKVStore = (*LockedStore)(nil)

// NewLockedStore wraps given store. onWrite, if not nil, is called after
// each successful write while the exclusive lock is still held. It can be
// used to persist the new state, for example to commit a merkle tree
// version.
func NewLockedStore(kv KVStore, onWrite func() error) *LockedStore {
	return &LockedStore{
		kv:      kv,
		onWrite: onWrite,
	}
}

// Get implements ReadOnlyKVStore.
func (s *LockedStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, err := s.kv.Get(key)
	return clone(val), err
}

// Has implements ReadOnlyKVStore.
func (s *LockedStore) Has(key []byte) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.kv.Has(key)
}

// Iterator implements ReadOnlyKVStore.
func (s *LockedStore) Iterator(start, end []byte) (Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, err := s.kv.Iterator(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(drain(it)), nil
}

// ReverseIterator implements ReadOnlyKVStore.
func (s *LockedStore) ReverseIterator(start, end []byte) (Iterator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, err := s.kv.ReverseIterator(start, end)
	if err != nil {
		return nil, err
	}
	return NewSliceIterator(drain(it)), nil
}

// Set writes a single value.
func (s *LockedStore) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes a single value.
func (s *LockedStore) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch that is written to the wrapped store as a
// single unit.
func (s *LockedStore) NewBatch() Batch {
	return &lockedBatch{store: s}
}

// CacheWrap returns a cache wrap whose Write is applied in one batch.
func (s *LockedStore) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

func (s *LockedStore) write(ops []Op) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.kv.NewBatch()
	for _, op := range ops {
		if err := op.Apply(b); err != nil {
			return err
		}
	}
	if err := b.Write(); err != nil {
		return err
	}
	if s.onWrite != nil {
		return s.onWrite()
	}
	return nil
}

type lockedBatch struct {
	store *LockedStore
	ops   []Op
}

var _ Batch = (*lockedBatch)(nil)

func (b *lockedBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *lockedBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *lockedBatch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	err := b.store.write(b.ops)
	b.ops = nil
	return err
}

// drain reads all remaining entries and closes the iterator.
func drain(it Iterator) []Model {
	defer it.Close()
	var res []Model
	for ; it.Valid(); it.Next() {
		res = append(res, Pair(clone(it.Key()), clone(it.Value())))
	}
	return res
}
