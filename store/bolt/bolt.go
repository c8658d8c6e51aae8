/*
Package bolt provides a persistent KVStore on top of a bbolt database file.

All data lives in a single bucket. A batch is written in one read-write
transaction, so it is either fully applied or not at all, including on a
crash.
*/
package bolt

import (
	"bytes"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	bolt "go.etcd.io/bbolt"
)

var bucketState = []byte("xswap_state")

// Store is a KVStore backed by a bbolt database.
type Store struct {
	db *bolt.DB
}

var _ store.CacheableKVStore = (*Store)(nil)

// Open opens or creates the database file at given path.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.Wrap(errors.ErrInput, "path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "create directory: %s", err)
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrDatabase, "open bbolt: %s", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketState)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(errors.ErrDatabase, "create bucket: %s", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database file.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Get returns nil iff key doesn't exist.
func (s *Store) Get(key []byte) ([]byte, error) {
	var val []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(bucketState).Get(key); raw != nil {
			// Values are only valid while the transaction is open.
			val = append([]byte{}, raw...)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return val, nil
}

// Has checks if a key exists.
func (s *Store) Has(key []byte) (bool, error) {
	val, err := s.Get(key)
	return val != nil, err
}

// Set writes a single value in its own transaction.
func (s *Store) Set(key, value []byte) error {
	b := s.NewBatch()
	if err := b.Set(key, value); err != nil {
		return err
	}
	return b.Write()
}

// Delete removes a single value in its own transaction.
func (s *Store) Delete(key []byte) error {
	b := s.NewBatch()
	if err := b.Delete(key); err != nil {
		return err
	}
	return b.Write()
}

// NewBatch returns a batch written in a single transaction.
func (s *Store) NewBatch() store.Batch {
	return &batch{db: s.db}
}

// CacheWrap wraps the store with a btree cache.
func (s *Store) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(s, s.NewBatch(), nil)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
func (s *Store) Iterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()
		var k, v []byte
		if start == nil {
			k, v = c.First()
		} else {
			k, v = c.Seek(start)
		}
		for ; k != nil && (end == nil || bytes.Compare(k, end) < 0); k, v = c.Next() {
			res = append(res, copyPair(k, v))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.NewSliceIterator(res), nil
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
func (s *Store) ReverseIterator(start, end []byte) (store.Iterator, error) {
	var res []store.Model
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketState).Cursor()
		var k, v []byte
		if end == nil {
			k, v = c.Last()
		} else if k, v = c.Seek(end); k == nil {
			k, v = c.Last()
		} else {
			k, v = c.Prev()
		}
		for ; k != nil && (start == nil || bytes.Compare(k, start) >= 0); k, v = c.Prev() {
			res = append(res, copyPair(k, v))
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.NewSliceIterator(res), nil
}

func copyPair(k, v []byte) store.Model {
	return store.Pair(append([]byte{}, k...), append([]byte{}, v...))
}

type batch struct {
	db  *bolt.DB
	ops []store.Op
}

func (b *batch) Set(key, value []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	b.ops = append(b.ops, store.SetOp(key, value))
	return nil
}

func (b *batch) Delete(key []byte) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrInput, "empty key")
	}
	b.ops = append(b.ops, store.DelOp(key))
	return nil
}

// Write applies all operations in one read-write transaction.
func (b *batch) Write() error {
	if len(b.ops) == 0 {
		return nil
	}
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := &bucketWriter{b: tx.Bucket(bucketState)}
		for _, op := range b.ops {
			if err := op.Apply(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	b.ops = nil
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// bucketWriter adapts a bucket to store.SetDeleter.
type bucketWriter struct {
	b *bolt.Bucket
}

func (w *bucketWriter) Set(key, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return w.b.Put(key, value)
}

func (w *bucketWriter) Delete(key []byte) error {
	return w.b.Delete(key)
}
