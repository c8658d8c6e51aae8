/*
Package orm provides an easy to use db wrapper

Break state space into prefixed sections called Buckets.
* Each bucket contains only one type of object.
* Objects are stored under the bucket prefix joined with the primary key.
* Easy queries for one and iteration over a key prefix.
*/
package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

var (
	isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString
)

// Bucket is a prefixed subspace of the DB. All operations of a Bucket
// work on raw values, use ModelBucket to store models.
type Bucket struct {
	name   string
	prefix []byte
}

// NewBucket creates a bucket to store data
func NewBucket(name string) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
	}
}

// DBKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get returns the raw value stored under given key, or nil.
func (b Bucket) Get(db xswap.ReadOnlyKVStore, key []byte) ([]byte, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return raw, nil
}

// Has returns true if a value is stored under given key.
func (b Bucket) Has(db xswap.ReadOnlyKVStore, key []byte) (bool, error) {
	ok, err := db.Has(b.DBKey(key))
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return ok, nil
}

// Set writes a raw value under given key.
func (b Bucket) Set(db xswap.KVStore, key, value []byte) error {
	if err := db.Set(b.DBKey(key), value); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

// Iterate calls fn with the key, stripped of the bucket prefix, and value
// of every entry whose key starts with given prefix, in ascending key
// order. Iteration stops at the first error returned by fn.
func (b Bucket) Iterate(db xswap.ReadOnlyKVStore, prefix []byte, fn func(key, value []byte) error) error {
	start, end := prefixRange(b.DBKey(prefix))
	it, err := db.Iterator(start, end)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	for ; it.Valid(); it.Next() {
		if err := fn(it.Key()[len(b.prefix):], it.Value()); err != nil {
			return err
		}
	}
	return nil
}

// prefixRange turns a prefix into a (start, end) range. The end result is
// nil when the prefix consists only of 0xff bytes, meaning the range is not
// limited at the end.
func prefixRange(prefix []byte) ([]byte, []byte) {
	if prefix == nil {
		return nil, nil
	}
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return prefix, end
		}
		end[i] = 0
	}
	return prefix, nil
}
