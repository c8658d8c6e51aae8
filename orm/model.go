package orm

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
// Models are serialized with protobuf.
type Model interface {
	proto.Message
	Validate() error
}

// ModelBucket stores Models of a single type.
type ModelBucket struct {
	b Bucket
}

// NewModelBucket returns a ModelBucket storing under given bucket name.
func NewModelBucket(name string) ModelBucket {
	return ModelBucket{b: NewBucket(name)}
}

// Bucket returns the underlying raw bucket.
func (mb ModelBucket) Bucket() Bucket {
	return mb.b
}

// One query the database for a single model instance. Lookup is done
// by the primary index key. Result is loaded into given destination
// model.
// This method returns ErrNotFound if the entity does not exist in the
// database.
func (mb ModelBucket) One(db xswap.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := mb.b.Get(db, key)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
	}
	return nil
}

// Has returns true if an entity with given key exists.
func (mb ModelBucket) Has(db xswap.ReadOnlyKVStore, key []byte) (bool, error) {
	return mb.b.Has(db, key)
}

// Put saves given model in the database.
func (mb ModelBucket) Put(db xswap.KVStore, key []byte, m Model) error {
	if err := m.Validate(); err != nil {
		return errors.WithType(err, m)
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrapf(errors.ErrModel, "marshal %T: %s", m, err)
	}
	if err := mb.b.Set(db, key, raw); err != nil {
		return errors.Wrap(err, "cannot store in the database")
	}
	return nil
}

// Each loads every model whose key starts with prefix into dest and calls
// fn with its key, in ascending key order. dest is overwritten on each
// call, so fn must copy what it wants to keep.
func (mb ModelBucket) Each(db xswap.ReadOnlyKVStore, prefix []byte, dest Model, fn func(key []byte) error) error {
	return mb.b.Iterate(db, prefix, func(key, value []byte) error {
		if err := proto.Unmarshal(value, dest); err != nil {
			return errors.Wrapf(errors.ErrModel, "unmarshal %T: %s", dest, err)
		}
		return fn(key)
	})
}
