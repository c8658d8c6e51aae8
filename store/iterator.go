package store

import (
	"bytes"
)

// cacheIterator merges the items buffered in a cache wrap with the iterator
// of the backing store. Buffered items shadow backing items with the same
// key and deleted items hide them.
type cacheIterator struct {
	items   []keyer
	idx     int
	parent  Iterator
	reverse bool

	valid bool
	key   []byte
	value []byte
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(items []keyer, parent Iterator, reverse bool) *cacheIterator {
	it := &cacheIterator{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	it.advance()
	return it
}

// Valid implements Iterator and returns true iff it can be read
func (i *cacheIterator) Valid() bool {
	return i.valid
}

// Next moves the iterator to the next sequential key in the database, as
// defined by order of iteration.
//
// If Valid returns false, this method will panic.
func (i *cacheIterator) Next() {
	i.assertValid()
	i.advance()
}

// Key returns the key of the cursor.
func (i *cacheIterator) Key() []byte {
	i.assertValid()
	return i.key
}

// Value returns the value of the cursor.
func (i *cacheIterator) Value() []byte {
	i.assertValid()
	return i.value
}

// Close releases the Iterator.
func (i *cacheIterator) Close() {
	i.parent.Close()
	i.items = nil
	i.valid = false
}

func (i *cacheIterator) assertValid() {
	if !i.valid {
		panic("advanced past the end")
	}
}

// advance positions the cursor on the next visible entry.
func (i *cacheIterator) advance() {
	for {
		ownValid := i.idx < len(i.items)
		parentValid := i.parent.Valid()

		switch {
		case !ownValid && !parentValid:
			i.valid = false
			i.key, i.value = nil, nil
			return
		case !ownValid:
			i.takeParent()
			return
		case !parentValid:
			if i.takeOwn() {
				return
			}
			continue
		}

		cmp := bytes.Compare(i.items[i.idx].Key(), i.parent.Key())
		if i.reverse {
			cmp = -cmp
		}
		switch {
		case cmp > 0:
			i.takeParent()
			return
		case cmp == 0:
			// Buffered value overwrites the backing one.
			i.parent.Next()
		}
		if i.takeOwn() {
			return
		}
	}
}

func (i *cacheIterator) takeParent() {
	i.key = clone(i.parent.Key())
	i.value = clone(i.parent.Value())
	i.valid = true
	i.parent.Next()
}

// takeOwn consumes the current buffered item and returns true if it is a
// visible value, false if it was a deletion.
func (i *cacheIterator) takeOwn() bool {
	item := i.items[i.idx]
	i.idx++
	set, ok := item.(setItem)
	if !ok {
		return false
	}
	i.key = set.Key()
	i.value = set.value
	i.valid = true
	return true
}
