package linklock

import (
	"encoding/gob"
	"hash/maphash"

	"github.com/puzpuzpuz/xsync/v2"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Index is a keyed, insertion-ordered concurrent collection. Lookups
// go through a hash map, ordered traversal and eviction through a
// concurrent list, with the list's link locking keeping the two views
// consistent under concurrent writers.
type Index[K comparable, V any] struct {
	xmap *xsync.MapOf[K, *Element[entry[K, V]]]
	list *List[entry[K, V]]
	cap  int
}

// New creates an empty index.
func New[K comparable, V any](opts ...Option) *Index[K, V] {
	o := indexOptions{}
	for _, opt := range opts {
		opt.apply(&o)
	}

	return &Index[K, V]{
		xmap: xsync.NewTypedMapOf[K, *Element[entry[K, V]]](func(seed maphash.Seed, key K) uint64 {
			var h maphash.Hash
			h.SetSeed(seed)

			if err := gob.NewEncoder(&h).Encode(key); err != nil {
				panic(err)
			}

			return h.Sum64()
		}),
		list: NewList[entry[K, V]](),
		cap:  o.capacity,
	}
}

// Len returns the number of stored entries.
func (i *Index[K, V]) Len() int {
	return i.list.Len()
}

// Store inserts a value at the back of the insertion order. It reports
// false, leaving the index unmodified, if the key already exists. When
// a capacity is configured and exceeded, the oldest entry is evicted.
func (i *Index[K, V]) Store(key K, value V) bool {
	e := NewElement(entry[K, V]{key: key, value: value})

	if _, loaded := i.xmap.LoadOrStore(key, e); loaded {
		return false
	}

	i.list.PushBackElem(e)

	if v, ok := i.xmap.Load(key); !ok || v != e {
		// Lost a race with Delete between publishing the key and
		// linking the element.
		i.list.Remove(e)
		return true
	}

	if i.cap > 0 && i.list.Len() > i.cap {
		i.Pop()
	}

	return true
}

// Load returns the value stored for key.
func (i *Index[K, V]) Load(key K) (value V, ok bool) {
	if e, ok := i.xmap.Load(key); ok {
		return e.Value.value, true
	}

	var zero V
	return zero, false
}

// Get returns the value stored for key or ErrNotFound.
func (i *Index[K, V]) Get(key K) (value V, err error) {
	if e, ok := i.xmap.Load(key); ok {
		return e.Value.value, nil
	}

	var zero V
	return zero, ErrNotFound
}

// Delete removes the entry stored for key. It reports false if the key
// did not exist.
func (i *Index[K, V]) Delete(key K) bool {
	if e, ok := i.xmap.LoadAndDelete(key); ok {
		i.list.Remove(e)
		return true
	}

	return false
}

// Pop removes and returns the oldest entry.
func (i *Index[K, V]) Pop() (key K, value V, ok bool) {
	if e := i.list.PopFront(); e != nil {
		// Drop the key only if it still maps to the popped element:
		// the key may have been deleted and stored again meanwhile.
		i.xmap.Compute(e.Value.key, func(old *Element[entry[K, V]], loaded bool) (*Element[entry[K, V]], bool) {
			return old, loaded && old == e
		})
		return e.Value.key, e.Value.value, true
	}

	var (
		zeroK K
		zeroV V
	)
	return zeroK, zeroV, false
}

// Range calls f for each entry in insertion order until f returns
// false. Each entry is visited locked; concurrent writers to other
// entries proceed.
func (i *Index[K, V]) Range(f func(key K, value V) bool) {
	i.list.Do(func(e *Element[entry[K, V]]) Op {
		if !f(e.Value.key, e.Value.value) {
			return OpStop
		}
		return OpContinue
	})
}
