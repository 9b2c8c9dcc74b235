package collections

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/tuannh982/spreader-detector/utils/math"
)

// HashMap is a separate-chaining hash table whose buckets are Vectors of
// owned pairs. The bucket count is always a power of two, so the bucket of
// a key is hash(key) & (capacity-1). Lookups scan one bucket linearly.
//
// Insert and Erase that need a resize build the whole new bucket array
// first and swap it in only once the entry itself was written or removed;
// a failure anywhere leaves the map as it was.
type HashMap[K any, V any] struct {
	size      int
	capacity  int
	buckets   []*Vector[*Pair[K, V]]
	hashFunc  HashFunc[K]
	copyFunc  CopyFunc[*Pair[K, V]]
	equalFunc EqualFunc[*Pair[K, V]]
	freeFunc  FreeFunc[*Pair[K, V]]
	opts      options
}

var _ Map[int, any] = (*HashMap[int, any])(nil)

func NewHashMap[K any, V any](
	hashFunc HashFunc[K],
	copyFunc CopyFunc[*Pair[K, V]],
	equalFunc EqualFunc[*Pair[K, V]],
	freeFunc FreeFunc[*Pair[K, V]],
	opts ...Option,
) (*HashMap[K, V], error) {
	if hashFunc == nil || copyFunc == nil || equalFunc == nil || freeFunc == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "hash map needs hash, copy, equal and free funcs")
	}
	o := newOptions(HashMapInitialCapacity, opts)
	if err := o.validate(true); err != nil {
		return nil, err
	}
	buckets, err := allocSlice[*Vector[*Pair[K, V]]](o.allocator, o.initialCapacity)
	if err != nil {
		return nil, err
	}
	return &HashMap[K, V]{
		capacity:  o.initialCapacity,
		buckets:   buckets,
		hashFunc:  hashFunc,
		copyFunc:  checkedPairCopy(copyFunc, freeFunc),
		equalFunc: equalFunc,
		freeFunc:  freeFunc,
		opts:      o,
	}, nil
}

// checkedPairCopy rejects copies the map could not compare keys with.
func checkedPairCopy[K any, V any](copyFunc CopyFunc[*Pair[K, V]], freeFunc FreeFunc[*Pair[K, V]]) CopyFunc[*Pair[K, V]] {
	return func(p *Pair[K, V]) (*Pair[K, V], error) {
		cp, err := copyFunc(p)
		if err != nil {
			return nil, err
		}
		if cp == nil {
			return nil, errors.Wrap(ErrInvalidArgument, "copied pair is nil")
		}
		if cp.KeyEqual == nil {
			freeFunc(cp)
			return nil, errors.Wrap(ErrInvalidArgument, "copied pair has no key equal func")
		}
		return cp, nil
	}
}

// NewComparableHashMap stores shallow copies of the inserted pairs.
func NewComparableHashMap[K comparable, V any](hashFunc HashFunc[K], opts ...Option) (*HashMap[K, V], error) {
	return NewHashMap[K, V](hashFunc, CopyPair[K, V], PairKeyEqual[K, V], FreePair[K, V], opts...)
}

func (m *HashMap[K, V]) Destroy() {
	if m == nil || m.buckets == nil {
		return
	}
	m.freeBuckets(m.buckets)
	m.buckets = nil
	m.size = 0
	m.capacity = 0
}

func (m *HashMap[K, V]) Size() int {
	return m.size
}

func (m *HashMap[K, V]) Capacity() int {
	return m.capacity
}

func (m *HashMap[K, V]) LoadFactor() (float64, error) {
	return loadFactor(m.size, m.capacity)
}

func (m *HashMap[K, V]) ContainsKey(k K) bool {
	_, ok := m.getPair(k)
	return ok
}

// ContainsValue has no hash to go by and scans every bucket.
func (m *HashMap[K, V]) ContainsValue(v V) bool {
	found := false
	m.forEachPair(func(p *Pair[K, V]) bool {
		if p.ValueEqual != nil && p.ValueEqual(p.Value, v) {
			found = true
			return false
		}
		return true
	})
	return found
}

// At returns the value stored for k. The value is borrowed from the map.
func (m *HashMap[K, V]) At(k K) (v V, err error) {
	if m.buckets == nil {
		return v, ErrDestroyed
	}
	p, ok := m.getPair(k)
	if !ok {
		return v, ErrKeyNotFound
	}
	return p.Value, nil
}

func (m *HashMap[K, V]) Lookup(k K) (v V, ok bool) {
	p, ok := m.getPair(k)
	if !ok {
		return v, false
	}
	return p.Value, true
}

func (m *HashMap[K, V]) Keys() []K {
	arr := make([]K, 0, m.size)
	m.forEachPair(func(p *Pair[K, V]) bool {
		arr = append(arr, p.Key)
		return true
	})
	return arr
}

func (m *HashMap[K, V]) Values() []V {
	arr := make([]V, 0, m.size)
	m.forEachPair(func(p *Pair[K, V]) bool {
		arr = append(arr, p.Value)
		return true
	})
	return arr
}

func (m *HashMap[K, V]) ForEach(f func(K, V) bool) {
	m.forEachPair(func(p *Pair[K, V]) bool {
		return f(p.Key, p.Value)
	})
}

// Insert stores a copy of pair. An existing entry with the same key is
// replaced and the size is left unchanged.
func (m *HashMap[K, V]) Insert(pair *Pair[K, V]) error {
	if m.buckets == nil {
		return ErrDestroyed
	}
	if pair == nil || pair.KeyEqual == nil {
		return errors.Wrap(ErrInvalidArgument, "pair needs a key equal func")
	}
	size := m.size
	if !m.ContainsKey(pair.Key) {
		size++
	}
	buckets := m.buckets
	capacity := m.opts.grownCapacity(size, m.capacity)
	if capacity != m.capacity {
		rehashed, err := m.rehash(capacity)
		if err != nil {
			m.opts.log.WithError(err).WithField("capacity", capacity).Debug("hash map grow rolled back")
			return err
		}
		buckets = rehashed
	}
	if err := m.put(buckets, pair); err != nil {
		if capacity != m.capacity {
			m.freeBuckets(buckets)
		}
		m.opts.log.WithError(err).Debug("hash map insert rolled back")
		return err
	}
	m.commit(buckets, capacity, size)
	return nil
}

// Erase removes the entry for k, shrinking the bucket array when the load
// factor falls below the shrink threshold.
func (m *HashMap[K, V]) Erase(k K) error {
	if m.buckets == nil {
		return ErrDestroyed
	}
	if !m.ContainsKey(k) {
		return ErrKeyNotFound
	}
	size := m.size - 1
	buckets := m.buckets
	capacity := m.opts.shrunkCapacity(size, m.capacity)
	if capacity != m.capacity {
		rehashed, err := m.rehash(capacity)
		if err != nil {
			m.opts.log.WithError(err).WithField("capacity", capacity).Debug("hash map shrink rolled back")
			return err
		}
		buckets = rehashed
	}
	b, i := m.locate(buckets, k)
	vec := buckets[b]
	if err := vec.Erase(i); err != nil {
		if capacity != m.capacity {
			m.freeBuckets(buckets)
		}
		m.opts.log.WithError(err).Debug("hash map erase rolled back")
		return err
	}
	if vec.Size() == 0 {
		vec.Destroy()
		buckets[b] = nil
	}
	m.commit(buckets, capacity, size)
	return nil
}

// Clear drops every entry. The resulting capacity is the one a sequence of
// single erasures would have reached, but it is reached with a single
// reallocation, made after the entries were released. Should that
// allocation fail, the emptied map keeps its current bucket array.
func (m *HashMap[K, V]) Clear() error {
	if m.buckets == nil {
		return ErrDestroyed
	}
	capacity := m.capacity
	for size := m.size; size > 0; {
		size--
		capacity = m.opts.shrunkCapacity(size, capacity)
	}
	for i, vec := range m.buckets {
		vec.Destroy()
		m.buckets[i] = nil
	}
	m.size = 0
	if capacity == m.capacity {
		return nil
	}
	buckets, err := allocSlice[*Vector[*Pair[K, V]]](m.opts.allocator, capacity)
	if err != nil {
		m.opts.log.WithError(err).WithField("capacity", m.capacity).Debug("hash map clear kept capacity")
		return nil
	}
	m.opts.log.WithFields(log.Fields{"from": m.capacity, "to": capacity, "size": 0}).Debug("hash map resized")
	m.opts.allocator.Release(len(m.buckets))
	m.buckets, m.capacity = buckets, capacity
	return nil
}

func (m *HashMap[K, V]) commit(buckets []*Vector[*Pair[K, V]], capacity, size int) {
	if capacity != m.capacity {
		m.opts.log.WithFields(log.Fields{"from": m.capacity, "to": capacity, "size": size}).Debug("hash map resized")
		old := m.buckets
		m.buckets, m.capacity = buckets, capacity
		m.freeBuckets(old)
	}
	m.size = size
}

func (m *HashMap[K, V]) index(k K, capacity int) int {
	return int(math.Mask(m.hashFunc(k), uint64(capacity)))
}

// locate returns the bucket of k in buckets and the position of its entry
// in that bucket, or NotFound.
func (m *HashMap[K, V]) locate(buckets []*Vector[*Pair[K, V]], k K) (int, int) {
	b := m.index(k, len(buckets))
	vec := buckets[b]
	if vec == nil {
		return b, NotFound
	}
	for i := 0; i < vec.size; i++ {
		p := vec.data[i]
		if p.KeyEqual(p.Key, k) {
			return b, i
		}
	}
	return b, NotFound
}

func (m *HashMap[K, V]) getPair(k K) (*Pair[K, V], bool) {
	if m.buckets == nil {
		return nil, false
	}
	b, i := m.locate(m.buckets, k)
	if i == NotFound {
		return nil, false
	}
	return m.buckets[b].data[i], true
}

func (m *HashMap[K, V]) forEachPair(f func(*Pair[K, V]) bool) {
	for _, vec := range m.buckets {
		if vec == nil {
			continue
		}
		for i := 0; i < vec.size; i++ {
			if !f(vec.data[i]) {
				return
			}
		}
	}
}

// put writes a copy of pair into buckets. A bucket created here is only
// installed once the write succeeded.
func (m *HashMap[K, V]) put(buckets []*Vector[*Pair[K, V]], pair *Pair[K, V]) error {
	b, i := m.locate(buckets, pair.Key)
	vec := buckets[b]
	if i != NotFound {
		return vec.Replace(i, pair)
	}
	created := false
	if vec == nil {
		var err error
		if vec, err = m.newBucket(); err != nil {
			return err
		}
		created = true
	}
	if err := vec.PushBack(pair); err != nil {
		if created {
			vec.Destroy()
		}
		return err
	}
	buckets[b] = vec
	return nil
}

// rehash copies every entry into a new bucket array of the given capacity.
// The current buckets are not touched.
func (m *HashMap[K, V]) rehash(capacity int) ([]*Vector[*Pair[K, V]], error) {
	buckets, err := allocSlice[*Vector[*Pair[K, V]]](m.opts.allocator, capacity)
	if err != nil {
		return nil, err
	}
	var failed error
	m.forEachPair(func(p *Pair[K, V]) bool {
		b := m.index(p.Key, capacity)
		if buckets[b] == nil {
			vec, err := m.newBucket()
			if err != nil {
				failed = err
				return false
			}
			buckets[b] = vec
		}
		if err := buckets[b].PushBack(p); err != nil {
			failed = err
			return false
		}
		return true
	})
	if failed != nil {
		m.freeBuckets(buckets)
		return nil, failed
	}
	return buckets, nil
}

func (m *HashMap[K, V]) newBucket() (*Vector[*Pair[K, V]], error) {
	return NewVector(m.copyFunc, m.equalFunc, m.freeFunc, WithAllocator(m.opts.allocator), WithLogger(m.opts.log))
}

func (m *HashMap[K, V]) freeBuckets(buckets []*Vector[*Pair[K, V]]) {
	for i, vec := range buckets {
		vec.Destroy()
		buckets[i] = nil
	}
	m.opts.allocator.Release(len(buckets))
}
