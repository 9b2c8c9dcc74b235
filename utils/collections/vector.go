package collections

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type CopyFunc[T any] func(T) (T, error)

type EqualFunc[T any] func(a, b T) bool

type FreeFunc[T any] func(T)

// Vector is a growable array that owns its elements: every value pushed in
// is copied with the copy func and released with the free func once it
// leaves the vector. Mutations either fully succeed or leave the vector as
// it was before the call.
type Vector[T any] struct {
	size      int
	capacity  int
	data      []T
	copyFunc  CopyFunc[T]
	equalFunc EqualFunc[T]
	freeFunc  FreeFunc[T]
	opts      options
}

func NewVector[T any](copyFunc CopyFunc[T], equalFunc EqualFunc[T], freeFunc FreeFunc[T], opts ...Option) (*Vector[T], error) {
	if copyFunc == nil || equalFunc == nil || freeFunc == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "vector needs copy, equal and free funcs")
	}
	o := newOptions(VectorInitialCapacity, opts)
	if err := o.validate(false); err != nil {
		return nil, err
	}
	data, err := allocSlice[T](o.allocator, o.initialCapacity)
	if err != nil {
		return nil, err
	}
	return &Vector[T]{
		capacity:  o.initialCapacity,
		data:      data,
		copyFunc:  copyFunc,
		equalFunc: equalFunc,
		freeFunc:  freeFunc,
		opts:      o,
	}, nil
}

// Destroy frees every element and the backing buffer. Safe on nil and on
// an already destroyed vector.
func (v *Vector[T]) Destroy() {
	if v == nil || v.data == nil {
		return
	}
	for i := 0; i < v.size; i++ {
		v.freeFunc(v.data[i])
	}
	v.opts.allocator.Release(v.capacity)
	v.data = nil
	v.size = 0
	v.capacity = 0
}

func (v *Vector[T]) Size() int {
	return v.size
}

func (v *Vector[T]) Capacity() int {
	return v.capacity
}

func (v *Vector[T]) LoadFactor() (float64, error) {
	return loadFactor(v.size, v.capacity)
}

// At returns a borrowed element, valid until the next mutation.
func (v *Vector[T]) At(index int) (elem T, err error) {
	if v.data == nil {
		return elem, ErrDestroyed
	}
	if index < 0 || index >= v.size {
		return elem, errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, v.size)
	}
	return v.data[index], nil
}

// Find returns the index of the first element equal to value, or NotFound.
func (v *Vector[T]) Find(value T) int {
	for i := 0; i < v.size; i++ {
		if v.equalFunc(v.data[i], value) {
			return i
		}
	}
	return NotFound
}

func (v *Vector[T]) ForEach(f func(int, T) bool) {
	for i := 0; i < v.size; i++ {
		if !f(i, v.data[i]) {
			return
		}
	}
}

func (v *Vector[T]) PushBack(value T) error {
	if v.data == nil {
		return ErrDestroyed
	}
	elem, err := v.copyFunc(value)
	if err != nil {
		return copyFailed(err)
	}
	size := v.size + 1
	data, capacity := v.data, v.capacity
	if grown := v.opts.grownCapacity(size, capacity); grown != capacity {
		data, err = v.relocate(grown, NotFound)
		if err != nil {
			v.freeFunc(elem)
			v.opts.log.WithError(err).WithField("capacity", grown).Debug("vector grow rolled back")
			return err
		}
		v.opts.log.WithFields(log.Fields{"from": capacity, "to": grown}).Debug("vector grown")
		v.opts.allocator.Release(capacity)
		capacity = grown
	}
	data[size-1] = elem
	v.data, v.capacity, v.size = data, capacity, size
	return nil
}

// Erase removes the element at index. If the removal drops the load factor
// below the shrink threshold, the smaller buffer is built first; the
// element is freed only once nothing else can fail.
func (v *Vector[T]) Erase(index int) error {
	if v.data == nil {
		return ErrDestroyed
	}
	if index < 0 || index >= v.size {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, v.size)
	}
	removed := v.data[index]
	size := v.size - 1
	capacity := v.opts.shrunkCapacity(size, v.capacity)
	if capacity != v.capacity {
		data, err := v.relocate(capacity, index)
		if err != nil {
			v.opts.log.WithError(err).WithField("capacity", capacity).Debug("vector shrink rolled back")
			return err
		}
		v.opts.log.WithFields(log.Fields{"from": v.capacity, "to": capacity}).Debug("vector shrunk")
		v.opts.allocator.Release(v.capacity)
		v.data = data
	} else {
		copy(v.data[index:], v.data[index+1:v.size])
		var zero T
		v.data[size] = zero
	}
	v.size, v.capacity = size, capacity
	v.freeFunc(removed)
	return nil
}

// Replace swaps the element at index for a copy of value.
func (v *Vector[T]) Replace(index int, value T) error {
	if v.data == nil {
		return ErrDestroyed
	}
	if index < 0 || index >= v.size {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, size %d", index, v.size)
	}
	elem, err := v.copyFunc(value)
	if err != nil {
		return copyFailed(err)
	}
	old := v.data[index]
	v.data[index] = elem
	v.freeFunc(old)
	return nil
}

// Clear drops every element. The resulting capacity is the one a sequence
// of single erasures would have reached, but the smaller buffer is
// allocated once, before any element is freed.
func (v *Vector[T]) Clear() error {
	if v.data == nil {
		return ErrDestroyed
	}
	capacity := v.capacity
	for size := v.size; size > 0; {
		size--
		capacity = v.opts.shrunkCapacity(size, capacity)
	}
	data := v.data
	if capacity != v.capacity {
		var err error
		if data, err = allocSlice[T](v.opts.allocator, capacity); err != nil {
			v.opts.log.WithError(err).WithField("capacity", capacity).Debug("vector clear rolled back")
			return err
		}
	}
	for i := 0; i < v.size; i++ {
		v.freeFunc(v.data[i])
	}
	if capacity != v.capacity {
		v.opts.log.WithFields(log.Fields{"from": v.capacity, "to": capacity}).Debug("vector shrunk")
		v.opts.allocator.Release(v.capacity)
	} else {
		clear(data[:v.size])
	}
	v.data, v.capacity, v.size = data, capacity, 0
	return nil
}

// relocate copies the live elements, except the one at skip, into a fresh
// buffer of the given capacity.
func (v *Vector[T]) relocate(capacity int, skip int) ([]T, error) {
	data, err := allocSlice[T](v.opts.allocator, capacity)
	if err != nil {
		return nil, err
	}
	n := 0
	for i := 0; i < v.size; i++ {
		if i == skip {
			continue
		}
		data[n] = v.data[i]
		n++
	}
	return data, nil
}

// IdentityCopy copies by assignment.
func IdentityCopy[T any](v T) (T, error) {
	return v, nil
}

// NopFree leaves releasing to the garbage collector.
func NopFree[T any](T) {}
