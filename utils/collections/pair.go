package collections

import "github.com/pkg/errors"

// Pair is a map entry. It carries its own key and value comparators so a
// map can compare entries without knowing K or V.
type Pair[K any, V any] struct {
	Key        K
	Value      V
	KeyEqual   EqualFunc[K]
	ValueEqual EqualFunc[V]
}

func NewPair[K any, V any](key K, value V, keyEqual EqualFunc[K], valueEqual EqualFunc[V]) *Pair[K, V] {
	return &Pair[K, V]{
		Key:        key,
		Value:      value,
		KeyEqual:   keyEqual,
		ValueEqual: valueEqual,
	}
}

// NewComparablePair builds a pair compared with ==.
func NewComparablePair[K comparable, V comparable](key K, value V) *Pair[K, V] {
	return NewPair(key, value, Equal[K], Equal[V])
}

// CopyPair is a shallow copy: the key and value are copied by assignment.
func CopyPair[K any, V any](p *Pair[K, V]) (*Pair[K, V], error) {
	if p == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil pair")
	}
	cp := *p
	return &cp, nil
}

func PairKeyEqual[K any, V any](a, b *Pair[K, V]) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	return a.KeyEqual(a.Key, b.Key)
}

func FreePair[K any, V any](p *Pair[K, V]) {
	if p != nil {
		*p = Pair[K, V]{}
	}
}
