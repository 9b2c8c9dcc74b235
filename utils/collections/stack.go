package collections

import (
	"fmt"
)

type Stack[V any] interface {
	Push(V) error
	Pop() (V, error)
	Peek() (V, error)
	Size() int
	Destroy()
}

type stack[V comparable] struct {
	entries *Vector[V]
}

func NewStack[V comparable](opts ...Option) (Stack[V], error) {
	entries, err := NewVector(IdentityCopy[V], Equal[V], NopFree[V], opts...)
	if err != nil {
		return nil, err
	}
	return &stack[V]{
		entries: entries,
	}, nil
}

func (s *stack[V]) Push(v V) error {
	return s.entries.PushBack(v)
}

// Pop removes the top entry. An empty stack returns ErrIndexOutOfRange.
func (s *stack[V]) Pop() (v V, err error) {
	n := s.entries.Size()
	if v, err = s.entries.At(n - 1); err != nil {
		return v, err
	}
	if err = s.entries.Erase(n - 1); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}

func (s *stack[V]) Peek() (V, error) {
	return s.entries.At(s.entries.Size() - 1)
}

func (s *stack[V]) Size() int {
	return s.entries.Size()
}

func (s *stack[V]) Destroy() {
	s.entries.Destroy()
}

func (s stack[V]) String() string {
	arr := make([]V, 0, s.entries.Size())
	s.entries.ForEach(func(_ int, v V) bool {
		arr = append(arr, v)
		return true
	})
	return fmt.Sprint(arr)
}
