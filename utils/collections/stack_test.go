package collections

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	s, err := NewStack[*Mock]()
	require.Nil(t, err)
	aa := &Mock{
		A: "aa",
		B: 22,
	}
	bb := &Mock{
		A: "bb",
		B: 55,
	}
	require.Nil(t, s.Push(aa))
	require.Nil(t, s.Push(bb))
	require.Equal(t, 2, s.Size())
	top, err := s.Pop()
	require.Nil(t, err)
	require.Same(t, bb, top)
	require.Equal(t, 1, s.Size())
	peek, err := s.Peek()
	require.Nil(t, err)
	require.Equal(t, true, mockEquals(peek, &Mock{
		A: "aa",
		B: 22,
	}))
	top, err = s.Pop()
	require.Nil(t, err)
	require.Same(t, aa, top)
	require.Equal(t, 0, s.Size())

	_, err = s.Pop()
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = s.Peek()
	require.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestStackString(t *testing.T) {
	s, err := NewStack[int]()
	require.Nil(t, err)
	for i := 1; i <= 3; i++ {
		require.Nil(t, s.Push(i))
	}
	require.Equal(t, "[1 2 3]", s.(*stack[int]).String())
}

func TestStackDestroyReleasesSlots(t *testing.T) {
	a := NewLimitedAllocator(VectorInitialCapacity)
	s, err := NewStack[int](WithAllocator(a))
	require.Nil(t, err)
	require.Nil(t, s.Push(1))
	s.Destroy()
	require.Equal(t, 0, a.InUse())
	require.ErrorIs(t, s.Push(2), ErrDestroyed)
}
