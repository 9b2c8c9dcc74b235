package collections

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashSet(t *testing.T) {
	hashMock := func(v *Mock) uint64 {
		return HashString(v.A)
	}
	equalMock := func(a, b *Mock) bool {
		return a.A == b.A
	}
	s, err := NewHashSet(hashMock, equalMock)
	require.Nil(t, err)
	require.Nil(t, s.Add(&Mock{
		A: "aa",
		B: 22,
	}))
	require.ErrorIs(t, s.Add(&Mock{
		A: "aa",
		B: 22,
	}), ErrValueExisted)
	require.Nil(t, s.Add(&Mock{
		A: "bb",
		B: 55,
	}))
	require.Equal(t, 2, s.Size())
	require.Equal(t, true, s.Contains(&Mock{
		A: "aa",
	}))
	require.Equal(t, true, s.Contains(&Mock{
		A: "bb",
	}))
	require.Equal(t, false, s.Contains(&Mock{
		A: "cc",
	}))
	require.Equal(t, 2, len(s.Entries()))
	require.Nil(t, s.Remove(&Mock{
		A: "bb",
	}))
	require.Equal(t, false, s.Contains(&Mock{
		A: "bb",
	}))
	require.ErrorIs(t, s.Remove(&Mock{
		A: "bb",
	}), ErrValueNotExisted)
	require.Equal(t, 1, s.Size())
}

func TestHashSetGrowsPastInitialCapacity(t *testing.T) {
	s, err := NewHashSet(HashUint64, Equal[uint64])
	require.Nil(t, err)
	for i := uint64(0); i < 100; i++ {
		require.Nil(t, s.Add(i))
	}
	require.Equal(t, 100, s.Size())
	for i := uint64(0); i < 100; i++ {
		require.Equal(t, true, s.Contains(i))
	}
	require.Equal(t, false, s.Contains(100))
}

func TestHashSetDestroy(t *testing.T) {
	a := NewLimitedAllocator(64)
	s, err := NewHashSet(HashString, Equal[string], WithAllocator(a))
	require.Nil(t, err)
	require.Nil(t, s.Add("aa"))
	require.Equal(t, 32, a.InUse())
	s.Destroy()
	require.Equal(t, 0, a.InUse())
	require.Equal(t, 0, s.Size())
}
