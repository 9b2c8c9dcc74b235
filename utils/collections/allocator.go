package collections

import (
	"github.com/pkg/errors"
)

// Allocator is consulted before a container allocates a backing buffer of
// the given number of slots. A non-nil error aborts the operation that
// needed the buffer, and the container rolls back to its previous state.
// Release is called with the same slot count once a buffer is dropped.
type Allocator interface {
	Allocate(slots int) error
	Release(slots int)
}

// HeapAllocator never refuses an allocation.
type HeapAllocator struct{}

func (HeapAllocator) Allocate(int) error { return nil }

func (HeapAllocator) Release(int) {}

var defaultAllocator Allocator = HeapAllocator{}

// LimitedAllocator refuses allocations once the total of live slots would
// exceed Limit. It may be shared by several containers.
type LimitedAllocator struct {
	limit int
	inUse int
}

func NewLimitedAllocator(limit int) *LimitedAllocator {
	return &LimitedAllocator{limit: limit}
}

func (a *LimitedAllocator) Allocate(slots int) error {
	if a.inUse+slots > a.limit {
		return errors.Wrapf(ErrAllocationFailed, "%d slots requested, %d of %d in use", slots, a.inUse, a.limit)
	}
	a.inUse += slots
	return nil
}

func (a *LimitedAllocator) Release(slots int) {
	a.inUse -= slots
	if a.inUse < 0 {
		a.inUse = 0
	}
}

func (a *LimitedAllocator) InUse() int {
	return a.inUse
}

func (a *LimitedAllocator) Limit() int {
	return a.limit
}

func allocSlice[T any](allocator Allocator, slots int) ([]T, error) {
	if slots <= 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "allocate %d slots", slots)
	}
	if err := allocator.Allocate(slots); err != nil {
		return nil, err
	}
	return make([]T, slots), nil
}
