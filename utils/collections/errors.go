package collections

import (
	"errors"
	"fmt"
)

var (
	ErrValueExisted     = errors.New("value existed")
	ErrValueNotExisted  = errors.New("value not existed")
	ErrKeyNotFound      = errors.New("key not found")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrAllocationFailed = errors.New("allocation failed")
	ErrZeroCapacity     = errors.New("zero capacity")
	ErrDestroyed        = errors.New("container destroyed")
	ErrCopyFailed       = errors.New("element copy failed")
)

func copyFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrCopyFailed, err)
}
