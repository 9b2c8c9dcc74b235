package collections

// Set holds distinct values, compared with the equal func it was built with.
type Set[V any] interface {
	Contains(v V) bool
	// Add fails with ErrValueExisted when v is already present.
	Add(v V) error
	// Remove fails with ErrValueNotExisted when v is absent.
	Remove(v V) error
	Size() int
	// Entries lists the values in no particular order.
	Entries() []V
	Destroy()
}
