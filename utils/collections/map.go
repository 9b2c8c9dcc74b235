package collections

// Map is a keyed container that owns copies of the inserted pairs.
type Map[K any, V any] interface {
	ContainsKey(k K) bool
	// ContainsValue reports whether any entry's value equals v under the
	// entry's own ValueEqual.
	ContainsValue(v V) bool
	// Insert stores a copy of p, replacing the entry with the same key.
	Insert(p *Pair[K, V]) error
	At(k K) (V, error)
	Lookup(k K) (V, bool)
	Erase(k K) error
	Clear() error
	Size() int
	Keys() []K
	Values() []V
	// Destroy frees every entry. The map must not be used afterwards.
	Destroy()
}
