package collections

type hashSet[V any] struct {
	entries *HashMap[V, struct{}]
	equal   EqualFunc[V]
}

func NewHashSet[V any](hashFunc HashFunc[V], equalFunc EqualFunc[V], opts ...Option) (Set[V], error) {
	entries, err := NewHashMap[V, struct{}](hashFunc, CopyPair[V, struct{}], PairKeyEqual[V, struct{}], FreePair[V, struct{}], opts...)
	if err != nil {
		return nil, err
	}
	return &hashSet[V]{
		entries: entries,
		equal:   equalFunc,
	}, nil
}

func (s *hashSet[V]) Contains(v V) bool {
	return s.entries.ContainsKey(v)
}

func (s *hashSet[V]) Add(v V) error {
	if s.Contains(v) {
		return ErrValueExisted
	}
	return s.entries.Insert(NewPair(v, struct{}{}, s.equal, Equal[struct{}]))
}

func (s *hashSet[V]) Remove(v V) error {
	if !s.Contains(v) {
		return ErrValueNotExisted
	}
	return s.entries.Erase(v)
}

func (s *hashSet[V]) Size() int {
	return s.entries.Size()
}

func (s *hashSet[V]) Entries() []V {
	return s.entries.Keys()
}

func (s *hashSet[V]) Destroy() {
	s.entries.Destroy()
}
