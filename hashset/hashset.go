package hashset

// Set is a set that remembers insertion order. Values returns elements in the
// order they were first added.
type Set[T comparable] interface {
	Add(element ...T)
	Contains(element T) bool
	Values() []T
	Size() int
	Difference(other Set[T]) Set[T]
}

type hashSet[T comparable] struct {
	index    map[T]int
	elements []T
}

func New[T comparable](elements ...T) Set[T] {
	result := &hashSet[T]{
		index:    make(map[T]int),
		elements: make([]T, 0, len(elements)),
	}

	result.Add(elements...)

	return result
}

func (hs *hashSet[T]) Add(element ...T) {
	for _, e := range element {
		if _, found := hs.index[e]; found {
			continue
		}
		hs.index[e] = len(hs.elements)
		hs.elements = append(hs.elements, e)
	}
}

func (hs *hashSet[T]) Contains(element T) bool {
	_, found := hs.index[element]
	return found
}

func (hs *hashSet[T]) Values() []T {
	result := make([]T, len(hs.elements))
	copy(result, hs.elements)
	return result
}

func (hs *hashSet[T]) Size() int {
	return len(hs.elements)
}

func (hs *hashSet[T]) Difference(other Set[T]) Set[T] {
	result := New[T]()
	for _, element := range hs.elements {
		if !other.Contains(element) {
			result.Add(element)
		}
	}

	return result
}
