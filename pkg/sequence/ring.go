package sequence

// Ring is a bounded FIFO. Once Cap items are held, each Push evicts the oldest.
// It is not safe for concurrent use.
type Ring[T any] struct {
	items []T
	head  int // index of the oldest item
	size  int
}

// NewRing creates a ring holding at most capacity items. capacity must be positive.
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		panic("sequence: ring capacity must be positive")
	}
	return &Ring[T]{items: make([]T, capacity)}
}

// Push appends value as the newest item. It returns the evicted item and true
// when the ring was full.
func (r *Ring[T]) Push(value T) (evicted T, ok bool) {
	if r.size < len(r.items) {
		r.items[(r.head+r.size)%len(r.items)] = value
		r.size++
		return evicted, false
	}
	evicted = r.items[r.head]
	r.items[r.head] = value
	r.head = (r.head + 1) % len(r.items)
	return evicted, true
}

// Oldest returns the first item pushed that is still held.
func (r *Ring[T]) Oldest() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.items[r.head], true
}

// Newest returns the last item pushed.
func (r *Ring[T]) Newest() (T, bool) {
	if r.size == 0 {
		var zero T
		return zero, false
	}
	return r.items[(r.head+r.size-1)%len(r.items)], true
}

// At returns the i-th item counting from the oldest.
func (r *Ring[T]) At(i int) (T, bool) {
	if i < 0 || i >= r.size {
		var zero T
		return zero, false
	}
	return r.items[(r.head+i)%len(r.items)], true
}

// Slice copies the held items oldest first.
func (r *Ring[T]) Slice() []T {
	out := make([]T, r.size)
	for i := range out {
		out[i] = r.items[(r.head+i)%len(r.items)]
	}
	return out
}

// Clear drops every item, keeping the capacity.
func (r *Ring[T]) Clear() {
	var zero T
	for i := range r.items {
		r.items[i] = zero
	}
	r.head = 0
	r.size = 0
}

func (r *Ring[T]) Len() int {
	return r.size
}

func (r *Ring[T]) Cap() int {
	return len(r.items)
}

func (r *Ring[T]) IsEmpty() bool {
	return r.size == 0
}
