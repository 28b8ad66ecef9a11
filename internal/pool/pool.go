// Package pool provides a generic object pool partitioned into an active
// prefix and an inactive suffix. It is the only allocation strategy for
// wires, sparks and data packets, so the steady-state tick never allocates.
package pool

// Pool holds items in a single slice. Indices [0, active) are active,
// [active, len) are inactive. Deactivation swaps the item to the boundary.
type Pool[T comparable] struct {
	items  []T
	index  map[T]int
	active int
}

// New creates an empty pool with room for capacity items.
func New[T comparable](capacity int) *Pool[T] {
	return &Pool[T]{
		items: make([]T, 0, capacity),
		index: make(map[T]int, capacity),
	}
}

// Add appends an inactive item. Adding an item already in the pool is a no-op.
func (p *Pool[T]) Add(item T) {
	if _, ok := p.index[item]; ok {
		return
	}
	p.index[item] = len(p.items)
	p.items = append(p.items, item)
}

// ActivateObject promotes the first inactive item and returns it.
// Returns false if every item is already active; the caller must
// construct a new item and Add it first.
func (p *Pool[T]) ActivateObject() (T, bool) {
	var zero T
	if p.active >= len(p.items) {
		return zero, false
	}
	item := p.items[p.active]
	p.active++
	return item, true
}

// DeactivateObject moves an active item to the inactive range in O(1).
// Items that are unknown or already inactive are ignored.
func (p *Pool[T]) DeactivateObject(item T) bool {
	idx, ok := p.index[item]
	if !ok || idx >= p.active {
		return false
	}
	last := p.active - 1
	p.swap(idx, last)
	p.active--
	return true
}

// GetObject returns the active item at index.
func (p *Pool[T]) GetObject(index int) (T, bool) {
	var zero T
	if index < 0 || index >= p.active {
		return zero, false
	}
	return p.items[index], true
}

// IsActive reports whether item is in the active range.
func (p *Pool[T]) IsActive(item T) bool {
	idx, ok := p.index[item]
	return ok && idx < p.active
}

// Contains reports whether item belongs to the pool at all.
func (p *Pool[T]) Contains(item T) bool {
	_, ok := p.index[item]
	return ok
}

// ActiveCount returns the number of active items.
func (p *Pool[T]) ActiveCount() int {
	return p.active
}

// Count returns the total number of items, active or not.
func (p *Pool[T]) Count() int {
	return len(p.items)
}

// Active returns the active range. The slice aliases pool storage and is
// invalidated by the next Activate/Deactivate call.
func (p *Pool[T]) Active() []T {
	return p.items[:p.active]
}

// DeactivateAll returns every item to the inactive range without reordering.
func (p *Pool[T]) DeactivateAll() {
	p.active = 0
}

// Clear empties the pool. If destroy is non-nil it is called once per item.
func (p *Pool[T]) Clear(destroy func(T)) {
	if destroy != nil {
		for _, item := range p.items {
			destroy(item)
		}
	}
	var zero T
	for i := range p.items {
		p.items[i] = zero
	}
	p.items = p.items[:0]
	clear(p.index)
	p.active = 0
}

func (p *Pool[T]) swap(i, j int) {
	if i == j {
		return
	}
	p.items[i], p.items[j] = p.items[j], p.items[i]
	p.index[p.items[i]] = i
	p.index[p.items[j]] = j
}
