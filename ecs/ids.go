package ecs

// IDAllocator hands out stable boss identifiers. It is injected into the
// encounter setup instead of living as package state, so tests can create
// allocators with a known starting point and get deterministic ids.
type IDAllocator struct {
	next uint64
}

// NewIDAllocator starts allocation at first.
func NewIDAllocator(first uint64) *IDAllocator {
	return &IDAllocator{next: first}
}

// Next returns the next id.
func (a *IDAllocator) Next() uint64 {
	id := a.next
	a.next++
	return id
}
