// Package buffer implements the FIFO staging area for items awaiting
// packaging.
package buffer

import "github.com/mesh-intelligence/warehouse/pkg/types"

// Buffer is an unbounded first-in first-out queue of items. The zero value is
// an empty buffer ready to use. Not safe for concurrent use.
type Buffer struct {
	items []types.Item
	head  int
}

// New returns an empty buffer.
func New() *Buffer {
	return &Buffer{}
}

// Enqueue appends item at the tail.
func (b *Buffer) Enqueue(item types.Item) {
	b.items = append(b.items, item)
}

// Dequeue removes and returns the head item.
// Returns ErrEmptyBuffer when nothing is queued.
func (b *Buffer) Dequeue() (types.Item, error) {
	if b.IsEmpty() {
		return types.Item{}, types.ErrEmptyBuffer
	}
	item := b.items[b.head]
	b.items[b.head] = types.Item{}
	b.head++

	// Reclaim the consumed prefix once it dominates the backing array.
	if b.head == len(b.items) {
		b.items = b.items[:0]
		b.head = 0
	} else if b.head > 32 && b.head*2 >= len(b.items) {
		n := copy(b.items, b.items[b.head:])
		b.items = b.items[:n]
		b.head = 0
	}
	return item, nil
}

// IsEmpty reports whether no items are queued.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Len returns the number of queued items.
func (b *Buffer) Len() int {
	return len(b.items) - b.head
}
