// Package rack implements the fixed-capacity storage rack: an array of slots
// plus a catalog mapping item identifiers to slot indices.
//
// A Rack is not safe for concurrent use; callers serialize access.
package rack

import (
	"fmt"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Slot is an occupied rack position.
type Slot struct {
	Index int
	Item  types.Item
}

// Rack holds up to a fixed number of items. Slot indices are stable: an item
// keeps its index until it is removed, and removal clears the slot in place.
type Rack struct {
	slots    []*types.Item
	catalog  map[types.Identifier]int
	occupied int
}

// New creates an empty rack with the given number of slots.
// Returns ErrInvalidCapacity if capacity is not positive.
func New(capacity int) (*Rack, error) {
	if capacity <= 0 {
		return nil, types.ErrInvalidCapacity
	}
	return &Rack{
		slots:   make([]*types.Item, capacity),
		catalog: make(map[types.Identifier]int, capacity),
	}, nil
}

// Store puts item into the first empty slot and returns its index.
// Returns ErrInvalidItem for the zero item, ErrDuplicateIdentifier if the
// identifier is already cataloged, and ErrRackFull when every slot is taken.
// The rack is unchanged on error.
func (r *Rack) Store(item types.Item) (int, error) {
	if item.IsZero() {
		return -1, types.ErrInvalidItem
	}
	if idx, ok := r.catalog[item.ID()]; ok {
		return -1, fmt.Errorf("store %s (slot %d): %w", item.ID(), idx, types.ErrDuplicateIdentifier)
	}

	for idx := range r.slots {
		if r.slots[idx] != nil {
			continue
		}
		stored := item
		r.slots[idx] = &stored
		r.catalog[item.ID()] = idx
		r.occupied++
		return idx, nil
	}
	return -1, fmt.Errorf("store %s: %w", item.ID(), types.ErrRackFull)
}

// Remove clears the slot at index and returns the item it held.
// Returns ErrInvalidIndex if index is out of range and ErrEmptySlot if the
// slot holds nothing. No other slot moves.
func (r *Rack) Remove(index int) (types.Item, error) {
	if err := r.checkIndex(index); err != nil {
		return types.Item{}, err
	}
	held := r.slots[index]
	if held == nil {
		return types.Item{}, fmt.Errorf("remove slot %d: %w", index, types.ErrEmptySlot)
	}
	delete(r.catalog, held.ID())
	r.slots[index] = nil
	r.occupied--
	return *held, nil
}

// Get returns the item at index. The boolean is false for an empty slot.
// Returns ErrInvalidIndex if index is out of range.
func (r *Rack) Get(index int) (types.Item, bool, error) {
	if err := r.checkIndex(index); err != nil {
		return types.Item{}, false, err
	}
	held := r.slots[index]
	if held == nil {
		return types.Item{}, false, nil
	}
	return *held, true, nil
}

// Lookup returns the slot index cataloged for id.
func (r *Rack) Lookup(id types.Identifier) (int, bool) {
	idx, ok := r.catalog[id]
	return idx, ok
}

// Capacity returns the number of slots.
func (r *Rack) Capacity() int {
	return len(r.slots)
}

// Occupied returns the number of non-empty slots.
func (r *Rack) Occupied() int {
	return r.occupied
}

// Items returns the occupied slots in index order.
func (r *Rack) Items() []Slot {
	out := make([]Slot, 0, r.occupied)
	for idx, held := range r.slots {
		if held != nil {
			out = append(out, Slot{Index: idx, Item: *held})
		}
	}
	return out
}

func (r *Rack) checkIndex(index int) error {
	if index < 0 || index >= len(r.slots) {
		return fmt.Errorf("slot %d of %d: %w", index, len(r.slots), types.ErrInvalidIndex)
	}
	return nil
}
