package types

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ItemType tags the kind of a stationery item.
type ItemType string

// Item types. Presents are marketing gifts backed by one of the product types.
const (
	ItemTypePen     ItemType = "pen"
	ItemTypeRuler   ItemType = "ruler"
	ItemTypeCompass ItemType = "compass"
	ItemTypePresent ItemType = "present"
)

// productTypes are the item types that can be stocked directly and that can
// back a present.
var productTypes = map[ItemType]bool{
	ItemTypePen:     true,
	ItemTypeRuler:   true,
	ItemTypeCompass: true,
}

// IsProduct reports whether t is a stockable product type.
func (t ItemType) IsProduct() bool {
	return productTypes[t]
}

// Identifier is the unique key of an item.
type Identifier string

// NewIdentifier returns a fresh UUID v7 identifier.
func NewIdentifier() Identifier {
	id, err := uuid.NewV7()
	if err != nil {
		// Fall back to v4 if the v7 clock source fails.
		return Identifier(uuid.New().String())
	}
	return Identifier(id.String())
}

// Customer identifies whoever places an order.
type Customer string

// Item is an immutable stationery item. The zero Item is empty and is never
// stored; use NewItem or NewPresent.
type Item struct {
	id          Identifier
	itemType    ItemType
	variant     ItemType
	description string
}

// NewItem creates a pen, ruler or compass. Returns ErrInvalidItem for an empty
// identifier and ErrInvalidItemType for any other type, including present.
func NewItem(id Identifier, t ItemType, description string) (Item, error) {
	if id == "" {
		return Item{}, ErrInvalidItem
	}
	if !t.IsProduct() {
		return Item{}, fmt.Errorf("item %s: %w: %q", id, ErrInvalidItemType, t)
	}
	return Item{id: id, itemType: t, variant: t, description: description}, nil
}

// NewPresent creates a present backed by the given product variant.
func NewPresent(id Identifier, variant ItemType, description string) (Item, error) {
	if id == "" {
		return Item{}, ErrInvalidItem
	}
	if !variant.IsProduct() {
		return Item{}, fmt.Errorf("present %s: %w: variant %q", id, ErrInvalidItemType, variant)
	}
	return Item{id: id, itemType: ItemTypePresent, variant: variant, description: description}, nil
}

// ID returns the item identifier.
func (i Item) ID() Identifier { return i.id }

// Type returns the item type tag.
func (i Item) Type() ItemType { return i.itemType }

// Variant returns the underlying product. For ordinary items it equals Type.
func (i Item) Variant() ItemType { return i.variant }

// Description returns the item description.
func (i Item) Description() string { return i.description }

// IsZero reports whether i is the empty Item.
func (i Item) IsZero() bool { return i.id == "" }

func (i Item) String() string {
	if i.itemType == ItemTypePresent {
		return fmt.Sprintf("%s(%s) %s", i.itemType, i.variant, i.id)
	}
	return fmt.Sprintf("%s %s", i.itemType, i.id)
}

// itemJSON is the wire shape of an Item.
type itemJSON struct {
	ID          Identifier `json:"id"`
	Type        ItemType   `json:"type"`
	Variant     ItemType   `json:"variant"`
	Description string     `json:"description"`
}

// MarshalJSON encodes the item with its exported attributes.
func (i Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		ID:          i.id,
		Type:        i.itemType,
		Variant:     i.variant,
		Description: i.description,
	})
}

// UnmarshalJSON decodes and validates an item.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var (
		it  Item
		err error
	)
	if raw.Type == ItemTypePresent {
		it, err = NewPresent(raw.ID, raw.Variant, raw.Description)
	} else {
		it, err = NewItem(raw.ID, raw.Type, raw.Description)
	}
	if err != nil {
		return err
	}
	*i = it
	return nil
}
