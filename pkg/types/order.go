package types

import "time"

// OrderRecord is one resolved order as written to the order ledger.
type OrderRecord struct {
	OrderID      string     `json:"order_id"`
	ItemID       Identifier `json:"item_id"`
	ItemVariant  ItemType   `json:"item_variant"`
	Customer     Customer   `json:"customer"`
	BonusID      Identifier `json:"bonus_id,omitempty"`
	BonusVariant ItemType   `json:"bonus_variant,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// HasBonus reports whether the order came with a bonus present.
func (r OrderRecord) HasBonus() bool {
	return r.BonusID != ""
}
