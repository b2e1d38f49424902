package types

// Warehouse is the order-fulfillment surface: stock items, resolve orders,
// and hand items to packaging.
type Warehouse interface {
	// StoreItem stocks an item. Failures are logged, never returned.
	StoreItem(item Item)

	// ProcessOrder moves the ordered item to packaging, adding a bonus
	// present for a first-time customer. Returns false when the identifier
	// is not in stock; nothing changes in that case.
	ProcessOrder(id Identifier, customer Customer) bool

	// TakeItemForPackaging returns the next item awaiting packaging, or
	// false when none is waiting.
	TakeItemForPackaging() (Item, bool)

	// Capacity returns the number of storage slots.
	Capacity() int

	// Occupied returns the number of stocked items.
	Occupied() int

	// Pending returns the number of items awaiting packaging.
	Pending() int
}
