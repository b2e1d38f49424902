// Package company implements the order orchestrator. A Company owns a
// storage rack, a packaging buffer, and the set of customers who have
// ordered before, and applies the first-order bonus policy.
package company

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/warehouse/internal/buffer"
	"github.com/mesh-intelligence/warehouse/internal/rack"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Ledger receives a record for every resolved order.
type Ledger interface {
	Record(rec types.OrderRecord) error
}

// Company resolves orders against its storage rack. All methods are safe for
// concurrent use; each one runs under a single lock.
type Company struct {
	mu     sync.Mutex
	rack   *rack.Rack
	buffer *buffer.Buffer
	known  map[types.Customer]struct{}

	bonus  *Bonus
	ledger Ledger
	log    *zap.Logger
	now    func() time.Time
}

var _ types.Warehouse = (*Company)(nil)

type options struct {
	capacity int
	bonus    *Bonus
	ledger   Ledger
	log      *zap.Logger
	now      func() time.Time
}

// Option configures a Company.
type Option func(*options)

// WithCapacity sets the number of rack slots (default 75).
func WithCapacity(capacity int) Option {
	return func(o *options) { o.capacity = capacity }
}

// WithBonus sets the bonus generator (default seeded from the clock).
func WithBonus(b *Bonus) Option {
	return func(o *options) { o.bonus = b }
}

// WithLedger records every resolved order to l.
func WithLedger(l Ledger) Option {
	return func(o *options) { o.ledger = l }
}

// WithLogger sets the logger (default no-op).
func WithLogger(log *zap.Logger) Option {
	return func(o *options) { o.log = log }
}

// WithClock sets the time source used for ledger timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New creates a company with an empty rack, an empty buffer and no known
// customers. Returns ErrInvalidCapacity if the capacity option is not
// positive.
func New(opts ...Option) (*Company, error) {
	o := options{
		capacity: types.DefaultCapacity,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.bonus == nil {
		o.bonus = NewClockBonus()
	}

	r, err := rack.New(o.capacity)
	if err != nil {
		return nil, err
	}
	return &Company{
		rack:   r,
		buffer: buffer.New(),
		known:  make(map[types.Customer]struct{}),
		bonus:  o.bonus,
		ledger: o.ledger,
		log:    o.log,
		now:    o.now,
	}, nil
}

// StoreItem stocks item in the first free slot. A full rack, a duplicate
// identifier or an invalid item is logged and otherwise ignored.
func (c *Company) StoreItem(item types.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, err := c.rack.Store(item)
	if err != nil {
		c.log.Warn("store item failed",
			zap.String("item_id", string(item.ID())),
			zap.String("item_type", string(item.Type())),
			zap.Error(err))
		return
	}
	c.log.Debug("item stored",
		zap.String("item_id", string(item.ID())),
		zap.Int("slot", idx))
}

// ProcessOrder moves the item with identifier id from the rack to the
// packaging buffer. A customer ordering for the first time also gets one
// bonus present queued behind the item. An identifier that is not in stock
// leaves everything unchanged and returns false.
func (c *Company) ProcessOrder(id types.Identifier, customer types.Customer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx, ok := c.rack.Lookup(id)
	if !ok {
		c.log.Debug("order not resolvable",
			zap.String("item_id", string(id)),
			zap.String("customer", string(customer)))
		return false
	}
	item, err := c.rack.Remove(idx)
	if err != nil {
		// Catalog and slots disagree; the rack guarantees this cannot happen.
		c.log.Error("remove cataloged item",
			zap.String("item_id", string(id)),
			zap.Int("slot", idx),
			zap.Error(err))
		return false
	}
	c.buffer.Enqueue(item)

	rec := types.OrderRecord{
		OrderID:     string(types.NewIdentifier()),
		ItemID:      item.ID(),
		ItemVariant: item.Variant(),
		Customer:    customer,
		CreatedAt:   c.now().UTC(),
	}

	if _, seen := c.known[customer]; !seen {
		gift, err := c.bonus.Next()
		if err != nil {
			c.log.Error("generate bonus item",
				zap.String("customer", string(customer)),
				zap.Error(err))
		} else {
			c.buffer.Enqueue(gift)
			c.known[customer] = struct{}{}
			rec.BonusID = gift.ID()
			rec.BonusVariant = gift.Variant()
		}
	}

	c.log.Info("order processed",
		zap.String("order_id", rec.OrderID),
		zap.String("item_id", string(item.ID())),
		zap.String("customer", string(customer)),
		zap.Bool("bonus", rec.HasBonus()))

	if c.ledger != nil {
		if err := c.ledger.Record(rec); err != nil {
			c.log.Warn("record order in ledger",
				zap.String("order_id", rec.OrderID),
				zap.Error(err))
		}
	}
	return true
}

// TakeItemForPackaging returns the next item awaiting packaging. The boolean
// is false when the buffer is empty.
func (c *Company) TakeItemForPackaging() (types.Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.buffer.IsEmpty() {
		return types.Item{}, false
	}
	item, err := c.buffer.Dequeue()
	if err != nil {
		return types.Item{}, false
	}
	return item, true
}

// Capacity returns the number of rack slots.
func (c *Company) Capacity() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rack.Capacity()
}

// Occupied returns the number of stocked items.
func (c *Company) Occupied() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rack.Occupied()
}

// Pending returns the number of items awaiting packaging.
func (c *Company) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buffer.Len()
}

// IsKnownCustomer reports whether customer has placed a resolved order.
func (c *Company) IsKnownCustomer(customer types.Customer) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.known[customer]
	return ok
}

// Inventory returns the stocked items in slot order.
func (c *Company) Inventory() []rack.Slot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rack.Items()
}
