// Package warehouse provides the public API for building a stationery
// warehouse from a Config, keeping the rack, buffer, company and ledger
// implementations internal.
//
// Example:
//
//	w, err := warehouse.Open(types.Config{Capacity: 75, Seed: 1}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//	w.StoreItem(pen)
//	w.ProcessOrder(pen.ID(), "alice")
//	next, ok := w.TakeItemForPackaging()
package warehouse

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/warehouse/internal/company"
	"github.com/mesh-intelligence/warehouse/internal/sqlite"
	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// Version is the module release.
const Version = "0.1.0"

// Warehouse is a company wired to its optional order ledger.
type Warehouse struct {
	*company.Company
	ledger *sqlite.Ledger
}

var _ types.Warehouse = (*Warehouse)(nil)

// Open validates cfg and builds a warehouse. Zero capacity and log level take
// their defaults; a zero seed seeds bonus selection from the clock; an empty
// LedgerDSN disables the ledger. A nil logger discards output.
func Open(cfg types.Config, log *zap.Logger) (*Warehouse, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	bonus := company.NewClockBonus()
	if cfg.Seed != 0 {
		bonus = company.NewBonus(cfg.Seed)
	}
	opts := []company.Option{
		company.WithCapacity(cfg.Capacity),
		company.WithBonus(bonus),
		company.WithLogger(log),
	}

	w := &Warehouse{}
	if cfg.LedgerDSN != "" {
		l, err := sqlite.Open(cfg.LedgerDSN)
		if err != nil {
			return nil, fmt.Errorf("open ledger: %w", err)
		}
		w.ledger = l
		opts = append(opts, company.WithLedger(l))
	}

	c, err := company.New(opts...)
	if err != nil {
		if w.ledger != nil {
			w.ledger.Close()
		}
		return nil, err
	}
	w.Company = c
	return w, nil
}

// Orders returns every order recorded in the ledger.
// Returns ErrLedgerDisabled when no ledger is configured.
func (w *Warehouse) Orders() ([]types.OrderRecord, error) {
	if w.ledger == nil {
		return nil, types.ErrLedgerDisabled
	}
	return w.ledger.Orders()
}

// BonusesByVariant returns the bonus presents handed out per variant.
func (w *Warehouse) BonusesByVariant() (map[types.ItemType]int, error) {
	if w.ledger == nil {
		return nil, types.ErrLedgerDisabled
	}
	return w.ledger.BonusesByVariant()
}

// ExportLedger writes the ledger to path as JSONL.
func (w *Warehouse) ExportLedger(path string) error {
	if w.ledger == nil {
		return types.ErrLedgerDisabled
	}
	return w.ledger.ExportJSONL(path)
}

// Close releases the ledger. Close is idempotent.
func (w *Warehouse) Close() error {
	if w.ledger == nil {
		return nil
	}
	return w.ledger.Close()
}
