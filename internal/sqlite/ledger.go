// Package sqlite implements the order ledger on SQLite. Every resolved order
// becomes one row; the ledger answers reporting queries and can export its
// rows as JSONL. The warehouse never reads state back from it.
package sqlite

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// MemoryDSN opens a private in-memory ledger.
const MemoryDSN = ":memory:"

// Ledger records resolved orders in SQLite. Safe for concurrent use.
type Ledger struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// Open connects to the SQLite database at dsn and creates the schema.
// The pool is limited to one connection so an in-memory database is shared
// by every query and writes are serialized.
func Open(dsn string) (*Ledger, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create ledger schema: %w", err)
		}
	}
	return &Ledger{db: db}, nil
}

// Record inserts rec. Returns ErrLedgerClosed after Close.
func (l *Ledger) Record(rec types.OrderRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return types.ErrLedgerClosed
	}
	_, err := l.db.Exec(
		`INSERT INTO orders (order_id, item_id, item_variant, customer, bonus_id, bonus_variant, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.OrderID,
		string(rec.ItemID),
		string(rec.ItemVariant),
		string(rec.Customer),
		nullString(string(rec.BonusID)),
		nullString(string(rec.BonusVariant)),
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", rec.OrderID, err)
	}
	return nil
}

// Orders returns every recorded order in insertion order.
func (l *Ledger) Orders() ([]types.OrderRecord, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, types.ErrLedgerClosed
	}
	rows, err := l.db.Query(
		`SELECT order_id, item_id, item_variant, customer, bonus_id, bonus_variant, created_at
		 FROM orders ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var out []types.OrderRecord
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// CustomerOrders returns how many orders customer has placed.
func (l *Ledger) CustomerOrders(customer types.Customer) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return 0, types.ErrLedgerClosed
	}
	var n int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE customer = ?`, string(customer)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count customer orders: %w", err)
	}
	return n, nil
}

// BonusCount returns the number of bonus presents handed out.
func (l *Ledger) BonusCount() (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return 0, types.ErrLedgerClosed
	}
	var n int
	if err := l.db.QueryRow(`SELECT COUNT(bonus_id) FROM orders`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bonuses: %w", err)
	}
	return n, nil
}

// BonusesByVariant returns the bonus count per present variant.
func (l *Ledger) BonusesByVariant() (map[types.ItemType]int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed {
		return nil, types.ErrLedgerClosed
	}
	rows, err := l.db.Query(
		`SELECT bonus_variant, COUNT(*) FROM orders
		 WHERE bonus_variant IS NOT NULL GROUP BY bonus_variant`)
	if err != nil {
		return nil, fmt.Errorf("query bonus variants: %w", err)
	}
	defer rows.Close()

	out := make(map[types.ItemType]int)
	for rows.Next() {
		var (
			variant string
			n       int
		)
		if err := rows.Scan(&variant, &n); err != nil {
			return nil, fmt.Errorf("scanning bonus variant: %w", err)
		}
		out[types.ItemType(variant)] = n
	}
	return out, rows.Err()
}

// ExportJSONL writes every recorded order to path, one JSON object per line.
func (l *Ledger) ExportJSONL(path string) error {
	orders, err := l.Orders()
	if err != nil {
		return err
	}
	return writeOrdersJSONL(path, orders)
}

// Close releases the database. Close is idempotent.
func (l *Ledger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}

func scanOrder(rows *sql.Rows) (types.OrderRecord, error) {
	var (
		rec                                        types.OrderRecord
		orderID, itemID, itemVariant, customer, at string
		bonusID, bonusVariant                      sql.NullString
	)
	if err := rows.Scan(&orderID, &itemID, &itemVariant, &customer, &bonusID, &bonusVariant, &at); err != nil {
		return rec, fmt.Errorf("scanning order: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return rec, fmt.Errorf("parsing order created_at: %w", err)
	}
	rec = types.OrderRecord{
		OrderID:      orderID,
		ItemID:       types.Identifier(itemID),
		ItemVariant:  types.ItemType(itemVariant),
		Customer:     types.Customer(customer),
		BonusID:      types.Identifier(bonusID.String),
		BonusVariant: types.ItemType(bonusVariant.String),
		CreatedAt:    createdAt,
	}
	return rec, nil
}

// nullString maps the empty string to SQL NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
