// Package sqlite implements the order ledger on SQLite.
// This file holds the schema DDL.
package sqlite

// Schema DDL. Statements are idempotent so a file-backed ledger can be
// reopened.
const (
	createOrders = `CREATE TABLE IF NOT EXISTS orders (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id TEXT NOT NULL UNIQUE,
    item_id TEXT NOT NULL,
    item_variant TEXT NOT NULL,
    customer TEXT NOT NULL,
    bonus_id TEXT,
    bonus_variant TEXT,
    created_at TEXT NOT NULL
);`

	idxOrdersCustomer = `CREATE INDEX IF NOT EXISTS idx_orders_customer ON orders(customer);`
	idxOrdersBonus    = `CREATE INDEX IF NOT EXISTS idx_orders_bonus ON orders(bonus_variant);`
)

// schemaDDL lists the statements run when a ledger is opened, in order.
var schemaDDL = []string{
	createOrders,
	idxOrdersCustomer,
	idxOrdersBonus,
}
