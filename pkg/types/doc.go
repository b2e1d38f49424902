// Package types defines the item value types, the Warehouse interface, the
// order ledger record, configuration, and standard errors for the stationery
// warehouse.
//
// Items are immutable values. Identifiers and customers are opaque string
// keys compared by equality.
package types
