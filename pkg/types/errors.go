package types

import "errors"

// Item errors.
var (
	ErrInvalidItem     = errors.New("item identifier must not be empty")
	ErrInvalidItemType = errors.New("invalid item type")
)

// Storage rack errors.
var (
	ErrInvalidCapacity     = errors.New("capacity must be positive")
	ErrRackFull            = errors.New("storage rack is full")
	ErrDuplicateIdentifier = errors.New("identifier already stored")
	ErrEmptySlot           = errors.New("storage rack slot is empty")
	ErrInvalidIndex        = errors.New("slot index out of range")
)

// Buffer errors.
var (
	ErrEmptyBuffer = errors.New("buffer is empty")
)

// Ledger and configuration errors.
var (
	ErrLedgerClosed    = errors.New("ledger is closed")
	ErrLedgerDisabled  = errors.New("ledger is not configured")
	ErrInvalidLogLevel = errors.New("invalid log level")
)
