// Package sqlite implements the order ledger on SQLite.
// This file writes ledger exports as JSONL.
package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

// writeOrdersJSONL writes one JSON object per order to path. The file is
// staged next to path, synced and renamed into place, so an existing export
// is either kept whole or replaced whole.
func writeOrdersJSONL(path string, orders []types.OrderRecord) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".orders-*.jsonl.tmp")
	if err != nil {
		return fmt.Errorf("create temp export: %w", err)
	}
	staged := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(staged)
		}
	}()

	w := bufio.NewWriter(tmp)
	enc := json.NewEncoder(w)
	for _, rec := range orders {
		if err = enc.Encode(rec); err != nil {
			return fmt.Errorf("encode order %s: %w", rec.OrderID, err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flush export: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync export: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err = os.Rename(staged, path); err != nil {
		return fmt.Errorf("rename export: %w", err)
	}
	return nil
}
