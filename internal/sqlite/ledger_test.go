// Tests for the SQLite order ledger.
package sqlite

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

func openMemory(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { l.Close() })
	return l
}

var baseTime = time.Date(2026, 1, 2, 3, 4, 5, 6000, time.UTC)

func sampleOrders() []types.OrderRecord {
	return []types.OrderRecord{
		{
			OrderID: "o-1", ItemID: "1", ItemVariant: types.ItemTypePen, Customer: "alice",
			BonusID: "b-1", BonusVariant: types.ItemTypeCompass, CreatedAt: baseTime,
		},
		{
			OrderID: "o-2", ItemID: "2", ItemVariant: types.ItemTypeRuler, Customer: "alice",
			CreatedAt: baseTime.Add(time.Minute),
		},
		{
			OrderID: "o-3", ItemID: "3", ItemVariant: types.ItemTypeRuler, Customer: "bob",
			BonusID: "b-2", BonusVariant: types.ItemTypeCompass, CreatedAt: baseTime.Add(2 * time.Minute),
		},
	}
}

func TestLedger_RecordAndOrders(t *testing.T) {
	l := openMemory(t)
	want := sampleOrders()
	for _, rec := range want {
		require.NoError(t, l.Record(rec))
	}

	got, err := l.Orders()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLedger_EmptyOrders(t *testing.T) {
	l := openMemory(t)
	got, err := l.Orders()
	require.NoError(t, err)
	assert.Empty(t, got)

	n, err := l.BonusCount()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestLedger_DuplicateOrderID(t *testing.T) {
	l := openMemory(t)
	rec := sampleOrders()[0]
	require.NoError(t, l.Record(rec))
	assert.Error(t, l.Record(rec))
}

func TestLedger_Reports(t *testing.T) {
	l := openMemory(t)
	for _, rec := range sampleOrders() {
		require.NoError(t, l.Record(rec))
	}

	tests := []struct {
		customer types.Customer
		want     int
	}{
		{"alice", 2},
		{"bob", 1},
		{"nobody", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.customer), func(t *testing.T) {
			n, err := l.CustomerOrders(tt.customer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}

	n, err := l.BonusCount()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	byVariant, err := l.BonusesByVariant()
	require.NoError(t, err)
	assert.Equal(t, map[types.ItemType]int{types.ItemTypeCompass: 2}, byVariant)
}

func TestLedger_Close(t *testing.T) {
	l, err := Open(MemoryDSN)
	require.NoError(t, err)

	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second Close should not error")

	assert.ErrorIs(t, l.Record(sampleOrders()[0]), types.ErrLedgerClosed)
	_, err = l.Orders()
	assert.ErrorIs(t, err, types.ErrLedgerClosed)
	_, err = l.CustomerOrders("alice")
	assert.ErrorIs(t, err, types.ErrLedgerClosed)
	_, err = l.BonusCount()
	assert.ErrorIs(t, err, types.ErrLedgerClosed)
	_, err = l.BonusesByVariant()
	assert.ErrorIs(t, err, types.ErrLedgerClosed)
}

func TestLedger_FileReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.Record(sampleOrders()[0]))
	require.NoError(t, l.Close())

	l, err = Open(path)
	require.NoError(t, err)
	defer l.Close()

	got, err := l.Orders()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "o-1", got[0].OrderID)
}

func TestLedger_ExportJSONL(t *testing.T) {
	l := openMemory(t)
	want := sampleOrders()
	for _, rec := range want {
		require.NoError(t, l.Record(rec))
	}

	path := filepath.Join(t.TempDir(), "orders.jsonl")
	require.NoError(t, l.ExportJSONL(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var got []types.OrderRecord
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var rec types.OrderRecord
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &rec))
		got = append(got, rec)
	}
	require.NoError(t, scanner.Err())
	assert.Equal(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must not be left behind")
}
