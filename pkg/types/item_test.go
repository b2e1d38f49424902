package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	tests := []struct {
		name     string
		id       Identifier
		itemType ItemType
		wantErr  error
	}{
		{name: "pen", id: "1", itemType: ItemTypePen},
		{name: "ruler", id: "2", itemType: ItemTypeRuler},
		{name: "compass", id: "3", itemType: ItemTypeCompass},
		{name: "empty identifier rejected", id: "", itemType: ItemTypePen, wantErr: ErrInvalidItem},
		{name: "present needs NewPresent", id: "4", itemType: ItemTypePresent, wantErr: ErrInvalidItemType},
		{name: "unknown type rejected", id: "5", itemType: "eraser", wantErr: ErrInvalidItemType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item, err := NewItem(tt.id, tt.itemType, "desc")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, item.IsZero(), "failed construction must yield the zero item")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, item.ID())
			assert.Equal(t, tt.itemType, item.Type())
			assert.Equal(t, tt.itemType, item.Variant(), "ordinary items are their own variant")
			assert.Equal(t, "desc", item.Description())
		})
	}
}

func TestNewPresent(t *testing.T) {
	p, err := NewPresent("gift", ItemTypeRuler, "A marketing bonus item.")
	require.NoError(t, err)
	assert.Equal(t, ItemTypePresent, p.Type())
	assert.Equal(t, ItemTypeRuler, p.Variant())

	_, err = NewPresent("gift", ItemTypePresent, "")
	assert.ErrorIs(t, err, ErrInvalidItemType)

	_, err = NewPresent("", ItemTypePen, "")
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestNewIdentifierUnique(t *testing.T) {
	seen := make(map[Identifier]bool)
	for i := 0; i < 100; i++ {
		id := NewIdentifier()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate identifier %s", id)
		seen[id] = true
	}
}

func TestItemJSON(t *testing.T) {
	p, err := NewPresent("gift-1", ItemTypeCompass, "A marketing bonus item.")
	require.NoError(t, err)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"id":"gift-1","type":"present","variant":"compass","description":"A marketing bonus item."}`,
		string(data))

	var decoded Item
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)

	err = json.Unmarshal([]byte(`{"id":"x","type":"stapler"}`), &decoded)
	assert.ErrorIs(t, err, ErrInvalidItemType)
}

func TestItemString(t *testing.T) {
	pen, err := NewItem("7", ItemTypePen, "")
	require.NoError(t, err)
	assert.Equal(t, "pen 7", pen.String())

	gift, err := NewPresent("8", ItemTypePen, "")
	require.NoError(t, err)
	assert.Equal(t, "present(pen) 8", gift.String())
}
