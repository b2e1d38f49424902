package buffer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/warehouse/pkg/types"
)

func items(t *testing.T, n int) []types.Item {
	t.Helper()
	out := make([]types.Item, n)
	for i := range out {
		item, err := types.NewItem(types.Identifier(fmt.Sprint(i)), types.ItemTypeRuler, "")
		require.NoError(t, err)
		out[i] = item
	}
	return out
}

func TestNewBufferIsEmpty(t *testing.T) {
	b := New()
	assert.True(t, b.IsEmpty())
	assert.Equal(t, 0, b.Len())

	var zero Buffer
	assert.True(t, zero.IsEmpty())
}

func TestDequeueEmpty(t *testing.T) {
	b := New()
	_, err := b.Dequeue()
	assert.ErrorIs(t, err, types.ErrEmptyBuffer)
}

func TestFIFOOrder(t *testing.T) {
	for _, n := range []int{1, 2, 10, 100, 1000} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			b := New()
			in := items(t, n)
			for _, item := range in {
				b.Enqueue(item)
			}
			assert.Equal(t, n, b.Len())

			for i, want := range in {
				require.False(t, b.IsEmpty(), "empty before dequeue %d", i)
				got, err := b.Dequeue()
				require.NoError(t, err)
				assert.Equal(t, want, got)
			}
			assert.True(t, b.IsEmpty())
			_, err := b.Dequeue()
			assert.ErrorIs(t, err, types.ErrEmptyBuffer)
		})
	}
}

func TestInterleavedEnqueueDequeue(t *testing.T) {
	b := New()
	in := items(t, 200)

	var out []types.Item
	for i, item := range in {
		b.Enqueue(item)
		if i%3 == 2 {
			got, err := b.Dequeue()
			require.NoError(t, err)
			out = append(out, got)
		}
	}
	for !b.IsEmpty() {
		got, err := b.Dequeue()
		require.NoError(t, err)
		out = append(out, got)
	}
	assert.Equal(t, in, out)
}
