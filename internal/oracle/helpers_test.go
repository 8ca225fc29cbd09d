package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/testutil"
)

// pair returns two unrelated items named a and b.
func pair(t *testing.T, a, b string) (*heap.Item, *heap.Item) {
	t.Helper()
	h, err := heap.Restore(nil, heap.Snapshot{Items: []heap.ItemRecord{
		{ID: testutil.ID(1), Name: a},
		{ID: testutil.ID(2), Name: b},
	}})
	require.NoError(t, err)
	items := h.Items()
	return items[0], items[1]
}
