package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/testutil"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSnapshot returns a settled three item snapshot:
// "ship" above "review" and "lunch", "review" above "lunch".
func createTestSnapshot() heap.Snapshot {
	id := testutil.ID
	return heap.Snapshot{
		MinCapacity: 4,
		Items: []heap.ItemRecord{
			{ID: id(1), Name: "ship", Lower: []heap.ItemID{id(2), id(3)}},
			{ID: id(2), Name: "review", Lower: []heap.ItemID{id(3)}},
			{ID: id(3), Name: "lunch"},
		},
	}
}
