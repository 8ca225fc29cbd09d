package oracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/todoheap/internal/heap"
	"github.com/roach88/todoheap/internal/testutil"
)

func TestRecorder_RecordsQueries(t *testing.T) {
	rec := NewRecorder(NewRanking("a", "b", "c"))
	var seen []Query
	rec.OnQuery = func(q Query) { seen = append(seen, q) }

	h := heap.New(rec, heap.WithIDGenerator(testutil.NewSequentialIDs()))
	ctx := context.Background()
	for _, name := range []string{"c", "b", "a"} {
		_, err := h.Add(ctx, name)
		require.NoError(t, err)
	}

	queries := rec.Queries()
	require.Len(t, queries, 2)
	assert.Equal(t, Query{A: "b", B: "c", AID: testutil.ID(2), BID: testutil.ID(1), Winner: "b"}, queries[0])
	assert.Equal(t, "a", queries[1].Winner)
	assert.Equal(t, queries, seen)
	assert.Equal(t, 2, rec.Count())

	assert.True(t, rec.Asked(testutil.ID(1), testutil.ID(2)))
	assert.True(t, rec.Asked(testutil.ID(2), testutil.ID(1)))
	assert.False(t, rec.Asked(testutil.ID(1), testutil.ID(3)), "c vs a is implied")
	assert.Empty(t, rec.Repeated())

	rec.Reset()
	assert.Equal(t, 0, rec.Count())
}

func TestRecorder_FailedQueriesDoNotCountAsAsked(t *testing.T) {
	rec := NewRecorder(NewScript())
	a, b := pair(t, "a", "b")
	ctx := context.Background()

	_, err := rec.Choose(ctx, a, b)
	require.Error(t, err)
	_, err = rec.Choose(ctx, b, a)
	require.Error(t, err)

	assert.Equal(t, 2, rec.Count())
	assert.Empty(t, rec.Repeated())
	assert.Empty(t, rec.Queries()[0].Winner)
}

func TestRecorder_Repeated(t *testing.T) {
	rec := NewRecorder(NewRanking("a", "b"))
	a, b := pair(t, "a", "b")
	ctx := context.Background()

	_, err := rec.Choose(ctx, a, b)
	require.NoError(t, err)
	_, err = rec.Choose(ctx, b, a)
	require.NoError(t, err)

	repeated := rec.Repeated()
	require.Len(t, repeated, 1)
	assert.Equal(t, "b", repeated[0].A)
}
