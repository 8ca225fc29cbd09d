package heap

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComparator_AsksOnceAndRecords(t *testing.T) {
	o := newRankOracle("b", "a")
	c := NewComparator(o, nil)
	it := items("a", "b")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		higher, err := c.IsHigher(ctx, it[0], it[1])
		require.NoError(t, err)
		assert.False(t, higher)

		higher, err = c.IsHigher(ctx, it[1], it[0])
		require.NoError(t, err)
		assert.True(t, higher)
	}

	assert.Equal(t, 1, c.Queries())
	assert.Len(t, o.calls, 1)
	assert.True(t, it[1].Dominates(it[0]))
}

func TestComparator_InfersTransitively(t *testing.T) {
	o := newRankOracle("a", "b", "c")
	c := NewComparator(o, nil)
	it := items("a", "b", "c")
	ctx := context.Background()

	_, err := c.IsHigher(ctx, it[0], it[1])
	require.NoError(t, err)
	_, err = c.IsHigher(ctx, it[1], it[2])
	require.NoError(t, err)
	require.Equal(t, 2, c.Queries())

	higher, err := c.IsHigher(ctx, it[0], it[2])
	require.NoError(t, err)
	assert.True(t, higher)
	assert.Equal(t, 2, c.Queries(), "a > c follows from a > b > c")
}

func TestComparator_ContractViolation(t *testing.T) {
	it := items("a", "b", "stranger")
	o := OracleFunc(func(context.Context, *Item, *Item) (*Item, error) {
		return it[2], nil
	})
	c := NewComparator(o, nil)

	_, err := c.IsHigher(context.Background(), it[0], it[1])
	require.Error(t, err)
	assert.True(t, IsContractError(err))
	assert.Contains(t, err.Error(), "stranger")

	rel, err := KnownRelation(it[0], it[1])
	require.NoError(t, err)
	assert.Equal(t, Unknown, rel, "nothing recorded after a contract violation")
}

func TestComparator_NilChoice(t *testing.T) {
	o := OracleFunc(func(context.Context, *Item, *Item) (*Item, error) {
		return nil, nil
	})
	c := NewComparator(o, nil)
	it := items("a", "b")

	_, err := c.IsHigher(context.Background(), it[0], it[1])
	require.Error(t, err)
	assert.True(t, IsContractError(err))
}

func TestComparator_OracleFailure(t *testing.T) {
	cause := errors.New("stdin closed")
	o := OracleFunc(func(context.Context, *Item, *Item) (*Item, error) {
		return nil, cause
	})
	c := NewComparator(o, nil)
	it := items("a", "b")

	_, err := c.IsHigher(context.Background(), it[0], it[1])
	require.Error(t, err)
	assert.True(t, IsOracleFailure(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 0, it[0].LowerCount()+it[1].LowerCount())
}

func TestComparator_CancelledContext(t *testing.T) {
	o := newRankOracle("a", "b")
	c := NewComparator(o, nil)
	it := items("a", "b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.IsHigher(ctx, it[0], it[1])
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, o.calls, "oracle is not consulted with a dead context")
}

func TestComparator_KnownNeedsNoContext(t *testing.T) {
	c := NewComparator(nil, nil)
	it := items("a", "b")
	require.NoError(t, RecordHigher(it[0], it[1]))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	higher, err := c.IsHigher(ctx, it[0], it[1])
	require.NoError(t, err)
	assert.True(t, higher)
}

func TestComparator_NoOracle(t *testing.T) {
	c := NewComparator(nil, nil)
	it := items("a", "b")

	_, err := c.IsHigher(context.Background(), it[0], it[1])
	require.Error(t, err)
	assert.True(t, IsOracleFailure(err))
}

func TestComparator_InvariantFault(t *testing.T) {
	c := NewComparator(&refuseOracle{}, nil)
	it := items("a", "b")
	it[0].lower[it[1].id] = it[1]
	it[1].lower[it[0].id] = it[0]

	_, err := c.IsHigher(context.Background(), it[0], it[1])
	require.Error(t, err)
	assert.True(t, IsInvariantError(err))
}
