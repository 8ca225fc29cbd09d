package heap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownRelation_Unknown(t *testing.T) {
	it := items("a", "b")

	rel, err := KnownRelation(it[0], it[1])
	require.NoError(t, err)
	assert.Equal(t, Unknown, rel)
}

func TestKnownRelation_BothDirections(t *testing.T) {
	it := items("a", "b")
	require.NoError(t, RecordHigher(it[0], it[1]))

	rel, err := KnownRelation(it[0], it[1])
	require.NoError(t, err)
	assert.Equal(t, AHigher, rel)

	rel, err = KnownRelation(it[1], it[0])
	require.NoError(t, err)
	assert.Equal(t, BHigher, rel)
}

func TestKnownRelation_Contradiction(t *testing.T) {
	it := items("a", "b")
	// Corrupt the relation directly; RecordHigher never allows this.
	it[0].lower[it[1].id] = it[1]
	it[1].lower[it[0].id] = it[0]

	_, err := KnownRelation(it[0], it[1])
	require.Error(t, err)
	assert.True(t, IsInvariantError(err))
}

func TestRecordHigher_Downward(t *testing.T) {
	it := items("a", "b", "c")
	a, b, c := it[0], it[1], it[2]

	require.NoError(t, RecordHigher(b, c))
	require.NoError(t, RecordHigher(a, b))

	assert.True(t, a.Dominates(b))
	assert.True(t, a.Dominates(c), "a inherits what b already dominated")
}

func TestRecordHigher_Upward(t *testing.T) {
	it := items("a", "b", "c")
	a, b, c := it[0], it[1], it[2]

	require.NoError(t, RecordHigher(a, b))
	require.NoError(t, RecordHigher(b, c))

	assert.True(t, a.Dominates(c), "items above b learn about c")
}

func TestRecordHigher_JoinsChains(t *testing.T) {
	it := items("a", "b", "c", "d")
	a, b, c, d := it[0], it[1], it[2], it[3]

	require.NoError(t, RecordHigher(a, b))
	require.NoError(t, RecordHigher(c, d))
	require.NoError(t, RecordHigher(b, c))

	for _, pair := range [][2]*Item{{a, c}, {a, d}, {b, d}} {
		assert.True(t, pair[0].Dominates(pair[1]), "%s > %s", pair[0], pair[1])
	}
	assert.Equal(t, 3, a.LowerCount())
}

func TestRecordHigher_RejectsSelf(t *testing.T) {
	it := items("a")

	err := RecordHigher(it[0], it[0])
	require.Error(t, err)
	assert.True(t, IsInvariantError(err))
	assert.Equal(t, 0, it[0].LowerCount())
}

func TestRecordHigher_RejectsCycle(t *testing.T) {
	it := items("a", "b", "c")
	a, b, c := it[0], it[1], it[2]
	require.NoError(t, RecordHigher(a, b))
	require.NoError(t, RecordHigher(b, c))

	err := RecordHigher(c, a)
	require.Error(t, err)
	assert.True(t, IsInvariantError(err))
	assert.False(t, c.Dominates(a), "nothing written on rejection")
}

func TestRecordHigher_AlreadyKnown(t *testing.T) {
	it := items("a", "b")
	require.NoError(t, RecordHigher(it[0], it[1]))
	require.NoError(t, RecordHigher(it[0], it[1]))
	assert.Equal(t, 1, it[0].LowerCount())
}

func TestItem_LowerIDsSorted(t *testing.T) {
	it := items("a", "b", "c", "d")
	require.NoError(t, RecordHigher(it[0], it[3]))
	require.NoError(t, RecordHigher(it[0], it[1]))
	require.NoError(t, RecordHigher(it[0], it[2]))

	assert.Equal(t, []ItemID{it[1].id, it[2].id, it[3].id}, it[0].LowerIDs())
}

func TestRelation_String(t *testing.T) {
	assert.Equal(t, "unknown", Unknown.String())
	assert.Equal(t, "a_higher", AHigher.String())
	assert.Equal(t, "b_higher", BHigher.String())
}
