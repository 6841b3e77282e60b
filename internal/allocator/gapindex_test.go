package allocator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGapIndexSortedDescendingWithIdentityTieBreak(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GapIndexInitialCapacity = 4

	g := newGapIndex(cfg)

	require.NoError(t, g.insert(100, 3))
	require.NoError(t, g.insert(100, 1))
	require.NoError(t, g.insert(400, 2))
	require.NoError(t, g.insert(50, 4))

	want := []gapEntry{{400, 2}, {100, 1}, {100, 3}, {50, 4}}
	require.Equal(t, want, g.entries[:g.count])
}

func TestGapIndexRemoveNotFound(t *testing.T) {
	g := newGapIndex(DefaultConfig())

	require.NoError(t, g.insert(10, 1))
	require.ErrorIs(t, g.remove(99), ErrNotFound)
	require.Equal(t, 1, g.count)
}

func TestGapIndexBestFitPicksSmallestSufficient(t *testing.T) {
	g := newGapIndex(DefaultConfig())

	require.NoError(t, g.insert(400, 1))
	require.NoError(t, g.insert(200, 2))
	require.NoError(t, g.insert(150, 3))

	entry, ok := g.bestFit(180)
	require.True(t, ok)
	require.Equal(t, gapEntry{200, 2}, entry)

	_, ok = g.bestFit(500)
	require.False(t, ok)
}

func TestGapIndexBestFitExactMatch(t *testing.T) {
	g := newGapIndex(DefaultConfig())

	require.NoError(t, g.insert(400, 1))
	require.NoError(t, g.insert(200, 2))

	entry, ok := g.bestFit(200)
	require.True(t, ok)
	require.Equal(t, gapEntry{200, 2}, entry)
}

func TestGapIndexGrowsUnderLoadFactor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GapIndexInitialCapacity = 2
	cfg.LoadFactor = 0.75
	cfg.GrowthFactor = 2

	g := newGapIndex(cfg)

	for i := int32(0); i < 8; i++ {
		require.NoError(t, g.insert(uint64(i+1), i))
	}

	require.GreaterOrEqual(t, g.capacity, 8)
	require.Equal(t, 8, g.count)
}
