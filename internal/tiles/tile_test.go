package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortCanonicalOrder(t *testing.T) {
	hand := []Tile{
		{Suit: SuitDragon, Dragon: DragonWhite},
		{Suit: SuitPin, Value: 1},
		{Suit: SuitWind, Wind: WindSouth},
		{Suit: SuitMan, Value: 9},
		{Suit: SuitMan, Value: 1},
		{Suit: SuitSo, Value: 5},
	}
	Sort(hand)
	got := make([]string, len(hand))
	for i, tl := range hand {
		got[i] = tl.String()
	}
	assert.Equal(t, []string{"m_1", "m_9", "s_5", "p_1", "wind_S", "dragon_white"}, got)
}

func TestParseRoundTrip(t *testing.T) {
	for _, face := range Universe(true) {
		s := face.String()
		back, err := Parse(s)
		require.NoError(t, err)
		assert.True(t, face.Equal(back), "round trip mismatch for %s", s)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := Parse("m_99")
	assert.Error(t, err)
	_, err = Parse("nosuit")
	assert.Error(t, err)
	_, err = Parse("wind_up")
	assert.Error(t, err)
}

func TestIndexRoundTrip(t *testing.T) {
	for _, face := range Universe(true) {
		assert.True(t, face.Equal(FromIndex(face.Index())))
	}
}

func TestWallDrawFrontAndBackDontOverlap(t *testing.T) {
	w := &Wall{remaining: []Tile{{Suit: SuitMan, Value: 1}, {Suit: SuitMan, Value: 2}, {Suit: SuitMan, Value: 3}}}
	front, err := w.DrawFront()
	require.NoError(t, err)
	assert.Equal(t, Tile{Suit: SuitMan, Value: 1}, front)

	back, err := w.DrawBack()
	require.NoError(t, err)
	assert.Equal(t, Tile{Suit: SuitMan, Value: 3}, back)

	assert.Equal(t, 1, w.Remaining())

	_, err = w.DrawBack()
	require.NoError(t, err)
	_, err = w.DrawFront()
	assert.ErrorIs(t, err, ErrEmptyWall)
}

func TestNewWallConservesTileCounts(t *testing.T) {
	w := NewWall(newTestRNG(), true)
	assert.Equal(t, 34*CopiesPerTile, w.Remaining())

	counts := map[Tile]int{}
	for w.Remaining() > 0 {
		tl, err := w.DrawFront()
		require.NoError(t, err)
		counts[tl]++
	}
	for _, face := range Universe(true) {
		assert.Equal(t, CopiesPerTile, counts[face])
	}
}
