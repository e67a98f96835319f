package handanalyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mahjongcore/internal/tiles"
)

func TestWaitSetTwoSidedWait(t *testing.T) {
	hand := []tiles.Tile{
		m(1), m(2), m(3),
		m(4), m(5), m(6),
		s(1), s(2), s(3),
		p(1), p(1),
		p(5), p(6),
	}
	waits := WaitSet(hand, 0, true)
	var faces []string
	for _, w := range waits {
		faces = append(faces, w.String())
	}
	assert.Contains(t, faces, "p_4")
	assert.Contains(t, faces, "p_7")
}

func TestWaitSetFixedPointMatchesCanWin(t *testing.T) {
	hand := []tiles.Tile{
		m(1), m(2), m(3),
		m(4), m(5), m(6),
		s(1), s(2), s(3),
		p(1), p(1),
		p(5), p(6),
	}
	for _, face := range WaitSet(hand, 0, true) {
		trial := append(append([]tiles.Tile{}, hand...), face)
		assert.True(t, CanWin(trial, 0), "wait face %s should actually complete the hand", face)
	}
}

func TestSameWaitSetIgnoresOrder(t *testing.T) {
	a := []tiles.Tile{m(1), m(2)}
	b := []tiles.Tile{m(2), m(1)}
	assert.True(t, SameWaitSet(a, b))
	assert.False(t, SameWaitSet(a, []tiles.Tile{m(1)}))
}

func TestFindPossibleKongsConcealedAndAdded(t *testing.T) {
	concealed := []tiles.Tile{m(1), m(1), m(1), m(1), s(2), s(3), s(4)}
	melds := []tiles.Meld{{Kind: tiles.MeldTriplet, Face: p(9)}}
	concealed = append(concealed, p(9))

	cand := FindPossibleKongs(concealed, melds, nil, false)
	assert.Len(t, cand.Concealed, 1)
	assert.True(t, cand.Concealed[0].Equal(m(1)))
	assert.Len(t, cand.Added, 1)
	assert.True(t, cand.Added[0].Equal(p(9)))
	assert.Empty(t, cand.Claimed)
}

func TestFindPossibleKongsClaimRequiresNotListening(t *testing.T) {
	discarded := m(1)
	concealed := []tiles.Tile{m(1), m(1), m(1), s(2), s(3), s(4)}

	cand := FindPossibleKongs(concealed, nil, &discarded, false)
	assert.Len(t, cand.Claimed, 1)

	candListening := FindPossibleKongs(concealed, nil, &discarded, true)
	assert.Empty(t, candListening.Claimed)
}

func TestCheckGangMaintainsListenRejectsWaitChangingKong(t *testing.T) {
	// Listening on m1 m1 m1 m2 (waits m2, m3) plus three complete
	// runs; drawing the fourth m1 and declaring the an-gang leaves only
	// m2 as a wait, so the kong must be rejected.
	listening := []tiles.Tile{
		m(1), m(1), m(1), m(2),
		s(1), s(2), s(3),
		s(4), s(5), s(6),
		p(7), p(8), p(9),
	}
	fixedWaits := WaitSet(listening, 0, true)
	concealed := append(append([]tiles.Tile{}, listening...), m(1))
	ok := CheckGangMaintainsListen(concealed, nil, tiles.MeldKongConcealed, m(1), fixedWaits, true)
	assert.False(t, ok, "an-gang on m1 changes the wait set from {m2, m3} to {m2}")
	trialConcealed := removeAllCopies(append([]tiles.Tile{}, concealed...), m(1), 4)
	trialWaits := WaitSet(trialConcealed, 1, true)
	assert.Equal(t, SameWaitSet(trialWaits, fixedWaits), ok)
}
