package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mahjongcore/internal/protocol"
	"mahjongcore/internal/tiles"
)

func mt(v int) tiles.Tile { return tiles.Tile{Suit: tiles.SuitMan, Value: v} }
func st(v int) tiles.Tile { return tiles.Tile{Suit: tiles.SuitSo, Value: v} }
func pt(v int) tiles.Tile { return tiles.Tile{Suit: tiles.SuitPin, Value: v} }
func windt(w tiles.Wind) tiles.Tile     { return tiles.Tile{Suit: tiles.SuitWind, Wind: w} }
func dragont(d tiles.Dragon) tiles.Tile { return tiles.Tile{Suit: tiles.SuitDragon, Dragon: d} }

func outboundOfType[T any](out []Outbound) (T, bool) {
	for _, o := range out {
		if v, ok := o.Message.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

func outboundsOfType[T any](out []Outbound) []T {
	var matches []T
	for _, o := range out {
		if v, ok := o.Message.(T); ok {
			matches = append(matches, v)
		}
	}
	return matches
}

func TestDealingDistributionInvariants(t *testing.T) {
	s, err := NewSession(4, true, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, err := s.AddPlayer(i, "p")
		require.NoError(t, err)
	}

	_, err = s.StartGame()
	require.NoError(t, err)

	assert.Equal(t, PhasePlaying, s.Phase)
	counts := map[tiles.Tile]int{}
	for i, p := range s.Players {
		want := InitialHandSize
		if i == 0 {
			want++ // dealer's extra turn-0 draw
		}
		assert.Len(t, p.Hand, want)
		for _, tl := range p.Hand {
			counts[tl]++
		}
	}
	for _, face := range tiles.Universe(true) {
		assert.LessOrEqual(t, counts[face], tiles.CopiesPerTile)
	}
}

func TestSelfDrawWin(t *testing.T) {
	s := &Session{NumPlayers: 2, IncludeHonors: true, Phase: PhasePlaying, CurrentTurn: 0}
	p0 := newPlayer(0, "A")
	p1 := newPlayer(1, "B")
	s.Players = []*Player{p0, p1}

	winTile := windt(tiles.WindEast)
	p0.Hand = []tiles.Tile{
		mt(1), mt(1), mt(1),
		mt(2), mt(2), mt(2),
		mt(3), mt(3), mt(3),
		st(5), st(5), st(5),
		winTile, winTile,
	}
	p0.CurrentDraw = &winTile

	out, err := s.HandlePlayerAction(0, protocol.ActionWin, "", "")
	require.NoError(t, err)
	assert.Equal(t, PhaseFinished, s.Phase)
	require.NotNil(t, s.WinnerID)
	assert.Equal(t, 0, *s.WinnerID)
	assert.Equal(t, protocol.SelfDrawWinningTile, s.WinningTile)

	_, ok := outboundOfType[protocol.GameOverMessage](out)
	assert.True(t, ok)
}

func TestPongPriorityOverPass(t *testing.T) {
	s := &Session{NumPlayers: 3, IncludeHonors: true, Phase: PhasePlaying, CurrentTurn: 0}
	p0 := newPlayer(0, "A")
	p1 := newPlayer(1, "B")
	p2 := newPlayer(2, "C")
	s.Players = []*Player{p0, p1, p2}
	s.Wall = tiles.NewWallFromTiles([]tiles.Tile{mt(9), st(9)})

	discard := pt(5)
	p1.Hand = []tiles.Tile{pt(5), pt(5), mt(1), mt(2)}
	p2.Hand = []tiles.Tile{mt(4), mt(6)}
	s.LastDiscard = &discard
	s.LastDiscarderID = 0

	out := s.checkOtherPlayersActionsLocked()
	require.Contains(t, s.responses, 1)
	assert.True(t, s.responses[1].canPong)
	_, hasP2 := s.responses[2]
	assert.False(t, hasP2)

	prompt, ok := outboundOfType[protocol.ActionPromptMessage](out)
	require.True(t, ok, "an eligible responder must receive an action_prompt")
	assert.True(t, prompt.IsResponsePrompt)
	assert.Equal(t, discard.String(), prompt.Tile)
	require.NotNil(t, prompt.DiscarderID)
	assert.Equal(t, 0, *prompt.DiscarderID)
	assert.Contains(t, prompt.Actions, protocol.ActionPong)
	assert.Contains(t, prompt.Actions, protocol.ActionPass)
	assert.NotContains(t, prompt.Actions, protocol.ActionKong)

	resolved, err := s.HandleActionResponse(1, protocol.ActionPong)
	require.NoError(t, err)
	assert.Equal(t, 1, s.CurrentTurn)
	require.Len(t, p1.Melds, 1)
	assert.Equal(t, tiles.MeldTriplet, p1.Melds[0].Kind)
	assert.True(t, p1.Melds[0].Face.Equal(discard))

	_, pongedOK := outboundOfType[protocol.PlayerPongedMessage](resolved)
	assert.True(t, pongedOK)
}

func TestWinBeatsKongOnDiscard(t *testing.T) {
	s := &Session{NumPlayers: 3, IncludeHonors: true, Phase: PhasePlaying, CurrentTurn: 0}
	p0 := newPlayer(0, "A")
	p1 := newPlayer(1, "B")
	p2 := newPlayer(2, "C")
	s.Players = []*Player{p0, p1, p2}
	s.Wall = tiles.NewWallFromTiles([]tiles.Tile{mt(9)})

	// p1 holds a concealed triplet of the discarded face (kong claim
	// eligible); p2's hand needs the very same discard to complete an
	// unrelated sequence, so the two claims don't double up on copies
	// of pt(9) (only 4 exist: 3 in p1's hand plus the discard itself).
	discard := pt(9)
	p1.Hand = []tiles.Tile{pt(9), pt(9), pt(9), mt(1), mt(2)}
	p2.Hand = []tiles.Tile{
		mt(1), mt(1), mt(1),
		mt(2), mt(2), mt(2),
		mt(3), mt(3), mt(3),
		st(5), st(5),
		pt(7), pt(8),
	}
	s.LastDiscard = &discard
	s.LastDiscarderID = 0

	out := s.checkOtherPlayersActionsLocked()
	require.Contains(t, s.responses, 1)
	require.Contains(t, s.responses, 2)
	assert.True(t, s.responses[1].canKong)
	assert.True(t, s.responses[2].canWin)

	prompts := outboundsOfType[protocol.ActionPromptMessage](out)
	require.Len(t, prompts, 2, "both eligible responders must receive an action_prompt")
	byRecipient := map[int][]string{}
	for _, o := range out {
		if p, ok := o.Message.(protocol.ActionPromptMessage); ok {
			assert.True(t, p.IsResponsePrompt)
			assert.Equal(t, discard.String(), p.Tile)
			byRecipient[o.PlayerID] = p.Actions
		}
	}
	assert.Contains(t, byRecipient[1], protocol.ActionKong)
	assert.Contains(t, byRecipient[2], protocol.ActionWin)

	_, err := s.HandleActionResponse(1, protocol.ActionKong)
	require.NoError(t, err)
	resolved, err := s.HandleActionResponse(2, protocol.ActionWin)
	require.NoError(t, err)

	assert.Equal(t, PhaseFinished, s.Phase)
	require.NotNil(t, s.WinnerID)
	assert.Equal(t, 2, *s.WinnerID)
	assert.Empty(t, p1.Melds) // the kong claim must not have been applied
	_, ok := outboundOfType[protocol.GameOverMessage](resolved)
	assert.True(t, ok)
}

func TestDeclareListenSuccess(t *testing.T) {
	s := &Session{NumPlayers: 2, IncludeHonors: true, Phase: PhasePlaying, CurrentTurn: 0}
	p0 := newPlayer(0, "A")
	p1 := newPlayer(1, "B")
	s.Players = []*Player{p0, p1}
	s.Wall = tiles.NewWallFromTiles([]tiles.Tile{mt(9), st(9)})

	drawn := mt(9)
	p0.Hand = []tiles.Tile{
		mt(1), mt(1), mt(1),
		mt(2), mt(2), mt(2),
		mt(3), mt(3), mt(3),
		st(5), st(5),
		pt(1), pt(2),
		drawn,
	}
	p0.CurrentDraw = &drawn
	p0.AttemptingTing = true

	out, err := s.HandlePlayerAction(0, protocol.ActionDiscard, drawn.String(), "")
	require.NoError(t, err)
	assert.True(t, p0.IsListening)
	assert.NotEmpty(t, p0.FixedWaits)
	_, ok := outboundOfType[protocol.PlayerTingedMessage](out)
	assert.True(t, ok)
}

func TestDeclareListenFailureIsAcceptedAsDiscard(t *testing.T) {
	s := &Session{NumPlayers: 2, IncludeHonors: true, Phase: PhasePlaying, CurrentTurn: 0}
	p0 := newPlayer(0, "A")
	p1 := newPlayer(1, "B")
	s.Players = []*Player{p0, p1}
	s.Wall = tiles.NewWallFromTiles([]tiles.Tile{mt(9), st(9)})

	drawn := dragont(tiles.DragonRed)
	p0.Hand = []tiles.Tile{
		mt(1), mt(4), mt(7),
		st(1), st(4), st(7),
		pt(1), pt(4), pt(7),
		windt(tiles.WindEast), windt(tiles.WindSouth), windt(tiles.WindWest), windt(tiles.WindNorth),
		drawn,
	}
	p0.CurrentDraw = &drawn
	p0.AttemptingTing = true

	out, err := s.HandlePlayerAction(0, protocol.ActionDiscard, drawn.String(), "")
	require.NoError(t, err)
	assert.False(t, p0.IsListening)
	assert.False(t, p0.AttemptingTing)
	_, ok := outboundOfType[protocol.InfoMessage](out)
	assert.True(t, ok)
}

func TestExhaustiveDraw(t *testing.T) {
	s := &Session{NumPlayers: 2, IncludeHonors: true, Phase: PhasePlaying, CurrentTurn: 0}
	p0 := newPlayer(0, "A")
	p1 := newPlayer(1, "B")
	s.Players = []*Player{p0, p1}
	s.Wall = tiles.NewWallFromTiles(nil)

	out := s.advanceTurnLocked()
	assert.Equal(t, PhaseFinished, s.Phase)
	assert.Nil(t, s.WinnerID)
	assert.Equal(t, "exhaustive draw", s.EndReason)
	_, ok := outboundOfType[protocol.GameOverMessage](out)
	assert.True(t, ok)
}

func TestEndGameIsIdempotent(t *testing.T) {
	s := &Session{NumPlayers: 2, Phase: PhasePlaying}
	s.Players = []*Player{newPlayer(0, "A"), newPlayer(1, "B")}

	first := s.EndGame("test", nil, "")
	assert.NotEmpty(t, first)
	second := s.EndGame("test again", nil, "")
	assert.Nil(t, second)
	assert.Equal(t, "test", s.EndReason)
}
