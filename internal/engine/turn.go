package engine

import (
	"fmt"

	"mahjongcore/internal/handanalyzer"
	"mahjongcore/internal/protocol"
	"mahjongcore/internal/tiles"
)

// StartGame deals 13 tiles to each seat in round-robin single-tile
// passes, then begins the dealer's turn with its extra 14th-tile draw.
// It requires every seat to already be filled.
func (s *Session) StartGame() ([]Outbound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhaseWaiting {
		return nil, fmt.Errorf("engine: session already started (phase=%s)", s.Phase)
	}
	if len(s.Players) != s.NumPlayers {
		return nil, fmt.Errorf("engine: expected %d players, have %d", s.NumPlayers, len(s.Players))
	}

	s.Phase = PhaseDealing
	s.Wall = tiles.NewWall(s.rng, s.IncludeHonors)

	for i := 0; i < InitialHandSize; i++ {
		for _, p := range s.Players {
			t, err := s.Wall.DrawFront()
			if err != nil {
				// Wall exhaustion mid-deal is an internal assertion
				// failure per the error taxonomy: fatal for the
				// session.
				return s.endGameLocked("internal error: wall exhausted during deal", nil, ""), nil
			}
			p.Hand = append(p.Hand, t)
		}
	}
	for _, p := range s.Players {
		tiles.Sort(p.Hand)
	}

	s.Phase = PhasePlaying
	s.CurrentTurn = 0

	out := s.broadcastGameState()
	out = append(out, s.beginTurnLocked(s.Players[0], s.Wall.DrawFront, false)...)
	return out, nil
}

// beginTurnLocked draws a tile for p via drawFn (front for an ordinary
// turn, back for a kong replacement), computes the available action
// set, and returns the resulting action_prompt. Caller must hold mu.
func (s *Session) beginTurnLocked(p *Player, drawFn func() (tiles.Tile, error), isReplacement bool) []Outbound {
	t, err := drawFn()
	if err != nil {
		return s.endGameLocked("exhaustive draw", nil, "")
	}
	p.Hand = append(p.Hand, t)
	tiles.Sort(p.Hand)
	p.CurrentDraw = &t

	concealed := p.handSnapshot()
	exposed := p.exposedMeldCount()
	canWin := handanalyzer.CanWin(concealed, exposed)
	kongs := handanalyzer.FindPossibleKongs(p.Hand, p.Melds, nil, p.IsListening)

	var actions []string
	var allowedConcealed, allowedAdded []tiles.Tile

	if p.IsListening {
		actions = []string{protocol.ActionDiscard}
		if canWin {
			actions = append(actions, protocol.ActionWin)
		}
		for _, face := range kongs.Concealed {
			if handanalyzer.CheckGangMaintainsListen(concealed, p.Melds, tiles.MeldKongConcealed, face, p.FixedWaits, s.IncludeHonors) {
				allowedConcealed = append(allowedConcealed, face)
			}
		}
		for _, face := range kongs.Added {
			if handanalyzer.CheckGangMaintainsListen(concealed, p.Melds, tiles.MeldKongAdded, face, p.FixedWaits, s.IncludeHonors) {
				allowedAdded = append(allowedAdded, face)
			}
		}
		if len(allowedConcealed) > 0 || len(allowedAdded) > 0 {
			actions = append(actions, protocol.ActionKong)
		}
	} else {
		actions = []string{protocol.ActionDiscard}
		if canWin {
			actions = append(actions, protocol.ActionWin)
		}
		allowedConcealed, allowedAdded = kongs.Concealed, kongs.Added
		if len(allowedConcealed) > 0 || len(allowedAdded) > 0 {
			actions = append(actions, protocol.ActionKong)
		}
		if !p.AttemptingTing {
			actions = append(actions, protocol.ActionListen)
		}
	}

	prompt := protocol.ActionPromptMessage{
		Type:              protocol.TypeActionPrompt,
		Actions:           actions,
		DrawnTile:         t.String(),
		PossibleConcealed: tileStrings(allowedConcealed),
		PossibleAdded:     tileStrings(allowedAdded),
		IsGangReplacement: isReplacement,
		IsListeningTurn:   p.IsListening,
	}
	return []Outbound{toPlayer(p.ID, prompt)}
}

// advanceTurnLocked moves the turn marker to the next seat and starts
// its turn, or ends the game if the wall is exhausted.
func (s *Session) advanceTurnLocked() []Outbound {
	s.CurrentTurn = s.nextSeat(s.CurrentTurn)
	if s.Wall.Remaining() == 0 {
		return s.endGameLocked("exhaustive draw", nil, "")
	}
	out := s.beginTurnLocked(s.Players[s.CurrentTurn], s.Wall.DrawFront, false)
	return append(s.broadcastGameState(), out...)
}

// drawGangReplacementLocked draws the kong-replacement tile for p from
// the back of the wall and re-enters the turn logic for it.
func (s *Session) drawGangReplacementLocked(p *Player) []Outbound {
	out := s.beginTurnLocked(p, s.Wall.DrawBack, true)
	return append(s.broadcastGameState(), out...)
}
