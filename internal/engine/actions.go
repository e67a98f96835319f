package engine

import (
	"fmt"

	"mahjongcore/internal/handanalyzer"
	"mahjongcore/internal/protocol"
	"mahjongcore/internal/tiles"
)

// HandlePlayerAction processes one "action" message from the seat
// currently holding the turn: discard, self-draw win, kong, or a
// declare-listen attempt. The client-supplied tile is never trusted —
// every branch revalidates against the session's authoritative state.
func (s *Session) HandlePlayerAction(playerID int, action, tileStr, kongKind string) ([]Outbound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhasePlaying {
		return nil, fmt.Errorf("engine: action received outside playing phase (phase=%s)", s.Phase)
	}
	p := s.playerByID(playerID)
	if p == nil {
		return nil, fmt.Errorf("engine: unknown player %d", playerID)
	}
	if s.Players[s.CurrentTurn].ID != playerID {
		return nil, fmt.Errorf("engine: illegal action: it is not player %d's turn", playerID)
	}

	switch action {
	case protocol.ActionDiscard:
		return s.handleDiscardLocked(p, tileStr)
	case protocol.ActionWin:
		return s.handleZimoWinLocked(p)
	case protocol.ActionKong:
		return s.handleKongLocked(p, tileStr, kongKind)
	case protocol.ActionListen:
		return s.handleDeclareListenAttemptLocked(p)
	default:
		return nil, fmt.Errorf("engine: unknown action %q", action)
	}
}

func (s *Session) handleDiscardLocked(p *Player, tileStr string) ([]Outbound, error) {
	var discard tiles.Tile
	switch {
	case p.IsListening && p.CurrentDraw != nil:
		// A listening player always discards the just-drawn tile —
		// the client's tile field is advisory only and gets coerced
		// to it.
		discard = *p.CurrentDraw
	default:
		// Any other discard (ordinary turn, kong replacement, or after
		// a claimed pong): the player chooses freely from their hand.
		t, err := tiles.Parse(tileStr)
		if err != nil || p.countInHand(t) == 0 {
			return nil, fmt.Errorf("engine: illegal action: tile %q not in hand", tileStr)
		}
		discard = t
	}

	if !p.removeFromHand(discard) {
		return s.endGameLocked("internal error: discard tile not found in hand", nil, ""), nil
	}
	p.CurrentDraw = nil
	p.Discards = append(p.Discards, discard)
	s.LastDiscard = &discard
	s.LastDiscarderID = p.ID
	s.DiscardHistory = append(s.DiscardHistory, discard)

	out := []Outbound{toAll(protocol.PlayerDiscardedMessage{
		Type:     protocol.TypePlayerDiscarded,
		PlayerID: p.ID,
		Tile:     discard.String(),
	})}

	if p.AttemptingTing {
		waits := handanalyzer.ValidateDeclareListen(p.handSnapshot(), p.exposedMeldCount(), s.IncludeHonors)
		p.AttemptingTing = false
		if len(waits) > 0 {
			p.IsListening = true
			p.FixedWaits = waits
			out = append(out, toAll(protocol.PlayerTingedMessage{Type: protocol.TypePlayerTinged, PlayerID: p.ID}))
		} else {
			out = append(out, toPlayer(p.ID, protocol.InfoMessage{
				Type:    protocol.TypeInfo,
				Message: "declare-listen failed, discard accepted as a normal discard",
			}))
		}
	}

	out = append(out, s.broadcastGameState()...)
	out = append(out, s.checkOtherPlayersActionsLocked()...)
	return out, nil
}

func (s *Session) handleZimoWinLocked(p *Player) ([]Outbound, error) {
	if p.CurrentDraw == nil || !handanalyzer.CanWin(p.handSnapshot(), p.exposedMeldCount()) {
		return nil, fmt.Errorf("engine: illegal action: player %d cannot win on this draw", p.ID)
	}
	id := p.ID
	return s.endGameLocked("self-draw win", &id, protocol.SelfDrawWinningTile), nil
}

func (s *Session) handleKongLocked(p *Player, tileStr, kongKind string) ([]Outbound, error) {
	face, err := tiles.Parse(tileStr)
	if err != nil {
		return nil, fmt.Errorf("engine: illegal action: %w", err)
	}
	candidates := handanalyzer.FindPossibleKongs(p.Hand, p.Melds, nil, p.IsListening)

	var kind tiles.MeldKind
	switch kongKind {
	case protocol.KongConcealed:
		if !containsFace(candidates.Concealed, face) {
			return nil, fmt.Errorf("engine: illegal action: no concealed kong available for %s", face)
		}
		kind = tiles.MeldKongConcealed
	case protocol.KongAdded:
		if !containsFace(candidates.Added, face) {
			return nil, fmt.Errorf("engine: illegal action: no added kong available for %s", face)
		}
		kind = tiles.MeldKongAdded
	default:
		return nil, fmt.Errorf("engine: illegal action: unknown gang_type %q", kongKind)
	}

	if p.IsListening {
		if !handanalyzer.CheckGangMaintainsListen(p.handSnapshot(), p.Melds, kind, face, p.FixedWaits, s.IncludeHonors) {
			return nil, fmt.Errorf("engine: illegal action: kong would change the listening wait set")
		}
	}

	if kind == tiles.MeldKongConcealed {
		applyConcealedKong(p, face)
	} else {
		applyAddedKong(p, face)
	}

	out := []Outbound{toAll(protocol.PlayerGangedMessage{
		Type:     protocol.TypePlayerGanged,
		PlayerID: p.ID,
		Tile:     face.String(),
		KongKind: kongKind,
	})}
	out = append(out, s.drawGangReplacementLocked(p)...)
	return out, nil
}

func (s *Session) handleDeclareListenAttemptLocked(p *Player) ([]Outbound, error) {
	if p.IsListening {
		return nil, fmt.Errorf("engine: illegal action: player %d is already listening", p.ID)
	}
	if p.AttemptingTing {
		return nil, fmt.Errorf("engine: illegal action: player %d already attempting to declare listen", p.ID)
	}
	if len(p.Hand)%3 != 2 {
		return nil, fmt.Errorf("engine: illegal action: hand is not in a discard-ready shape")
	}
	p.AttemptingTing = true
	prompt := protocol.ActionPromptMessage{
		Type:                 protocol.TypeActionPrompt,
		Actions:              []string{protocol.ActionDiscard},
		PromptForTingDiscard: true,
	}
	if p.CurrentDraw != nil {
		prompt.DrawnTile = p.CurrentDraw.String()
	}
	return []Outbound{toPlayer(p.ID, prompt)}, nil
}
