package engine

import (
	"fmt"

	"mahjongcore/internal/handanalyzer"
	"mahjongcore/internal/protocol"
)

// clockwiseFromDiscarder returns seat indices in clockwise order
// starting immediately after the discarder, matching
// check_other_players_actions' i in range(1, num_players) scan.
func (s *Session) clockwiseFromDiscarder() []int {
	order := make([]int, 0, s.NumPlayers-1)
	for i := 1; i < s.NumPlayers; i++ {
		order = append(order, (s.CurrentTurn+i)%s.NumPlayers)
	}
	return order
}

// checkOtherPlayersActionsLocked computes, for each seat clockwise from
// the discarder, whether it may win/kong/pong the last discard. If
// nobody has any eligible response the turn advances immediately;
// otherwise a response window opens, an action_prompt is sent to every
// eligible seat naming its actions and the contested tile/discarder
// (matching check_other_players_actions' final_actions_list/message
// construction), and HandleActionResponse collects replies until every
// eligible seat has answered.
func (s *Session) checkOtherPlayersActionsLocked() []Outbound {
	s.responses = map[int]*pendingResponse{}
	discarderID := s.LastDiscarderID
	var out []Outbound

	for _, seat := range s.clockwiseFromDiscarder() {
		p := s.Players[seat]
		candidate := append(p.handSnapshot(), *s.LastDiscard)
		canWin := handanalyzer.CanWin(candidate, p.exposedMeldCount())

		var canKong, canPong bool
		if !p.IsListening {
			kongs := handanalyzer.FindPossibleKongs(p.Hand, p.Melds, s.LastDiscard, p.IsListening)
			canKong = len(kongs.Claimed) > 0
			canPong = p.countInHand(*s.LastDiscard) >= 2
		}

		if !canWin && !canKong && !canPong {
			continue
		}
		s.responses[p.ID] = &pendingResponse{canWin: canWin, canKong: canKong, canPong: canPong}

		var actions []string
		if canWin {
			actions = append(actions, protocol.ActionWin)
		}
		if canKong {
			actions = append(actions, protocol.ActionKong)
		}
		if canPong {
			actions = append(actions, protocol.ActionPong)
		}
		actions = append(actions, protocol.ActionPass)

		out = append(out, toPlayer(p.ID, protocol.ActionPromptMessage{
			Type:             protocol.TypeActionPrompt,
			Actions:          actions,
			Tile:             s.LastDiscard.String(),
			DiscarderID:      &discarderID,
			IsResponsePrompt: true,
		}))
	}

	if len(s.responses) == 0 {
		s.responses = nil
		return s.advanceTurnLocked()
	}
	return out
}

// HandleActionResponse records one player's reply during an open
// response window. Once every eligible seat has replied, the window
// resolves by priority: win beats kong beats pong, with clockwise
// order breaking ties among equal-priority claims.
func (s *Session) HandleActionResponse(playerID int, response string) ([]Outbound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.responses == nil {
		return nil, fmt.Errorf("engine: no response window is open")
	}
	pr, ok := s.responses[playerID]
	if !ok {
		return nil, fmt.Errorf("engine: player %d is not eligible to respond", playerID)
	}

	valid := false
	switch response {
	case protocol.ActionWin:
		valid = pr.canWin
	case protocol.ActionKong:
		valid = pr.canKong
	case protocol.ActionPong:
		valid = pr.canPong
	case protocol.ActionPass:
		valid = true
	}
	if !valid {
		response = protocol.ActionPass
	}
	pr.reply = response

	for _, other := range s.responses {
		if other.reply == "" {
			return nil, nil
		}
	}
	return s.resolvePendingActionsLocked(), nil
}

// resolvePendingActionsLocked applies strict priority win > kong > pong
// once every eligible seat has replied, clockwise tiebreak among equal
// priorities. Caller must hold mu.
func (s *Session) resolvePendingActionsLocked() []Outbound {
	order := s.clockwiseFromDiscarder()
	discardFace := *s.LastDiscard

	for _, seat := range order {
		p := s.Players[seat]
		if pr := s.responses[p.ID]; pr != nil && pr.reply == protocol.ActionWin {
			s.responses = nil
			id := p.ID
			return s.endGameLocked("win on discard", &id, discardFace.String())
		}
	}

	var gangSeat, pongSeat = -1, -1
	for _, seat := range order {
		p := s.Players[seat]
		if pr := s.responses[p.ID]; pr != nil && pr.reply == protocol.ActionKong {
			gangSeat = seat
			break
		}
	}
	if gangSeat == -1 {
		for _, seat := range order {
			p := s.Players[seat]
			if pr := s.responses[p.ID]; pr != nil && pr.reply == protocol.ActionPong {
				pongSeat = seat
				break
			}
		}
	}
	s.responses = nil

	switch {
	case gangSeat != -1:
		p := s.Players[gangSeat]
		applyExposedKong(p, discardFace)
		s.CurrentTurn = gangSeat
		out := []Outbound{toAll(protocol.PlayerGangedMessage{
			Type:     protocol.TypePlayerGanged,
			PlayerID: p.ID,
			Tile:     discardFace.String(),
			KongKind: protocol.KongClaimed,
		})}
		out = append(out, s.drawGangReplacementLocked(p)...)
		return out

	case pongSeat != -1:
		p := s.Players[pongSeat]
		applyPong(p, discardFace)
		s.CurrentTurn = pongSeat
		out := []Outbound{toAll(protocol.PlayerPongedMessage{
			Type:     protocol.TypePlayerPonged,
			PlayerID: p.ID,
			Tile:     discardFace.String(),
		})}
		out = append(out, toPlayer(p.ID, protocol.ActionPromptMessage{
			Type:           protocol.TypeActionPrompt,
			Actions:        []string{protocol.ActionDiscard},
			FromPongOrGang: true,
		}))
		return append(s.broadcastGameState(), out...)

	default:
		return s.advanceTurnLocked()
	}
}
