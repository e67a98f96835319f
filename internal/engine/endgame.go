package engine

import "mahjongcore/internal/protocol"

// EndGame terminates the session. It is idempotent: once the game has
// finished, every subsequent call (from a late disconnect, a second
// internal error, etc.) is a no-op, matching the original's
// `if self.game_state == "finished": return` guard.
func (s *Session) EndGame(reason string, winnerID *int, winningTile string) []Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endGameLocked(reason, winnerID, winningTile)
}

func (s *Session) endGameLocked(reason string, winnerID *int, winningTile string) []Outbound {
	if s.gameOver {
		return nil
	}
	s.gameOver = true
	s.Phase = PhaseFinished
	s.WinnerID = winnerID
	s.WinningTile = winningTile
	s.EndReason = reason
	s.responses = nil

	finalHands := map[int]protocol.FinalHand{}
	for _, p := range s.Players {
		fh := protocol.FinalHand{
			Hand:        tileStrings(p.handSnapshot()),
			Melds:       meldStrings(p.Melds),
			IsListening: p.IsListening,
		}
		if p.IsListening {
			fh.Waits = tileStrings(p.FixedWaits)
		}
		finalHands[p.ID] = fh
	}

	return []Outbound{toAll(protocol.GameOverMessage{
		Type:        protocol.TypeGameOver,
		Reason:      reason,
		WinnerID:    winnerID,
		WinningTile: winningTile,
		FinalHands:  finalHands,
	})}
}

// Finished reports whether the session has reached its terminal phase.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Phase == PhaseFinished
}

// HandleDisconnect reacts to a player's connection dropping. During
// play this immediately ends the session; while still waiting to fill,
// the seat is simply freed (see Session.RemovePlayer) and the session
// may still be completed by a new connection.
func (s *Session) HandleDisconnect(playerID int) []Outbound {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Phase != PhasePlaying {
		return nil
	}
	var name string
	if p := s.playerByID(playerID); p != nil {
		name = p.Name
	}
	return s.endGameLocked("player "+name+" disconnected", nil, "")
}
