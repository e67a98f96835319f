package engine

import "mahjongcore/internal/protocol"

// gameStateFor builds the per-recipient game_state snapshot: the
// recipient sees their own hand in full, everyone else's hand is
// redacted to a count, matching get_state_for_player in the original
// server.
func (s *Session) gameStateFor(recipientID int) protocol.GameStateMessage {
	msg := protocol.GameStateMessage{
		Type:        protocol.TypeGameState,
		Phase:       s.Phase.String(),
		CurrentTurn: s.CurrentTurn,
	}
	for _, p := range s.Players {
		pub := protocol.PlayerPublicState{
			PlayerID:    p.ID,
			Name:        p.Name,
			HandSize:    len(p.Hand),
			Melds:       meldStrings(p.Melds),
			Discards:    tileStrings(p.Discards),
			IsListening: p.IsListening,
		}
		msg.Players = append(msg.Players, pub)
		if p.ID == recipientID {
			msg.YourHand = tileStrings(p.handSnapshot())
		}
	}
	return msg
}

// broadcastGameState emits a personalized game_state to every seated
// player.
func (s *Session) broadcastGameState() []Outbound {
	var out []Outbound
	for _, p := range s.Players {
		out = append(out, toPlayer(p.ID, s.gameStateFor(p.ID)))
	}
	return out
}
