package server

import (
	"net"

	"mahjongcore/internal/engine"
	"mahjongcore/internal/mjlog"
	"mahjongcore/internal/protocol"
)

// deliver sends every outbound message produced by an engine call.
// Connections are snapshotted under the roster lock and written to
// afterward, outside it — outbound socket writes must never happen
// while holding the lock that also guards the client table.
func (s *Server) deliver(out []engine.Outbound) {
	if len(out) == 0 {
		return
	}
	s.mu.Lock()
	snapshot := make(map[int]net.Conn, len(s.clients))
	for id, conn := range s.clients {
		snapshot[id] = conn
	}
	s.mu.Unlock()

	for _, o := range out {
		if o.Broadcast {
			for id, conn := range snapshot {
				if err := protocol.WriteFrame(conn, o.Message); err != nil {
					mjlog.Warn("broadcast write failed", "player", id, "err", err)
				}
			}
			continue
		}
		if conn, ok := snapshot[o.PlayerID]; ok {
			if err := protocol.WriteFrame(conn, o.Message); err != nil {
				mjlog.Warn("write failed", "player", o.PlayerID, "err", err)
			}
		}
	}
}

func (s *Server) broadcast(msg any) {
	s.deliver([]engine.Outbound{{Broadcast: true, Message: msg}})
}

func (s *Server) sendTo(playerID int, msg any) {
	s.deliver([]engine.Outbound{{PlayerID: playerID, Message: msg}})
}
