// Package server implements the TCP session server: accept loop,
// per-client receiver, single-slot pending-input buffer, and the
// polling engine task that is the session's sole state mutator —
// grounded on mahjong_server.py's MahjongServer and the teacher's
// accept-loop/mutex idioms in common/test/tcp_server_example.go and
// framework/game/room.go.
package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"net"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"mahjongcore/internal/engine"
	"mahjongcore/internal/mjlog"
	"mahjongcore/internal/protocol"
)

// ErrSessionComplete is returned by Run once the single game session
// this process hosts has finished — by design this server never
// starts a second session in the same process lifetime.
var ErrSessionComplete = errors.New("server: session complete")

type pendingInput struct {
	kind     string
	playerID int
	action   string
	tile     string
	kongKind string
	response string
}

// Server owns the listener, the client roster, and the single game
// session. All fields below except the pending-input slot are guarded
// by mu; the pending slot has its own mutex since the receiver
// goroutines and the engine loop touch it far more often than the
// roster.
type Server struct {
	addr          string
	numPlayers    int
	includeHonors bool
	session       *engine.Session

	mu      sync.Mutex
	clients map[int]net.Conn
	nextID  int
	started bool

	pendingMu sync.Mutex
	pending   *pendingInput
}

// New creates a server bound to addr, configured for numPlayers seats.
func New(addr string, numPlayers int, includeHonors bool) *Server {
	return &Server{
		addr:          addr,
		numPlayers:    numPlayers,
		includeHonors: includeHonors,
		clients:       make(map[int]net.Conn),
	}
}

// Run accepts connections and drives the engine loop until ctx is
// canceled or the single hosted session finishes.
func (s *Server) Run(ctx context.Context, session *engine.Session) error {
	s.session = session

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	mjlog.Info("mahjong session server listening", "addr", ln.Addr().String())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-gctx.Done()
		return ln.Close()
	})
	g.Go(func() error {
		return s.acceptLoop(gctx, ln)
	})
	g.Go(func() error {
		return s.engineLoop(gctx)
	})
	return g.Wait()
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			mjlog.Warn("accept failed", "err", err)
			continue
		}
		go s.handleClient(conn)
	}
}

func (s *Server) handleClient(conn net.Conn) {
	defer conn.Close()
	reader := bufio.NewReader(conn)

	body, err := protocol.ReadFrame(reader)
	if err != nil {
		return // malformed/closed before a connect frame: drop silently
	}
	typ, err := protocol.PeekType(body)
	if err != nil || typ != protocol.TypeConnect {
		return
	}
	var connectMsg protocol.ConnectMessage
	if err := json.Unmarshal(body, &connectMsg); err != nil {
		return
	}

	playerID, ok := s.registerClient(conn)
	if !ok {
		_ = protocol.WriteFrame(conn, protocol.ErrorMessage{
			Type:    protocol.TypeError,
			Message: "session is not accepting new players",
		})
		return
	}

	player, err := s.session.AddPlayer(playerID, connectMsg.Name)
	if err != nil {
		s.unregisterClient(playerID)
		_ = protocol.WriteFrame(conn, protocol.ErrorMessage{Type: protocol.TypeError, Message: err.Error()})
		return
	}

	_ = protocol.WriteFrame(conn, protocol.ConnectSuccessMessage{
		Type:      protocol.TypeConnectSuccess,
		PlayerID:  player.ID,
		SessionID: s.session.ID,
	})
	s.broadcast(protocol.PlayerJoinedMessage{
		Type:       protocol.TypePlayerJoined,
		PlayerID:   player.ID,
		Name:       player.Name,
		PlayerSlot: s.clientCount(),
		TotalSlots: s.numPlayers,
	})

	mjlog.Info("player connected", "player_id", player.ID, "name", player.Name)

	for {
		body, err := protocol.ReadFrame(reader)
		if err != nil {
			s.handleClientGone(playerID)
			return
		}
		s.handleInboundFrame(playerID, body)
	}
}

func (s *Server) handleInboundFrame(playerID int, body []byte) {
	typ, err := protocol.PeekType(body)
	if err != nil {
		return // malformed frame: drop silently per the error taxonomy
	}
	switch typ {
	case protocol.TypeAction:
		var m protocol.ActionMessage
		if err := json.Unmarshal(body, &m); err != nil {
			return
		}
		s.setPending(&pendingInput{kind: typ, playerID: playerID, action: m.Action, tile: m.Tile, kongKind: m.KongKind})
	case protocol.TypeActionResponse:
		var m protocol.ActionResponseMessage
		if err := json.Unmarshal(body, &m); err != nil {
			return
		}
		s.setPending(&pendingInput{kind: typ, playerID: playerID, response: m.Response})
	default:
		// unknown message type while connected: ignored silently,
		// matching the malformed-frame row of the error taxonomy.
	}
}

func (s *Server) handleClientGone(playerID int) {
	s.unregisterClient(playerID)
	s.session.RemovePlayer(playerID)
	out := s.session.HandleDisconnect(playerID)
	s.deliver(out)
}

func (s *Server) registerClient(conn net.Conn) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || len(s.clients) >= s.numPlayers {
		return 0, false
	}
	id := s.nextID
	s.nextID++
	s.clients[id] = conn
	return id, true
}

func (s *Server) unregisterClient(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.clients, id)
}

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) setPending(in *pendingInput) {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	if s.pending != nil {
		mjlog.Warn("overwriting unconsumed input slot", "previous_player", s.pending.playerID, "new_player", in.playerID)
	}
	s.pending = in
}

func (s *Server) popPending() *pendingInput {
	s.pendingMu.Lock()
	defer s.pendingMu.Unlock()
	in := s.pending
	s.pending = nil
	return in
}

// engineLoop is the single serialized game loop: it starts the game
// once every seat fills, drains the pending-input slot, and polls at
// roughly the cadence the original server used (100ms right after
// activity, 200ms while idle) rather than blocking on a condition
// variable, trading a little latency for simple observability.
func (s *Server) engineLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		activity := s.maybeStartGame()
		if s.processPending() {
			activity = true
		}

		if s.session.Finished() {
			mjlog.Info("session finished, this process hosts exactly one game", "reason", s.session.EndReason)
			return ErrSessionComplete
		}

		if activity {
			time.Sleep(100 * time.Millisecond)
		} else {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

func (s *Server) maybeStartGame() bool {
	s.mu.Lock()
	if s.started || len(s.clients) != s.numPlayers {
		s.mu.Unlock()
		return false
	}
	s.started = true
	s.mu.Unlock()

	out, err := s.session.StartGame()
	if err != nil {
		mjlog.Error("failed to start game", "err", err)
		return false
	}
	s.deliver(out)
	return true
}

func (s *Server) processPending() bool {
	in := s.popPending()
	if in == nil {
		return false
	}

	var out []engine.Outbound
	var err error
	switch in.kind {
	case protocol.TypeAction:
		out, err = s.session.HandlePlayerAction(in.playerID, in.action, in.tile, in.kongKind)
	case protocol.TypeActionResponse:
		out, err = s.session.HandleActionResponse(in.playerID, in.response)
	}
	if err != nil {
		mjlog.Warn("rejected client input", "player", in.playerID, "err", err)
		s.sendTo(in.playerID, protocol.ErrorMessage{Type: protocol.TypeError, Message: err.Error()})
		return true
	}
	s.deliver(out)
	return true
}
