package engine

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/google/uuid"

	"mahjongcore/internal/tiles"
)

// Phase is the session's coarse lifecycle state.
type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseDealing
	PhasePlaying
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseDealing:
		return "dealing"
	case PhasePlaying:
		return "playing"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// InitialHandSize is the number of tiles dealt to each player before
// the dealer's extra turn-0 draw.
const InitialHandSize = 13

// pendingResponse tracks one player's recorded reply during a response
// window, along with what they were eligible to answer.
type pendingResponse struct {
	canWin  bool
	canKong bool
	canPong bool
	reply   string // "", "hu", "gang", "pong", "pass"
}

// Session is the single authoritative game record for one table. Every
// field below is only ever mutated by GameEngine methods while holding
// mu — the "one serialized game loop" of the concurrency model is
// enforced here, not by the caller.
type Session struct {
	mu sync.Mutex

	ID            string
	NumPlayers    int
	IncludeHonors bool

	Wall    *tiles.Wall
	Players []*Player

	Phase       Phase
	CurrentTurn int

	LastDiscard     *tiles.Tile
	LastDiscarderID int
	DiscardHistory  []tiles.Tile

	WinnerID    *int
	WinningTile string
	EndReason   string
	gameOver    bool // guards EndGame idempotence

	// Response window state, non-nil only while a discard is awaiting
	// clockwise replies.
	responses map[int]*pendingResponse

	rng *rand.Rand
}

// NewSession creates a session in PhaseWaiting for numPlayers seats
// (2-4). includeHonors controls whether wind/dragon tiles are dealt.
func NewSession(numPlayers int, includeHonors bool, rng *rand.Rand) (*Session, error) {
	if numPlayers < 2 || numPlayers > 4 {
		return nil, fmt.Errorf("engine: player count must be 2-4, got %d", numPlayers)
	}
	return &Session{
		ID:            uuid.NewString(),
		NumPlayers:    numPlayers,
		IncludeHonors: includeHonors,
		Phase:         PhaseWaiting,
		rng:           rng,
	}, nil
}

// AddPlayer registers a new seat while the session is still waiting to
// fill. Player ids are monotonic and server-assigned, never client
// supplied.
func (s *Session) AddPlayer(id int, name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Phase != PhaseWaiting {
		return nil, fmt.Errorf("engine: session not accepting players (phase=%s)", s.Phase)
	}
	if len(s.Players) >= s.NumPlayers {
		return nil, fmt.Errorf("engine: session is full")
	}
	p := newPlayer(id, name)
	s.Players = append(s.Players, p)
	return p, nil
}

// RemovePlayer drops a seat while still waiting to fill (a disconnect
// before the game starts just frees the seat for a new connection; see
// EndGame for the in-play disconnect case).
func (s *Session) RemovePlayer(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Phase != PhaseWaiting {
		return
	}
	for i, p := range s.Players {
		if p.ID == id {
			s.Players = append(s.Players[:i], s.Players[i+1:]...)
			return
		}
	}
}

// Ready reports whether every seat is filled and the game can start.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Phase == PhaseWaiting && len(s.Players) == s.NumPlayers
}

func (s *Session) playerByID(id int) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) nextSeat(from int) int {
	return (from + 1) % s.NumPlayers
}
