package engine

// Outbound is one message the session wants delivered. The engine
// never writes to a socket itself: GameEngine methods return a slice of
// these and internal/server performs the actual sends outside the
// session mutex, matching the concurrency model's "outbound writes
// happen outside the lock" rule.
type Outbound struct {
	Broadcast bool
	PlayerID  int // meaningful only when !Broadcast
	Message   any
}

func toAll(msg any) Outbound {
	return Outbound{Broadcast: true, Message: msg}
}

func toPlayer(id int, msg any) Outbound {
	return Outbound{PlayerID: id, Message: msg}
}
