package tiles

import (
	"errors"
	"math/rand"
)

// ErrEmptyWall is returned by Wall.DrawFront/DrawBack when no tiles remain.
var ErrEmptyWall = errors.New("tiles: wall is empty")

// Wall is the shuffled stack of undealt tiles, drawable from either
// end: DrawFront for ordinary turn draws, DrawBack for kong-replacement
// draws, mirroring the original Deck.draw_tile/draw_from_end split.
type Wall struct {
	remaining []Tile
}

// NewWall builds and shuffles a fresh wall for the given rng and tile
// set. includeHonors controls whether wind/dragon tiles are added.
func NewWall(rng *rand.Rand, includeHonors bool) *Wall {
	var all []Tile
	for _, face := range Universe(includeHonors) {
		for i := 0; i < CopiesPerTile; i++ {
			all = append(all, face)
		}
	}
	rng.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	return &Wall{remaining: all}
}

// NewWallFromTiles builds a wall with an explicit, unshuffled tile
// order — used by tests that need a deterministic draw sequence.
func NewWallFromTiles(ordered []Tile) *Wall {
	return &Wall{remaining: append([]Tile(nil), ordered...)}
}

// DrawFront removes and returns the tile from the front (head) of the
// wall, used for ordinary turn draws.
func (w *Wall) DrawFront() (Tile, error) {
	if len(w.remaining) == 0 {
		return Tile{}, ErrEmptyWall
	}
	t := w.remaining[0]
	w.remaining = w.remaining[1:]
	return t, nil
}

// DrawBack removes and returns the tile from the back (tail) of the
// wall, used for kong-replacement draws.
func (w *Wall) DrawBack() (Tile, error) {
	if len(w.remaining) == 0 {
		return Tile{}, ErrEmptyWall
	}
	last := len(w.remaining) - 1
	t := w.remaining[last]
	w.remaining = w.remaining[:last]
	return t, nil
}

// Remaining returns the number of tiles left undrawn.
func (w *Wall) Remaining() int {
	return len(w.remaining)
}
