package handanalyzer

import "mahjongcore/internal/tiles"

// ValidateDeclareListen computes the wait set that results from a
// declare-listen attempt, i.e. after the player has just discarded
// down to a 3n+2-minus-one shape. A non-empty result means the
// declaration succeeds and these become the player's fixed waits; an
// empty result means it fails and the discard is accepted as an
// ordinary discard with the attempt cleared (the engine tells the
// player so with an info message), matching handle_player_action's
// "ting" discard branch.
func ValidateDeclareListen(concealed []tiles.Tile, exposedMelds int, includeHonors bool) []tiles.Tile {
	return WaitSet(concealed, exposedMelds, includeHonors)
}
