package handanalyzer

import "mahjongcore/internal/tiles"

// WaitSet returns every tile face that would complete concealed (held
// with exposedMelds melds already locked in) into a winning hand,
// found by probing the full tile universe and checking CanWin for
// each candidate — the same universe-iteration approach
// find_listening_tiles uses, bounded to at most 34 probes per call.
func WaitSet(concealed []tiles.Tile, exposedMelds int, includeHonors bool) []tiles.Tile {
	var waits []tiles.Tile
	candidate := append([]tiles.Tile(nil), concealed...)
	candidate = append(candidate, tiles.Tile{})
	for _, face := range tiles.Universe(includeHonors) {
		candidate[len(candidate)-1] = face
		if CanWin(candidate, exposedMelds) {
			waits = append(waits, face)
		}
	}
	return waits
}

// IsListening reports whether concealed (with exposedMelds melds
// locked in) has a non-empty wait set.
func IsListening(concealed []tiles.Tile, exposedMelds int, includeHonors bool) bool {
	return len(WaitSet(concealed, exposedMelds, includeHonors)) > 0
}

// SameWaitSet reports whether two wait sets contain exactly the same
// faces, ignoring order — used by the kong-while-listening restriction
// to compare a trial decomposition's waits against the player's fixed
// waits.
func SameWaitSet(a, b []tiles.Tile) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[tiles.Tile]int, len(a))
	for _, t := range a {
		seen[t]++
	}
	for _, t := range b {
		if seen[t] == 0 {
			return false
		}
		seen[t]--
	}
	return true
}
