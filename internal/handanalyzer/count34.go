// Package handanalyzer implements win detection, kong enumeration,
// wait-set computation, and declare-listen validation over a player's
// hand. It has no knowledge of turns or network messages; GameEngine
// calls into it with plain tile slices.
package handanalyzer

import "mahjongcore/internal/tiles"

// count34 is a fixed-size tally of a tile multiset across the 34-face
// universe, the same flat representation the teacher's Hand34 type
// uses for its recursive decomposition and shanten search.
type count34 [34]uint8

func newCount34(hand []tiles.Tile) count34 {
	var c count34
	for _, t := range hand {
		c[t.Index()]++
	}
	return c
}

func (c count34) total() int {
	n := 0
	for _, v := range c {
		n += int(v)
	}
	return n
}

// canFormMelds reports whether the remaining counts decompose exactly
// into `need` triplets/sequences, trying a triplet at the lowest
// nonzero face first and a sequence second — mirroring
// _can_form_melds_recursive in the original engine (triplet preferred
// over sequence when both are possible, which is immaterial to the
// yes/no win outcome since a full decomposition is still required).
func canFormMelds(c count34, need int) bool {
	if need == 0 {
		return c.total() == 0
	}
	idx := -1
	for i, v := range c {
		if v > 0 {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false
	}

	if c[idx] >= 3 {
		c[idx] -= 3
		if canFormMelds(c, need-1) {
			c[idx] += 3
			return true
		}
		c[idx] += 3
	}

	if isSequenceEligible(idx) && c[idx] >= 1 && c[idx+1] >= 1 && c[idx+2] >= 1 {
		c[idx]--
		c[idx+1]--
		c[idx+2]--
		if canFormMelds(c, need-1) {
			c[idx]++
			c[idx+1]++
			c[idx+2]++
			return true
		}
		c[idx]++
		c[idx+1]++
		c[idx+2]++
	}

	return false
}

// isSequenceEligible reports whether idx can start a same-suit run of
// three (i.e. is a numbered tile with value <= 7, not an honor and not
// crossing into the next suit).
func isSequenceEligible(idx int) bool {
	if idx >= 27 {
		return false
	}
	withinSuit := idx % 9
	return withinSuit <= 6
}
