package handanalyzer

import "mahjongcore/internal/tiles"

// KongCandidates lists the melds currently in hand, split by how they
// would be formed:
//
//   - Concealed: faces held four times in the concealed hand (an gang).
//   - Added: faces where the player already holds an exposed
//     MeldTriplet and the 4th copy is in the concealed hand (bu gang).
//   - Claimed: only populated when discarded is non-nil and the player
//     is not currently listening — a face held exactly three times in
//     the concealed hand matching the just-discarded tile (ming gang).
//
// This mirrors find_possible_gangs in the original engine exactly,
// including the restriction that a ming gang claim is unavailable to a
// listening player (declaring listen locks the hand's shape).
type KongCandidates struct {
	Concealed []tiles.Tile
	Added     []tiles.Tile
	Claimed   []tiles.Tile
}

func (k KongCandidates) Empty() bool {
	return len(k.Concealed) == 0 && len(k.Added) == 0 && len(k.Claimed) == 0
}

// FindPossibleKongs enumerates kong candidates for a player's
// concealed hand and existing exposed melds. discarded is the tile
// just discarded by another player when checking a claim opportunity,
// or nil when checking the acting player's own draw.
func FindPossibleKongs(concealed []tiles.Tile, melds []tiles.Meld, discarded *tiles.Tile, isListening bool) KongCandidates {
	c := newCount34(concealed)
	var out KongCandidates

	for i := 0; i < 34; i++ {
		if c[i] == 4 {
			out.Concealed = append(out.Concealed, tiles.FromIndex(i))
		}
	}

	for _, m := range melds {
		if m.Kind != tiles.MeldTriplet {
			continue
		}
		if c[m.Face.Index()] >= 1 {
			out.Added = append(out.Added, m.Face)
		}
	}

	if discarded != nil && !isListening {
		if c[discarded.Index()] == 3 {
			out.Claimed = append(out.Claimed, *discarded)
		}
	}

	return out
}

// CheckGangMaintainsListen simulates performing a kong (of the given
// kind and face) against a listening player's hand and reports whether
// the player's fixed wait set is exactly preserved afterward — the
// copy-on-write trial the original's _check_gang_maintains_listen
// performs before allowing a kong while listening.
func CheckGangMaintainsListen(
	concealed []tiles.Tile,
	melds []tiles.Meld,
	kind tiles.MeldKind,
	face tiles.Tile,
	fixedWaits []tiles.Tile,
	includeHonors bool,
) bool {
	trialConcealed, trialMelds := simulateKong(concealed, melds, kind, face)
	newWaits := WaitSet(trialConcealed, len(trialMelds), includeHonors)
	return SameWaitSet(newWaits, fixedWaits)
}

// simulateKong returns copies of concealed/melds with the given kong
// applied, never mutating the caller's slices (copy-on-write scratch,
// matching the deepcopy-then-mutate pattern in perform_gang).
func simulateKong(concealed []tiles.Tile, melds []tiles.Meld, kind tiles.MeldKind, face tiles.Tile) ([]tiles.Tile, []tiles.Meld) {
	newConcealed := append([]tiles.Tile(nil), concealed...)
	newMelds := append([]tiles.Meld(nil), melds...)

	switch kind {
	case tiles.MeldKongConcealed:
		newConcealed = removeAllCopies(newConcealed, face, 4)
		newMelds = append(newMelds, tiles.Meld{Kind: tiles.MeldKongConcealed, Face: face})
	case tiles.MeldKongAdded:
		for i, m := range newMelds {
			if m.Kind == tiles.MeldTriplet && m.Face.Equal(face) {
				newMelds[i] = tiles.Meld{Kind: tiles.MeldKongAdded, Face: face}
				break
			}
		}
		newConcealed = removeAllCopies(newConcealed, face, 1)
	}

	return newConcealed, newMelds
}

func removeAllCopies(hand []tiles.Tile, face tiles.Tile, n int) []tiles.Tile {
	out := make([]tiles.Tile, 0, len(hand))
	removed := 0
	for _, t := range hand {
		if removed < n && t.Equal(face) {
			removed++
			continue
		}
		out = append(out, t)
	}
	return out
}
