package engine

import "mahjongcore/internal/tiles"

// applyConcealedKong removes all four copies of face from p's hand and
// locks in a new concealed kong meld.
func applyConcealedKong(p *Player, face tiles.Tile) {
	p.Hand = removeCopies(p.Hand, face, 4)
	p.Melds = append(p.Melds, tiles.Meld{Kind: tiles.MeldKongConcealed, Face: face})
}

// applyAddedKong upgrades an existing exposed triplet of face into a
// kong using the matching tile from p's hand.
func applyAddedKong(p *Player, face tiles.Tile) {
	for i, m := range p.Melds {
		if m.Kind == tiles.MeldTriplet && m.Face.Equal(face) {
			p.Melds[i] = tiles.Meld{Kind: tiles.MeldKongAdded, Face: face}
			break
		}
	}
	p.Hand = removeCopies(p.Hand, face, 1)
}

// applyExposedKong claims a discarded tile together with the three
// matching tiles already in p's hand, forming a ming gang.
func applyExposedKong(p *Player, face tiles.Tile) {
	p.Hand = removeCopies(p.Hand, face, 3)
	p.Melds = append(p.Melds, tiles.Meld{Kind: tiles.MeldKongExposed, Face: face})
}

// applyPong claims a discarded tile together with two matching tiles
// already in p's hand, forming an exposed triplet.
func applyPong(p *Player, face tiles.Tile) {
	p.Hand = removeCopies(p.Hand, face, 2)
	p.Melds = append(p.Melds, tiles.Meld{Kind: tiles.MeldTriplet, Face: face})
}

func removeCopies(hand []tiles.Tile, face tiles.Tile, n int) []tiles.Tile {
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

func containsFace(faces []tiles.Tile, face tiles.Tile) bool {
	for _, f := range faces {
		if f.Equal(face) {
			return true
		}
	}
	return false
}
