package tiles

// MeldKind distinguishes the shapes a locked-in meld can take. Only
// triplets and the three kong variants exist in this rule set —
// sequences never appear as exposed melds, only inside a concealed
// standard-form decomposition at win time.
type MeldKind int

const (
	MeldTriplet       MeldKind = iota // pong: three exposed copies
	MeldKongConcealed                 // an gang: four copies drawn into a concealed hand
	MeldKongExposed                   // ming gang: claimed from another player's discard
	MeldKongAdded                     // bu gang: an existing exposed pong upgraded with the drawn 4th copy
)

// Meld is one locked-in group belonging to a player: an exposed
// triplet or one of the three kong variants. Once formed a meld is
// immutable except for a MeldTriplet, which an add-kong action may
// later upgrade to MeldKongAdded with its 4th tile (tracked by
// replacing the meld entirely, not mutating it in place).
type Meld struct {
	Kind MeldKind
	Face Tile
}

// TileCount reports how many physical tiles this meld occupies.
func (m Meld) TileCount() int {
	if m.Kind == MeldTriplet {
		return 3
	}
	return 4
}

// IsKong reports whether m is any of the three kong variants.
func (m Meld) IsKong() bool {
	return m.Kind != MeldTriplet
}
