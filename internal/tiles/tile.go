// Package tiles implements the canonical tile representation, sort
// order, and sorted-hand decomposition helpers used throughout the
// engine and hand analyzer.
package tiles

import "fmt"

// Suit identifies one of the five tile families.
type Suit int

const (
	SuitMan Suit = iota
	SuitSo
	SuitPin
	SuitWind
	SuitDragon
)

// Wind enumerates the four wind tiles in their canonical order.
type Wind int

const (
	WindEast Wind = iota
	WindSouth
	WindWest
	WindNorth
)

// Dragon enumerates the three dragon tiles in their canonical order.
type Dragon int

const (
	DragonRed Dragon = iota
	DragonGreen
	DragonWhite
)

// Tile is a single playing tile. Value is 1-9 for suited tiles and
// unused (zero) for honors, which instead populate Wind or Dragon.
type Tile struct {
	Suit   Suit
	Value  int
	Wind   Wind
	Dragon Dragon
}

// CopiesPerTile is the number of physical copies of each distinct tile
// in a set (four, regardless of honors inclusion).
const CopiesPerTile = 4

// sortKey returns (suitOrder, withinSuitOrder) matching the canonical
// ordering m, s, p, wind, dragon, then ascending value/wind/dragon.
func (t Tile) sortKey() (int, int) {
	switch t.Suit {
	case SuitMan:
		return 0, t.Value
	case SuitSo:
		return 1, t.Value
	case SuitPin:
		return 2, t.Value
	case SuitWind:
		return 3, int(t.Wind)
	case SuitDragon:
		return 4, int(t.Dragon)
	default:
		return 5, 0
	}
}

// Less reports whether t sorts before o under the canonical order.
func (t Tile) Less(o Tile) bool {
	sa, va := t.sortKey()
	sb, vb := o.sortKey()
	if sa != sb {
		return sa < sb
	}
	return va < vb
}

// Equal reports whether t and o denote the same tile face (ignoring
// that physically distinct copies are otherwise interchangeable).
func (t Tile) Equal(o Tile) bool {
	return t.Suit == o.Suit && t.Value == o.Value && t.Wind == o.Wind && t.Dragon == o.Dragon
}

var suitNames = map[Suit]string{SuitMan: "m", SuitSo: "s", SuitPin: "p"}
var windNames = map[Wind]string{WindEast: "E", WindSouth: "S", WindWest: "W", WindNorth: "N"}
var dragonNames = map[Dragon]string{DragonRed: "red", DragonGreen: "green", DragonWhite: "white"}

// String renders a tile in the wire encoding (e.g. "m_1", "wind_E",
// "dragon_red"), matching spec §6's tile string format.
func (t Tile) String() string {
	switch t.Suit {
	case SuitMan, SuitSo, SuitPin:
		return fmt.Sprintf("%s_%d", suitNames[t.Suit], t.Value)
	case SuitWind:
		return fmt.Sprintf("wind_%s", windNames[t.Wind])
	case SuitDragon:
		return fmt.Sprintf("dragon_%s", dragonNames[t.Dragon])
	default:
		return "invalid"
	}
}

// Parse decodes a wire tile string back into a Tile.
func Parse(s string) (Tile, error) {
	var suitPart, valuePart string
	for i, r := range s {
		if r == '_' {
			suitPart, valuePart = s[:i], s[i+1:]
			break
		}
	}
	if suitPart == "" {
		return Tile{}, fmt.Errorf("tiles: malformed tile string %q", s)
	}
	switch suitPart {
	case "m", "s", "p":
		var v int
		if _, err := fmt.Sscanf(valuePart, "%d", &v); err != nil || v < 1 || v > 9 {
			return Tile{}, fmt.Errorf("tiles: invalid numbered tile %q", s)
		}
		suit := map[string]Suit{"m": SuitMan, "s": SuitSo, "p": SuitPin}[suitPart]
		return Tile{Suit: suit, Value: v}, nil
	case "wind":
		for w, name := range windNames {
			if name == valuePart {
				return Tile{Suit: SuitWind, Wind: w}, nil
			}
		}
		return Tile{}, fmt.Errorf("tiles: invalid wind tile %q", s)
	case "dragon":
		for d, name := range dragonNames {
			if name == valuePart {
				return Tile{Suit: SuitDragon, Dragon: d}, nil
			}
		}
		return Tile{}, fmt.Errorf("tiles: invalid dragon tile %q", s)
	default:
		return Tile{}, fmt.Errorf("tiles: unknown suit in %q", s)
	}
}

// Universe returns every distinct tile face in canonical order.
// includeHonors controls whether wind/dragon tiles are included.
func Universe(includeHonors bool) []Tile {
	out := make([]Tile, 0, 34)
	for _, s := range []Suit{SuitMan, SuitSo, SuitPin} {
		for v := 1; v <= 9; v++ {
			out = append(out, Tile{Suit: s, Value: v})
		}
	}
	if includeHonors {
		for w := WindEast; w <= WindNorth; w++ {
			out = append(out, Tile{Suit: SuitWind, Wind: w})
		}
		for d := DragonRed; d <= DragonWhite; d++ {
			out = append(out, Tile{Suit: SuitDragon, Dragon: d})
		}
	}
	return out
}

// Index maps a tile face to its position in the 34-element universe
// (0-8 man, 9-17 so, 18-26 pin, 27-30 winds, 31-33 dragons), the same
// flat indexing the teacher's Hand34 counting array uses.
func (t Tile) Index() int {
	switch t.Suit {
	case SuitMan:
		return t.Value - 1
	case SuitSo:
		return 9 + t.Value - 1
	case SuitPin:
		return 18 + t.Value - 1
	case SuitWind:
		return 27 + int(t.Wind)
	case SuitDragon:
		return 31 + int(t.Dragon)
	default:
		return -1
	}
}

// FromIndex is the inverse of Index.
func FromIndex(i int) Tile {
	switch {
	case i < 9:
		return Tile{Suit: SuitMan, Value: i + 1}
	case i < 18:
		return Tile{Suit: SuitSo, Value: i - 9 + 1}
	case i < 27:
		return Tile{Suit: SuitPin, Value: i - 18 + 1}
	case i < 31:
		return Tile{Suit: SuitWind, Wind: Wind(i - 27)}
	default:
		return Tile{Suit: SuitDragon, Dragon: Dragon(i - 31)}
	}
}

// Sort sorts hand in place under the canonical order.
func Sort(hand []Tile) {
	for i := 1; i < len(hand); i++ {
		for j := i; j > 0 && hand[j].Less(hand[j-1]); j-- {
			hand[j], hand[j-1] = hand[j-1], hand[j]
		}
	}
}

// Sorted returns a sorted copy of hand, leaving hand untouched.
func Sorted(hand []Tile) []Tile {
	out := append([]Tile(nil), hand...)
	Sort(out)
	return out
}

// IsTriplet reports whether tiles is exactly three copies of one face.
func IsTriplet(tiles []Tile) bool {
	return sameFaceCount(tiles) == 3
}

// IsQuad reports whether tiles is exactly four copies of one face.
func IsQuad(tiles []Tile) bool {
	return sameFaceCount(tiles) == 4
}

// IsPair reports whether tiles is exactly two copies of one face.
func IsPair(tiles []Tile) bool {
	return sameFaceCount(tiles) == 2
}

func sameFaceCount(tiles []Tile) int {
	if len(tiles) == 0 {
		return 0
	}
	for _, t := range tiles[1:] {
		if !t.Equal(tiles[0]) {
			return 0
		}
	}
	return len(tiles)
}
