package engine

import (
	"fmt"

	"mahjongcore/internal/tiles"
)

func tileStrings(ts []tiles.Tile) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func meldStrings(melds []tiles.Meld) []string {
	out := make([]string, len(melds))
	for i, m := range melds {
		kind := "pong"
		switch m.Kind {
		case tiles.MeldKongConcealed:
			kind = "kong_concealed"
		case tiles.MeldKongExposed:
			kind = "kong_exposed"
		case tiles.MeldKongAdded:
			kind = "kong_added"
		}
		out[i] = fmt.Sprintf("%s:%s", kind, m.Face.String())
	}
	return out
}
