package resources

import "fmt"

// Kind identifies one of the four raw resources.
// The integer values match the in-game resource ids and also define the
// canonical ordering used by every deterministic tie-break in the planner.
type Kind int

const (
	Lumber Kind = 1
	Clay   Kind = 2
	Iron   Kind = 3
	Crop   Kind = 4
)

// AllKinds lists every kind in canonical order (Lumber < Clay < Iron < Crop).
var AllKinds = []Kind{Lumber, Clay, Iron, Crop}

func (k Kind) String() string {
	switch k {
	case Lumber:
		return "lumber"
	case Clay:
		return "clay"
	case Iron:
		return "iron"
	case Crop:
		return "crop"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// IsValid reports whether k is one of the four known kinds.
func (k Kind) IsValid() bool {
	return k >= Lumber && k <= Crop
}
