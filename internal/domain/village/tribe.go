package village

import "strings"

// Tribe identifies the playable tribe of an account. The tribe decides how
// many construction slots a village can work in parallel.
type Tribe int

const (
	TribeUnknown Tribe = iota
	Romans
	Teutons
	Gauls
	Huns
	Spartans
	Nors
	Egyptians
)

func (t Tribe) String() string {
	switch t {
	case Romans:
		return "romans"
	case Teutons:
		return "teutons"
	case Gauls:
		return "gauls"
	case Huns:
		return "huns"
	case Spartans:
		return "spartans"
	case Nors:
		return "nors"
	case Egyptians:
		return "egyptians"
	default:
		return "unknown"
	}
}

// ParseTribe maps a tribe name (as it appears in page class tokens) to a
// Tribe. Unrecognized names yield TribeUnknown.
func ParseTribe(name string) Tribe {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "romans", "roman":
		return Romans
	case "teutons", "teuton":
		return Teutons
	case "gauls", "gaul":
		return Gauls
	case "huns", "hun":
		return Huns
	case "spartans", "spartan":
		return Spartans
	case "nors", "norse":
		return Nors
	case "egyptians", "egyptian":
		return Egyptians
	default:
		return TribeUnknown
	}
}

// ParallelBuildingAllowed reports whether the tribe can run an inside and an
// outside construction job at the same time.
func (t Tribe) ParallelBuildingAllowed() bool {
	return t == Romans || t == Huns
}
