package hero

import (
	"github.com/andrescamacho/travian-go/internal/domain/resources"
)

// ReservationStatus is the outcome of asking the hero inventory to cover a
// resource shortage.
type ReservationStatus int

const (
	Rejected ReservationStatus = iota
	Accepted
	PartiallyAccepted
)

func (s ReservationStatus) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case PartiallyAccepted:
		return "partially_accepted"
	default:
		return "rejected"
	}
}

// ReservationResponse carries the status and the resources the hero commits.
type ReservationResponse struct {
	Status   ReservationStatus
	Provided resources.Resources
}

// Attribute identifies one of the four hero attributes, in the order points
// are allocated.
type Attribute int

const (
	FightingStrength Attribute = iota
	OffBonus
	DefBonus
	ProductionPoints
)

// AllAttributes lists the attributes in declared (tie-break) order.
var AllAttributes = []Attribute{FightingStrength, OffBonus, DefBonus, ProductionPoints}

func (a Attribute) String() string {
	switch a {
	case FightingStrength:
		return "fighting_strength"
	case OffBonus:
		return "off_bonus"
	case DefBonus:
		return "def_bonus"
	default:
		return "production_points"
	}
}

// Info is the observed hero state for one planning pass. The inventory acts
// as a bounded transactional resource pool: reservations made during the
// pass accumulate in Reserved and never persist past the pass, because the
// next pass constructs a fresh Info.
type Info struct {
	Health          int
	Experience      int
	Adventures      int
	IsAvailable     bool
	PointsAvailable int

	Inventory resources.Resources
	Reserved  resources.Resources

	HasDailyQuestIndicator bool

	Attributes map[Attribute]int
}

// CanGoOnAdventure reports whether the hero is in the village, has an
// adventure available and enough health to survive one.
func (h *Info) CanGoOnAdventure() bool {
	return h.IsAvailable && h.Adventures > 0 && h.Health > 20
}

// Available returns the part of the inventory not yet reserved this pass.
func (h *Info) Available() resources.Resources {
	return h.Inventory.SubFloor(h.Reserved)
}

// SendRequest asks the hero pool to cover request. The pool answers in one
// of three ways:
//   - Accepted: the unreserved inventory dominates the request; the full
//     request is reserved and provided.
//   - Rejected: the request is zero, or shares no kind with what is left.
//   - PartiallyAccepted: whatever overlaps is reserved and provided.
//
// Reservations grow monotonically within a pass and never exceed the
// inventory component-wise.
func (h *Info) SendRequest(request resources.Resources) ReservationResponse {
	if request.IsZero() {
		return ReservationResponse{Status: Rejected}
	}

	available := h.Available()

	if available.Covers(request) {
		h.Reserved = h.Reserved.Add(request)
		return ReservationResponse{Status: Accepted, Provided: request}
	}

	if available.IsDisjoint(request) {
		return ReservationResponse{Status: Rejected}
	}

	provided := available.ProvideUpTo(request)
	h.Reserved = h.Reserved.Add(provided)
	return ReservationResponse{Status: PartiallyAccepted, Provided: provided}
}
