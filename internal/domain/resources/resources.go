package resources

import (
	"fmt"
	"math"
)

// Resources is an immutable 4-tuple of resource amounts.
// All operations return a new value; none mutate the receiver.
type Resources struct {
	Lumber int
	Clay   int
	Iron   int
	Crop   int
}

// Zero is the empty resource tuple.
var Zero = Resources{}

// New creates a resource tuple from the four components in canonical order.
func New(lumber, clay, iron, crop int) Resources {
	return Resources{Lumber: lumber, Clay: clay, Iron: iron, Crop: crop}
}

// Of creates a resource tuple with a single non-zero component.
func Of(kind Kind, amount int) Resources {
	var r Resources
	return r.WithKind(kind, amount)
}

// Get returns the component for the given kind.
func (r Resources) Get(kind Kind) int {
	switch kind {
	case Lumber:
		return r.Lumber
	case Clay:
		return r.Clay
	case Iron:
		return r.Iron
	case Crop:
		return r.Crop
	default:
		return 0
	}
}

// WithKind returns a copy with the given component replaced.
func (r Resources) WithKind(kind Kind, amount int) Resources {
	switch kind {
	case Lumber:
		r.Lumber = amount
	case Clay:
		r.Clay = amount
	case Iron:
		r.Iron = amount
	case Crop:
		r.Crop = amount
	}
	return r
}

// Add returns the component-wise sum.
func (r Resources) Add(other Resources) Resources {
	return Resources{
		Lumber: r.Lumber + other.Lumber,
		Clay:   r.Clay + other.Clay,
		Iron:   r.Iron + other.Iron,
		Crop:   r.Crop + other.Crop,
	}
}

// Sub returns the signed component-wise difference.
func (r Resources) Sub(other Resources) Resources {
	return Resources{
		Lumber: r.Lumber - other.Lumber,
		Clay:   r.Clay - other.Clay,
		Iron:   r.Iron - other.Iron,
		Crop:   r.Crop - other.Crop,
	}
}

// SubFloor returns the component-wise difference floored at zero.
// Used to express "what is still missing" shortages.
func (r Resources) SubFloor(other Resources) Resources {
	return Resources{
		Lumber: max(0, r.Lumber-other.Lumber),
		Clay:   max(0, r.Clay-other.Clay),
		Iron:   max(0, r.Iron-other.Iron),
		Crop:   max(0, r.Crop-other.Crop),
	}
}

// Mul returns the tuple scaled by an integer factor.
func (r Resources) Mul(k int) Resources {
	return Resources{
		Lumber: r.Lumber * k,
		Clay:   r.Clay * k,
		Iron:   r.Iron * k,
		Crop:   r.Crop * k,
	}
}

// HoursToCover divides each component of r by the matching component of
// rate, returning the largest quotient: the number of hours of production
// needed to cover r. Kinds with a zero component in r are skipped. A kind
// that is required but has zero rate yields +Inf; callers must check and
// cap (the algebra does not define a ceiling).
func (r Resources) HoursToCover(rate Resources) float64 {
	hours := 0.0
	for _, kind := range AllKinds {
		need := r.Get(kind)
		if need <= 0 {
			continue
		}
		prod := rate.Get(kind)
		if prod <= 0 {
			return math.Inf(1)
		}
		if h := float64(need) / float64(prod); h > hours {
			hours = h
		}
	}
	return hours
}

// Min returns the smallest component.
func (r Resources) Min() int {
	return min(min(r.Lumber, r.Clay), min(r.Iron, r.Crop))
}

// Max returns the largest component.
func (r Resources) Max() int {
	return max(max(r.Lumber, r.Clay), max(r.Iron, r.Crop))
}

// MinKind returns the kind with the smallest component. Ties resolve to the
// earliest kind in canonical order, which keeps the planner deterministic.
func (r Resources) MinKind() Kind {
	best := Lumber
	for _, kind := range AllKinds[1:] {
		if r.Get(kind) < r.Get(best) {
			best = kind
		}
	}
	return best
}

// Fits returns how many whole kits of need fit inside r: the minimum over
// required kinds of floor(have/need). If need is zero everywhere the answer
// is unbounded and Fits returns math.MaxInt; callers never pass zero cost.
func (r Resources) Fits(need Resources) int {
	count := math.MaxInt
	for _, kind := range AllKinds {
		n := need.Get(kind)
		if n <= 0 {
			continue
		}
		if c := r.Get(kind) / n; c < count {
			count = c
		}
	}
	return count
}

// Covers reports whether r dominates other component-wise (r >= other).
func (r Resources) Covers(other Resources) bool {
	return r.Lumber >= other.Lumber &&
		r.Clay >= other.Clay &&
		r.Iron >= other.Iron &&
		r.Crop >= other.Crop
}

// IsDisjoint reports whether no kind is positive in both r and other.
func (r Resources) IsDisjoint(other Resources) bool {
	for _, kind := range AllKinds {
		if r.Get(kind) > 0 && other.Get(kind) > 0 {
			return false
		}
	}
	return true
}

// ProvideUpTo returns the component-wise minimum of r and request: the part
// of request that r can actually supply.
func (r Resources) ProvideUpTo(request Resources) Resources {
	return Resources{
		Lumber: min(r.Lumber, request.Lumber),
		Clay:   min(r.Clay, request.Clay),
		Iron:   min(r.Iron, request.Iron),
		Crop:   min(r.Crop, request.Crop),
	}
}

// Cap returns r with every component limited to ceiling.
func (r Resources) Cap(ceiling int) Resources {
	return Resources{
		Lumber: min(r.Lumber, ceiling),
		Clay:   min(r.Clay, ceiling),
		Iron:   min(r.Iron, ceiling),
		Crop:   min(r.Crop, ceiling),
	}
}

// Total returns the sum of all four components.
func (r Resources) Total() int {
	return r.Lumber + r.Clay + r.Iron + r.Crop
}

// IsZero reports whether every component is zero.
func (r Resources) IsZero() bool {
	return r == Zero
}

func (r Resources) String() string {
	return fmt.Sprintf("(%d|%d|%d|%d)", r.Lumber, r.Clay, r.Iron, r.Crop)
}
