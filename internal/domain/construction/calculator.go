package construction

import (
	"math"

	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
	"github.com/andrescamacho/travian-go/pkg/utils"
)

// wonderComponentCap limits each Wonder-of-the-World cost component.
const wonderComponentCap = 1_000_000

// Cost is the full price of raising a building to a target level.
type Cost struct {
	Resources resources.Resources
	TotalSum  int
	Seconds   int
	Formatted string
}

// Calculator computes building costs and durations. It is pure: the same
// inputs always produce bit-identical outputs.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Cost returns the price of bringing a building of the given kind to
// targetLevel, in a village whose main building is at mainBuildingLevel, on
// a server running at serverSpeed.
func (c *Calculator) Cost(kind village.BuildingKind, targetLevel, mainBuildingLevel int, serverSpeed float64) Cost {
	if targetLevel <= 0 {
		return Cost{Formatted: utils.FormatHMS(0)}
	}

	spec, ok := costSpecs[kind]
	if !ok {
		return Cost{Formatted: utils.FormatHMS(0)}
	}

	res := c.resourceCost(spec, targetLevel)
	if kind == village.WonderOfTheWorld {
		res = res.Cap(wonderComponentCap)
	}

	seconds := c.buildSeconds(kind, spec.time, targetLevel, mainBuildingLevel, serverSpeed)

	return Cost{
		Resources: res,
		TotalSum:  res.Total(),
		Seconds:   seconds,
		Formatted: utils.FormatHMS(seconds),
	}
}

func (c *Calculator) resourceCost(spec costSpec, level int) resources.Resources {
	scale := math.Pow(spec.growth, float64(level-1))
	out := resources.Zero
	for _, kind := range resources.AllKinds {
		base := spec.base.Get(kind)
		if base == 0 {
			continue
		}
		out = out.WithKind(kind, roundToNearest5(float64(base)*scale))
	}
	return out
}

func (c *Calculator) buildSeconds(kind village.BuildingKind, ts timeSpec, level, mbLevel int, serverSpeed float64) int {
	base := baseSeconds(ts, level)

	// The main building shortens everything else; when it upgrades itself
	// the level it is leaving is the reference.
	ref := mbLevel
	if kind == village.MainBuilding {
		ref = mbLevel - 1
	}

	if serverSpeed <= 0 {
		serverSpeed = 1
	}

	seconds := float64(base) * mainBuildingTimeFactor(ref) / serverSpeed
	if seconds < 0 {
		return 0
	}
	return int(seconds)
}

func baseSeconds(ts timeSpec, level int) int {
	switch ts.form {
	case timeExponential:
		s := ts.base*math.Pow(ts.factor, float64(level-1)) - float64(ts.offset)
		if s < 0 {
			return 0
		}
		return int(s)
	case timeTable:
		return tableAt(ts.table, level-1)
	case timeTableOffset:
		return tableAt(ts.table, level-1+ts.offset)
	default:
		return 0
	}
}

func tableAt(table []int, idx int) int {
	if len(table) == 0 {
		return 0
	}
	if idx < 0 {
		idx = 0
	}
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}

// mainBuildingTimeFactor is a smooth decreasing sequence: 1.0 at level 1,
// shrinking ~3.6% per level. A missing main building (level 0) slows
// construction down fivefold.
func mainBuildingTimeFactor(level int) float64 {
	if level <= 0 {
		return 5.0
	}
	return math.Pow(0.964, float64(level-1))
}

func roundToNearest5(x float64) int {
	return int(math.Round(x/5.0)) * 5
}
