package village

import (
	"time"

	"github.com/andrescamacho/travian-go/internal/domain/resources"
)

// ResourcePit is one of the (typically 18) fields outside the village.
type ResourcePit struct {
	ID    int
	Kind  resources.Kind
	Level int
}

// Building is one structure on a center slot.
type Building struct {
	ID    int
	Kind  BuildingKind
	Level int
}

// Identity is the minimal identifying record of a village as listed on the
// overview page sidebar.
type Identity struct {
	ID   int
	Name string
	X    int
	Y    int
}

// Village is the full observed state of one settlement for the duration of a
// single planning pass.
type Village struct {
	ID    int
	Name  string
	X     int
	Y     int
	Tribe Tribe

	Resources resources.Resources
	FreeCrop  int

	WarehouseCapacity int
	GranaryCapacity   int

	HourlyProduction resources.Resources
	FreeCropHourly   int

	Pits      []ResourcePit
	Buildings []Building

	Queue *BuildingQueue

	IsUpgradedToCity     bool
	IsPermanentCapital   bool
	HasQuestMasterReward bool
	IsUnderAttack        bool
	IncomingAttackCount  int
	NextAttackSeconds    int

	Troops        map[string]int
	LastTrainTime *time.Time
}

// MaxPitLevel is the pit level ceiling this village allows: 20 for a
// permanent capital, 12 for a city, 10 otherwise.
func (v *Village) MaxPitLevel() int {
	switch {
	case v.IsPermanentCapital:
		return 20
	case v.IsUpgradedToCity:
		return 12
	default:
		return 10
	}
}

// PitUpgradable reports whether the pit can gain a level in this village.
func (v *Village) PitUpgradable(pit ResourcePit) bool {
	limit := min(v.MaxPitLevel(), BuildingKind(pit.Kind).MaxLevel())
	return pit.Level < limit
}

// UpgradablePits returns the pits that can still gain a level, in slot id
// order, optionally filtered by resource kind (kind == 0 means all kinds).
func (v *Village) UpgradablePits(kind resources.Kind) []ResourcePit {
	var out []ResourcePit
	for _, pit := range v.Pits {
		if kind != 0 && pit.Kind != kind {
			continue
		}
		if v.PitUpgradable(pit) {
			out = append(out, pit)
		}
	}
	return out
}

// FindBuilding returns the first building of the given kind, in slot id
// order, and whether one exists.
func (v *Village) FindBuilding(kind BuildingKind) (Building, bool) {
	for _, b := range v.Buildings {
		if b.Kind == kind {
			return b, true
		}
	}
	return Building{}, false
}

// FreeCenterSlot returns the lowest center slot id holding no building, and
// whether one exists. Center slot ids start where the 18 pit slots end.
func (v *Village) FreeCenterSlot() (int, bool) {
	const firstCenterSlot = 19
	const lastCenterSlot = 38
	used := make(map[int]bool, len(v.Buildings))
	for _, b := range v.Buildings {
		used[b.ID] = true
	}
	for id := firstCenterSlot; id <= lastCenterSlot; id++ {
		if !used[id] {
			return id, true
		}
	}
	return 0, false
}

// TroopCount returns how many units of the named troop the village holds.
func (v *Village) TroopCount(name string) int {
	return v.Troops[name]
}

// HoursUntilWarehouseFull projects how long the fullest of the three
// warehouse-stored kinds takes to reach capacity at current production.
// Returns a negative value when already over capacity and +Inf-like large
// values are avoided by callers checking production first.
func (v *Village) HoursUntilWarehouseFull() float64 {
	best := -1.0
	for _, kind := range []resources.Kind{resources.Lumber, resources.Clay, resources.Iron} {
		rate := v.HourlyProduction.Get(kind)
		if rate <= 0 {
			continue
		}
		h := float64(v.WarehouseCapacity-v.Resources.Get(kind)) / float64(rate)
		if best < 0 || h < best {
			best = h
		}
	}
	return best
}

// HoursUntilGranaryFull projects how long the crop stock takes to reach
// granary capacity at current production. Negative result means crop
// production is not positive.
func (v *Village) HoursUntilGranaryFull() float64 {
	rate := v.HourlyProduction.Crop
	if rate <= 0 {
		return -1
	}
	return float64(v.GranaryCapacity-v.Resources.Crop) / float64(rate)
}
