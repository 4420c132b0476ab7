package planning

import (
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// infantryUnit describes the cheapest trainable foot soldier of a tribe.
type infantryUnit struct {
	Name        string
	TroopTypeID int
	Cost        resources.Resources
}

var baseInfantryByTribe = map[village.Tribe]infantryUnit{
	village.Romans:    {"Legionnaire", 1, resources.New(120, 100, 150, 30)},
	village.Teutons:   {"Clubswinger", 1, resources.New(95, 75, 40, 40)},
	village.Gauls:     {"Phalanx", 1, resources.New(100, 130, 55, 30)},
	village.Huns:      {"Mercenary", 1, resources.New(130, 80, 40, 40)},
	village.Egyptians: {"Slave Militia", 1, resources.New(45, 60, 30, 15)},
	village.Spartans:  {"Hoplite", 1, resources.New(110, 185, 110, 35)},
}

// baseInfantry returns the tribe's base infantry unit; unknown tribes train
// nothing.
func baseInfantry(tribe village.Tribe) (infantryUnit, bool) {
	unit, ok := baseInfantryByTribe[tribe]
	return unit, ok
}
