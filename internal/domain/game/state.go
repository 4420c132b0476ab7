package game

import (
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// Account holds server-wide and player-wide values observed on dorf1.
type Account struct {
	ServerSpeed                      float64
	WhenBeginnersProtectionExpires   int
	CulturePoints                    int
	VillageSlots                     int
	ProductionBoostActive            map[resources.Kind]bool
}

// AllProductionBoostsActive reports whether every per-resource ad boost is
// currently running.
func (a *Account) AllProductionBoostsActive() bool {
	for _, kind := range resources.AllKinds {
		if !a.ProductionBoostActive[kind] {
			return false
		}
	}
	return true
}

// State is the typed aggregate of one observation pass. It is a value owned
// by that pass: the next pass constructs a fresh one, so nothing here leaks
// between passes except building-queue freezes, which the observation layer
// carries over explicitly.
type State struct {
	Account  Account
	Villages []*village.Village
	Hero     *hero.Info
}

// VillageByID returns the village with the given id, or nil.
func (s *State) VillageByID(id int) *village.Village {
	for _, v := range s.Villages {
		if v.ID == id {
			return v
		}
	}
	return nil
}

// GlobalResources sums stocks across villages plus the hero inventory.
func (s *State) GlobalResources() resources.Resources {
	total := resources.Zero
	for _, v := range s.Villages {
		total = total.Add(v.Resources)
	}
	if s.Hero != nil {
		total = total.Add(s.Hero.Inventory)
	}
	return total
}

// GlobalLowestResourceIn projects every village forward by hours of
// production, adds the hero inventory, and returns the kind with the
// smallest projected total.
func (s *State) GlobalLowestResourceIn(hours int) resources.Kind {
	total := resources.Zero
	for _, v := range s.Villages {
		total = total.Add(v.Resources).Add(v.HourlyProduction.Mul(hours))
	}
	if s.Hero != nil {
		total = total.Add(s.Hero.Inventory)
	}
	return total.MinKind()
}
