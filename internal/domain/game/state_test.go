package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

func TestGlobalResources_SumsVillagesAndHero(t *testing.T) {
	state := &game.State{
		Villages: []*village.Village{
			{ID: 1, Resources: resources.New(100, 200, 300, 400)},
			{ID: 2, Resources: resources.New(50, 50, 50, 50)},
		},
		Hero: &hero.Info{Inventory: resources.New(10, 0, 0, 0)},
	}

	assert.Equal(t, resources.New(160, 250, 350, 450), state.GlobalResources())
}

func TestGlobalLowestResourceIn_ProjectsProductionForward(t *testing.T) {
	// Iron starts lowest, but lumber produces nothing: after a day the
	// projected lumber total falls behind.
	state := &game.State{
		Villages: []*village.Village{
			{
				ID:               1,
				Resources:        resources.New(500, 500, 300, 500),
				HourlyProduction: resources.New(0, 100, 100, 100),
			},
		},
	}

	assert.Equal(t, resources.Iron, state.GlobalResources().MinKind())
	assert.Equal(t, resources.Lumber, state.GlobalLowestResourceIn(24))
}
