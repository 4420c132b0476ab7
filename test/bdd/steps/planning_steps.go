package steps

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/travian-go/internal/application/jobs"
	"github.com/andrescamacho/travian-go/internal/application/planning"
	"github.com/andrescamacho/travian-go/internal/domain/construction"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

var planningNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type planningContext struct {
	village *village.Village
	hero    *hero.Info
	plan    []*jobs.Job
}

func (pc *planningContext) reset() {
	*pc = planningContext{}
}

func baseVillage() *village.Village {
	return &village.Village{
		ID:                1,
		Name:              "01",
		Tribe:             village.Gauls,
		WarehouseCapacity: 80000,
		GranaryCapacity:   80000,
		FreeCrop:          500,
		HourlyProduction:  resources.New(100, 100, 100, 100),
		Pits: []village.ResourcePit{
			{ID: 1, Kind: resources.Lumber, Level: 1},
			{ID: 5, Kind: resources.Clay, Level: 1},
			{ID: 7, Kind: resources.Iron, Level: 1},
			{ID: 9, Kind: resources.Crop, Level: 1},
		},
		Buildings: []village.Building{
			{ID: 20, Kind: village.Warehouse, Level: 1},
			{ID: 21, Kind: village.Granary, Level: 1},
		},
		Queue:  village.NewBuildingQueue(village.Gauls),
		Troops: map[string]int{},
	}
}

// Given steps

func (pc *planningContext) aVillageWithWarehouseCapacityAndLumberProduction(capacity, production int) error {
	v := baseVillage()
	v.WarehouseCapacity = capacity
	v.GranaryCapacity = 10000
	v.Resources = resources.New(500, 500, 500, 500)
	v.HourlyProduction = resources.New(production, 10, 10, 10)
	pc.village = v
	return nil
}

func (pc *planningContext) aResourceStarvedVillage() error {
	v := baseVillage()
	v.Resources = resources.Zero
	v.HourlyProduction = resources.New(5, 5, 5, 5)
	pc.village = v
	return nil
}

func (pc *planningContext) aResourceStarvedVillageWithoutClay() error {
	if err := pc.aResourceStarvedVillage(); err != nil {
		return err
	}
	pc.village.HourlyProduction = resources.New(5, 0, 5, 5)
	return nil
}

func (pc *planningContext) theHeroCarriesOfEachResource(amount int) error {
	pc.hero = &hero.Info{
		Health:    100,
		Inventory: resources.New(amount, amount, amount, amount),
	}
	return nil
}

func (pc *planningContext) aVillageWithThreeSettlersTrained() error {
	v := baseVillage()
	v.Resources = resources.New(1000, 1000, 1000, 1000)
	v.Troops = map[string]int{"Settlers": 3}
	pc.village = v
	return nil
}

// When steps

func (pc *planningContext) theBalancedStrategyPlansTheNextPass() error {
	if pc.village == nil {
		return fmt.Errorf("no village set up")
	}
	state := &game.State{
		Account: game.Account{
			ServerSpeed: 1,
			ProductionBoostActive: map[resources.Kind]bool{
				resources.Lumber: true, resources.Clay: true,
				resources.Iron: true, resources.Crop: true,
			},
		},
		Villages: []*village.Village{pc.village},
		Hero:     pc.hero,
	}
	strategy := planning.NewBalancedEconomicGrowth(construction.NewCalculator(), planning.Options{})
	pc.plan = strategy.Plan(context.Background(), state, planningNow)
	return nil
}

// Then steps

func (pc *planningContext) buildJobs() []*jobs.Job {
	var out []*jobs.Job
	for _, j := range pc.plan {
		if j.Kind == jobs.KindBuild || j.Kind == jobs.KindBuildNew {
			out = append(out, j)
		}
	}
	return out
}

func (pc *planningContext) aBuildJobForIsPlannedImmediately(name string) error {
	for _, j := range pc.buildJobs() {
		if j.Build != nil && j.Build.TargetName == name {
			if !j.ScheduledTime.Equal(planningNow) {
				return fmt.Errorf("%s job scheduled at %v, want now", name, j.ScheduledTime)
			}
			return nil
		}
	}
	return fmt.Errorf("no build job for %q in plan of %d jobs", name, len(pc.plan))
}

func (pc *planningContext) noBuildJobForIsPlanned(name string) error {
	for _, j := range pc.buildJobs() {
		if j.Build != nil && j.Build.TargetName == name {
			return fmt.Errorf("unexpected %s build job", name)
		}
	}
	return nil
}

func (pc *planningContext) theBuildJobIsScheduledHoursOut(hours int) error {
	builds := pc.buildJobs()
	if len(builds) != 1 {
		return fmt.Errorf("expected exactly one build job, got %d", len(builds))
	}
	want := planningNow.Add(time.Duration(hours) * time.Hour)
	if !builds[0].ScheduledTime.Equal(want) {
		return fmt.Errorf("scheduled at %v, want %v", builds[0].ScheduledTime, want)
	}
	return nil
}

func (pc *planningContext) aBuildJobIsPlannedImmediately() error {
	builds := pc.buildJobs()
	if len(builds) != 1 {
		return fmt.Errorf("expected exactly one build job, got %d", len(builds))
	}
	if !builds[0].ScheduledTime.Equal(planningNow) {
		return fmt.Errorf("scheduled at %v, want now", builds[0].ScheduledTime)
	}
	return nil
}

func (pc *planningContext) theBuildJobCarriesHeroSupport() error {
	builds := pc.buildJobs()
	if len(builds) != 1 {
		return fmt.Errorf("expected exactly one build job, got %d", len(builds))
	}
	if builds[0].Build == nil || builds[0].Build.Support.IsZero() {
		return fmt.Errorf("build job carries no hero support")
	}
	return nil
}

func (pc *planningContext) noBuildJobIsPlanned() error {
	if builds := pc.buildJobs(); len(builds) != 0 {
		return fmt.Errorf("expected no build jobs, got %d", len(builds))
	}
	return nil
}

func (pc *planningContext) theOnlyPlannedJobIsFoundingAVillage() error {
	var forVillage []*jobs.Job
	for _, j := range pc.plan {
		if j.VillageID == pc.village.ID {
			forVillage = append(forVillage, j)
		}
	}
	if len(forVillage) != 1 {
		return fmt.Errorf("expected exactly one job for the village, got %d", len(forVillage))
	}
	if forVillage[0].Kind != jobs.KindFoundVillage {
		return fmt.Errorf("expected a found-village job, got %s", forVillage[0].Kind)
	}
	return nil
}

// InitializePlanningScenarios registers the strategy planning steps.
func InitializePlanningScenarios(sc *godog.ScenarioContext) {
	pc := &planningContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		pc.reset()
		return ctx, nil
	})

	sc.Step(`^a village with warehouse capacity (\d+) and lumber production (\d+) per hour$`, pc.aVillageWithWarehouseCapacityAndLumberProduction)
	sc.Step(`^a resource-starved village producing 5 of each resource per hour$`, pc.aResourceStarvedVillage)
	sc.Step(`^a resource-starved village producing no clay at all$`, pc.aResourceStarvedVillageWithoutClay)
	sc.Step(`^the hero carries (\d+) of each resource$`, pc.theHeroCarriesOfEachResource)
	sc.Step(`^a village with three settlers trained$`, pc.aVillageWithThreeSettlersTrained)
	sc.Step(`^the balanced strategy plans the next pass$`, pc.theBalancedStrategyPlansTheNextPass)
	sc.Step(`^a build job for "([^"]*)" is planned immediately$`, pc.aBuildJobForIsPlannedImmediately)
	sc.Step(`^no build job for "([^"]*)" is planned$`, pc.noBuildJobForIsPlanned)
	sc.Step(`^the build job is scheduled (\d+) hours out$`, pc.theBuildJobIsScheduledHoursOut)
	sc.Step(`^a build job is planned immediately$`, pc.aBuildJobIsPlannedImmediately)
	sc.Step(`^the build job carries hero support$`, pc.theBuildJobCarriesHeroSupport)
	sc.Step(`^no build job is planned$`, pc.noBuildJobIsPlanned)
	sc.Step(`^the only planned job for that village is founding a new village$`, pc.theOnlyPlannedJobIsFoundingAVillage)
}
