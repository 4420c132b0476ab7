package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/travian-go/internal/domain/resources"
)

type resourceAlgebraContext struct {
	shortage resources.Resources
	rate     resources.Resources
	stock    resources.Resources
	unitCost resources.Resources
	hours    float64
	fits     int
}

func (rc *resourceAlgebraContext) reset() {
	*rc = resourceAlgebraContext{}
}

// Given steps

func (rc *resourceAlgebraContext) aShortageOf(lumber, clay, iron, crop int) error {
	rc.shortage = resources.New(lumber, clay, iron, crop)
	return nil
}

func (rc *resourceAlgebraContext) anHourlyProductionOf(lumber, clay, iron, crop int) error {
	rc.rate = resources.New(lumber, clay, iron, crop)
	return nil
}

func (rc *resourceAlgebraContext) aStockOf(lumber, clay, iron, crop int) error {
	rc.stock = resources.New(lumber, clay, iron, crop)
	return nil
}

func (rc *resourceAlgebraContext) aUnitCostOf(lumber, clay, iron, crop int) error {
	rc.unitCost = resources.New(lumber, clay, iron, crop)
	return nil
}

// When steps

func (rc *resourceAlgebraContext) iComputeTheHoursToCover() error {
	rc.hours = rc.shortage.HoursToCover(rc.rate)
	return nil
}

func (rc *resourceAlgebraContext) iComputeHowManyUnitsFit() error {
	rc.fits = rc.stock.Fits(rc.unitCost)
	return nil
}

// Then steps

func (rc *resourceAlgebraContext) theResultShouldBeHours(hours int) error {
	if rc.hours != float64(hours) {
		return fmt.Errorf("expected %d hours, got %v", hours, rc.hours)
	}
	return nil
}

func (rc *resourceAlgebraContext) theResultShouldBeInfinite() error {
	if !math.IsInf(rc.hours, 1) {
		return fmt.Errorf("expected +Inf, got %v", rc.hours)
	}
	return nil
}

func (rc *resourceAlgebraContext) exactlyUnitsFit(count int) error {
	if rc.fits != count {
		return fmt.Errorf("expected %d units, got %d", count, rc.fits)
	}
	return nil
}

// InitializeResourceAlgebraScenarios registers the resource algebra steps.
func InitializeResourceAlgebraScenarios(sc *godog.ScenarioContext) {
	rc := &resourceAlgebraContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		rc.reset()
		return ctx, nil
	})

	sc.Step(`^a shortage of (\d+) lumber, (\d+) clay, (\d+) iron and (\d+) crop$`, rc.aShortageOf)
	sc.Step(`^an hourly production of (\d+) lumber, (\d+) clay, (\d+) iron and (\d+) crop$`, rc.anHourlyProductionOf)
	sc.Step(`^a stock of (\d+) lumber, (\d+) clay, (\d+) iron and (\d+) crop$`, rc.aStockOf)
	sc.Step(`^a unit cost of (\d+) lumber, (\d+) clay, (\d+) iron and (\d+) crop$`, rc.aUnitCostOf)
	sc.Step(`^I compute the hours to cover the shortage$`, rc.iComputeTheHoursToCover)
	sc.Step(`^I compute how many units fit$`, rc.iComputeHowManyUnitsFit)
	sc.Step(`^the result should be (\d+) hours$`, rc.theResultShouldBeHours)
	sc.Step(`^the result should be infinite$`, rc.theResultShouldBeInfinite)
	sc.Step(`^exactly (\d+) units fit$`, rc.exactlyUnitsFit)
}
