package jobs

import (
	"context"
	"sort"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
)

func (j *Job) executeAdventure(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)

	if err := env.Driver.Navigate(ctx, "/hero/adventures"); err != nil {
		return false
	}
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)

	// Bonus ads around the adventure are optional; failure to watch one
	// never fails the job.
	if env.Driver.IsVisible(ctx, selAdventureBonusVid) {
		watchVideo(ctx, env, selAdventureBonusVid, 0)
	}

	if !env.Driver.WaitForSelectorAndClick(ctx, selAdventureExplore, defaultWaitMs) {
		return false
	}
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)

	// The confirmation dialog varies across game versions; take the first
	// candidate that is actually visible.
	if !env.Driver.ClickFirst(ctx, adventureContinueSelectors) {
		return false
	}

	if env.Driver.IsVisible(ctx, selAdventureBonusVid) {
		watchVideo(ctx, env, selAdventureBonusVid, 0)
	}

	logger.Log(common.LevelInfo, "hero sent on adventure", map[string]interface{}{"job": j.ID})
	return true
}

// PlanAllocation decides how many points go to each attribute: absolute
// step targets are satisfied first, in declared attribute order; the
// remainder is greedy-balanced toward the configured ratio.
func PlanAllocation(p *AllocatePayload) map[hero.Attribute]int {
	plan := make(map[hero.Attribute]int, len(hero.AllAttributes))
	current := make(map[hero.Attribute]int, len(hero.AllAttributes))
	for _, attr := range hero.AllAttributes {
		current[attr] = p.Current[attr]
	}
	left := p.Points

	// Phase 1: absolute targets, sequentially.
	for _, attr := range hero.AllAttributes {
		target := p.Steps[attr]
		for left > 0 && current[attr] < target {
			plan[attr]++
			current[attr]++
			left--
		}
	}

	ratioSum := 0
	for _, attr := range hero.AllAttributes {
		ratioSum += p.Ratio[attr]
	}
	if ratioSum == 0 {
		return plan
	}

	// Phase 2: place each remaining point on the attribute with the
	// largest proportional deficit; ties resolve in declared order.
	for ; left > 0; left-- {
		total := 0
		for _, attr := range hero.AllAttributes {
			total += current[attr]
		}

		best := hero.AllAttributes[0]
		bestDeficit := deficit(p.Ratio[best], ratioSum, total, current[best])
		for _, attr := range hero.AllAttributes[1:] {
			if d := deficit(p.Ratio[attr], ratioSum, total, current[attr]); d > bestDeficit {
				best = attr
				bestDeficit = d
			}
		}
		plan[best]++
		current[best]++
	}
	return plan
}

func deficit(ratio, ratioSum, currentTotal, currentValue int) float64 {
	proportion := float64(ratio) / float64(ratioSum)
	return proportion*float64(currentTotal+1) - float64(currentValue)
}

func (j *Job) executeAllocate(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)
	p := j.Allocate

	plan := PlanAllocation(p)
	if len(plan) == 0 {
		return true
	}

	if err := env.Driver.Navigate(ctx, "/hero/attributes"); err != nil {
		return false
	}
	if !env.Driver.WaitForSelector(ctx, selHeroPlusButton, defaultWaitMs) {
		return false
	}

	attrs := make([]hero.Attribute, 0, len(plan))
	for attr := range plan {
		attrs = append(attrs, attr)
	}
	sort.Slice(attrs, func(i, k int) bool { return attrs[i] < attrs[k] })

	clicked := 0
	for _, attr := range attrs {
		for i := 0; i < plan[attr]; i++ {
			if env.Driver.ClickNth(ctx, selHeroPlusButton, int(attr)) {
				clicked++
			}
		}
	}
	if clicked == 0 {
		return false
	}

	if !env.Driver.Click(ctx, selHeroAttrsSave) {
		return false
	}
	logger.Log(common.LevelInfo, "hero attribute points allocated",
		map[string]interface{}{"job": j.ID, "points": clicked})
	return true
}
