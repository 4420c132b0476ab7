package jobs

import (
	"context"
	"fmt"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/pkg/utils"
)

func buildPath(villageID, slotID, gid int) string {
	return fmt.Sprintf("/build.php?newdid=%d&id=%d&gid=%d", villageID, slotID, gid)
}

func (j *Job) executeBuild(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)
	p := j.Build

	if err := env.Driver.Navigate(ctx, buildPath(j.VillageID, p.SlotID, p.BuildingGid)); err != nil {
		return false
	}

	// Hand over the hero's committed share first; the transfer leaves the
	// build page, so navigate back afterwards.
	if !p.Support.IsZero() {
		if err := env.Driver.TransferResourcesFromHero(ctx, p.Support); err != nil {
			logger.Log(common.LevelWarn, "hero resource transfer failed",
				map[string]interface{}{"job": j.ID, "support": p.Support.String()})
			return false
		}
		if err := env.Driver.Navigate(ctx, buildPath(j.VillageID, p.SlotID, p.BuildingGid)); err != nil {
			return false
		}
	}

	if !env.Driver.WaitForSelector(ctx, selContractBox, defaultWaitMs) {
		return false
	}

	// An ad can shave the difference between the normal and the
	// accelerated duration. Only worth it when the delta is positive and
	// the ad itself fits into it.
	if delta := j.accelerationDelta(ctx, env); delta > 0 && env.Driver.IsVisible(ctx, selVideoBuildButton) {
		if watchVideo(ctx, env, selVideoBuildButton, delta) {
			logger.Log(common.LevelInfo, "build dispatched via accelerated contract",
				map[string]interface{}{"job": j.ID, "target": p.TargetName, "level": p.TargetLevel})
			return true
		}
		// Ad cancelled or unavailable: fall through to the normal button.
	}

	if !env.Driver.Click(ctx, selBuildButton) {
		return false
	}
	logger.Log(common.LevelInfo, "build dispatched",
		map[string]interface{}{"job": j.ID, "target": p.TargetName, "level": p.TargetLevel})
	return true
}

// accelerationDelta reads the normal and accelerated contract durations and
// returns their difference in seconds, or 0 when either is unreadable.
func (j *Job) accelerationDelta(ctx context.Context, env Env) int {
	normalRaw, err := env.Driver.GetTextContent(ctx, selContractDuration)
	if err != nil {
		return 0
	}
	fastRaw, err := env.Driver.GetTextContent(ctx, selFastDuration)
	if err != nil {
		return 0
	}
	normal, err := utils.ParseHMS(normalRaw)
	if err != nil {
		return 0
	}
	fast, err := utils.ParseHMS(fastRaw)
	if err != nil {
		return 0
	}
	return normal - fast
}

func (j *Job) executeBuildNew(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)
	p := j.BuildNew

	if err := env.Driver.Navigate(ctx, buildPath(j.VillageID, p.SlotID, p.BuildingGid)); err != nil {
		return false
	}
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)

	// The gid-specific contract button is preferred; older markup only has
	// the generic one.
	gidButton := fmt.Sprintf("#contract_building%d button.new.build", p.BuildingGid)
	if !env.Driver.ClickFirst(ctx, []string{gidButton, selGenericContract}) {
		return false
	}

	logger.Log(common.LevelInfo, "new building placed",
		map[string]interface{}{"job": j.ID, "target": p.TargetName, "slot": p.SlotID})
	return true
}
