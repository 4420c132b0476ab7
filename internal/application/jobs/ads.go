package jobs

import (
	"context"

	"github.com/andrescamacho/travian-go/internal/application/common"
)

func (j *Job) executeProductionAds(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)

	if err := env.Driver.Navigate(ctx, "/dorf1.php"); err != nil {
		return false
	}
	if !env.Driver.WaitForSelectorAndClick(ctx, selProductionBoost, defaultWaitMs) {
		return false
	}
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)

	// One boost button per resource still waiting for its ad. Watch them one
	// by one until none is left or an ad refuses to play.
	const maxBoosts = 4
	watched := 0
	for i := 0; i < maxBoosts; i++ {
		if !env.Driver.IsVisible(ctx, selBoostVideoButton) {
			break
		}
		if !watchVideo(ctx, env, selBoostVideoButton, 0) {
			break
		}
		watched++
		env.Driver.WaitForLoadState(ctx, defaultWaitMs)
	}

	env.Driver.Click(ctx, selDialogClose)

	if watched == 0 {
		logger.Log(common.LevelDebug, "no production ads available",
			map[string]interface{}{"job": j.ID})
		return false
	}
	logger.Log(common.LevelInfo, "production boosts activated",
		map[string]interface{}{"job": j.ID, "boosts": watched})
	return true
}
