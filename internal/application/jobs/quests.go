package jobs

import (
	"context"
	"strings"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/pkg/utils"
)

func (j *Job) executeDailyQuests(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)
	p := j.DailyQuests

	if err := env.Driver.Navigate(ctx, "/dorf1.php"); err != nil {
		return false
	}
	if !env.Driver.WaitForSelectorAndClick(ctx, selQuestmasterOpen, defaultWaitMs) {
		return false
	}
	if !env.Driver.WaitForSelector(ctx, selDailyQuestDialog, defaultWaitMs) {
		return false
	}

	raw, err := env.Driver.GetTextContent(ctx, selDailyQuestPoints)
	if err != nil {
		env.Driver.Click(ctx, selDialogClose)
		return false
	}
	achieved, err := utils.ParseGameInt(raw)
	if err != nil || achieved < p.Threshold {
		// Not enough points yet; just close the dialog. This still counts
		// as a successful dispatch, there is nothing to collect.
		env.Driver.Click(ctx, selDialogClose)
		logger.Log(common.LevelDebug, "daily quests below threshold",
			map[string]interface{}{"job": j.ID, "achieved": strings.TrimSpace(raw), "threshold": p.Threshold})
		return true
	}

	collected := env.Driver.ClickAll(ctx, selDailyQuestCollect)
	env.Driver.Click(ctx, selDialogClose)

	logger.Log(common.LevelInfo, "daily quest rewards collected",
		map[string]interface{}{"job": j.ID, "achieved": achieved, "rewards": collected})
	return true
}

func (j *Job) executeQuestmaster(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)

	if err := env.Driver.NavigateToVillage(ctx, j.VillageID); err != nil {
		return false
	}
	if !env.Driver.WaitForSelectorAndClick(ctx, selQuestmasterOpen, defaultWaitMs) {
		return false
	}
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)

	total := collectQuestPages(ctx, env)

	// The "General tasks" tab has its own pagination.
	if env.Driver.Click(ctx, selQuestmasterGeneral) {
		env.Driver.WaitForLoadState(ctx, defaultWaitMs)
		total += collectQuestPages(ctx, env)
	}

	env.Driver.Click(ctx, selDialogClose)
	logger.Log(common.LevelInfo, "questmaster rewards collected",
		map[string]interface{}{"job": j.ID, "village": j.VillageID, "rewards": total})
	return true
}

// collectQuestPages clicks every collect button on the current tab, paging
// forward until the forward button reports disabled.
func collectQuestPages(ctx context.Context, env Env) int {
	const maxPages = 20 // guard against markup changes breaking the disabled check

	total := 0
	for page := 0; page < maxPages; page++ {
		total += env.Driver.ClickAll(ctx, selQuestmasterCollect)

		classes, err := env.Driver.CatchFullClassesBySelector(ctx, selQuestmasterForward)
		if err != nil || strings.Contains(classes, "disabled") {
			break
		}
		if !env.Driver.Click(ctx, selQuestmasterForward) {
			break
		}
		env.Driver.WaitForLoadState(ctx, defaultWaitMs)
	}
	return total
}
