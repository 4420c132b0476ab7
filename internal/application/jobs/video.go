package jobs

import (
	"context"

	"github.com/andrescamacho/travian-go/internal/application/common"
)

// defaultWaitMs is the selector wait used by job subroutines.
const defaultWaitMs = 3000

// watchVideo runs the shared "watch a commercial" subroutine: click the
// video button, confirm the dialog, wait for the player, and poll the
// remaining-time counter. When budgetSeconds > 0 and the remaining ad time
// would exceed it, the ad is cancelled and false is returned so the caller
// can fall back to its normal path. budgetSeconds <= 0 means "watch to the
// end".
//
// A missing or unparseable counter is treated as "ad unavailable" and also
// returns false.
func watchVideo(ctx context.Context, env Env, videoButtonSelector string, budgetSeconds int) bool {
	logger := common.LoggerFromContext(ctx)

	if !env.Driver.Click(ctx, videoButtonSelector) {
		return false
	}
	env.Driver.Click(ctx, selVideoConfirm)

	if !env.Driver.WaitForSelector(ctx, selVideoArea, defaultWaitMs) {
		return false
	}

	iframeHTML, err := env.Driver.GetPageSource(ctx, selVideoIframe)
	if err != nil {
		env.Driver.Click(ctx, selVideoCancel)
		return false
	}

	remaining, err := env.Scanner.ScanAdvertiseRemainingTime(iframeHTML)
	if err != nil || remaining <= 0 {
		// No usable countdown: treat the ad as unavailable.
		env.Driver.Click(ctx, selVideoCancel)
		return false
	}

	if budgetSeconds > 0 && remaining > budgetSeconds {
		logger.Log(common.LevelDebug, "ad longer than budget, cancelling",
			map[string]interface{}{"remaining": remaining, "budget": budgetSeconds})
		env.Driver.Click(ctx, selVideoCancel)
		return false
	}

	// Sit the ad out, then give the page a moment to settle.
	env.Driver.Sleep(float64(remaining) + 1)
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)
	return true
}
