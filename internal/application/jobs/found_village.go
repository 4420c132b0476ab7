package jobs

import (
	"context"
	"fmt"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
)

// ValleyFinder locates an abandoned valley to settle. A real
// implementation would search the map around the origin village; the
// default returns a fixed known-empty coordinate.
type ValleyFinder interface {
	FindAbandonedValley(ctx context.Context, driver ports.Driver) (x, y int, err error)
}

// FixedValleyFinder always settles the same coordinate.
type FixedValleyFinder struct {
	X int
	Y int
}

func NewFixedValleyFinder() *FixedValleyFinder {
	return &FixedValleyFinder{X: -16, Y: -136}
}

func (f *FixedValleyFinder) FindAbandonedValley(ctx context.Context, _ ports.Driver) (int, int, error) {
	return f.X, f.Y, nil
}

func (j *Job) executeFoundVillage(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)

	if err := env.Driver.NavigateToVillage(ctx, j.VillageID); err != nil {
		return false
	}
	if err := env.Driver.Navigate(ctx, "/karte.php"); err != nil {
		return false
	}
	env.Driver.WaitForLoadState(ctx, defaultWaitMs)

	finder := env.Valleys
	if finder == nil {
		finder = NewFixedValleyFinder()
	}
	x, y, err := finder.FindAbandonedValley(ctx, env.Driver)
	if err != nil {
		logger.Log(common.LevelWarn, "no abandoned valley found",
			map[string]interface{}{"job": j.ID, "village": j.VillageID})
		return false
	}

	if err := env.Driver.Navigate(ctx, fmt.Sprintf("/karte.php?x=%d&y=%d", x, y)); err != nil {
		return false
	}
	if !env.Driver.WaitForSelector(ctx, selFoundVillageSubmit, defaultWaitMs) {
		return false
	}

	// Settling as Gauls (option value 3).
	if err := env.Driver.SelectOption(ctx, selTribeSelect, "3"); err != nil {
		return false
	}
	if !env.Driver.Click(ctx, selFoundVillageSubmit) {
		return false
	}

	logger.Log(common.LevelInfo, "settlers dispatched to found a village",
		map[string]interface{}{"job": j.ID, "origin": j.VillageID, "x": x, "y": y})
	return true
}
