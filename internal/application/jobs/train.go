package jobs

import (
	"context"

	"github.com/andrescamacho/travian-go/internal/application/common"
)

func (j *Job) executeTrain(ctx context.Context, env Env) bool {
	logger := common.LoggerFromContext(ctx)
	p := j.Train

	if err := env.Driver.TrainTroops(ctx, j.VillageID, p.MilitaryBuildingID, p.TroopTypeID, p.Quantity); err != nil {
		logger.Log(common.LevelWarn, "troop training failed",
			map[string]interface{}{"job": j.ID, "village": j.VillageID, "quantity": p.Quantity})
		return false
	}

	logger.Log(common.LevelInfo, "troops queued",
		map[string]interface{}{"job": j.ID, "village": j.VillageID, "troopType": p.TroopTypeID, "quantity": p.Quantity})
	return true
}
