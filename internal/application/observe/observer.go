package observe

import (
	"context"
	"fmt"

	"github.com/andrescamacho/travian-go/internal/application/common"
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// Observer runs the observation pass: it drives the browser through the
// relevant game pages and assembles a fresh GameState from what the scanner
// parses. The observer is the only component that keeps anything between
// passes, and the only thing it keeps is building-queue freezes that have
// not elapsed yet.
type Observer struct {
	scanner ports.Scanner
	clock   shared.Clock

	prevQueues map[int]*village.BuildingQueue
}

func NewObserver(scanner ports.Scanner, clock shared.Clock) *Observer {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Observer{
		scanner:    scanner,
		clock:      clock,
		prevQueues: make(map[int]*village.BuildingQueue),
	}
}

// Observe captures the whole account state. A village whose pages fail to
// parse is skipped for this pass and logged at WARN; only a driver failure
// on the overview page aborts the pass.
func (o *Observer) Observe(ctx context.Context, driver ports.Driver) (*game.State, error) {
	logger := common.LoggerFromContext(ctx)
	now := o.clock.Now()

	dorf1HTML, err := driver.GetHTML(ctx, "dorf1")
	if err != nil {
		return nil, fmt.Errorf("capturing overview page: %w", err)
	}

	identities, err := o.scanner.ScanVillageList(dorf1HTML)
	if err != nil {
		return nil, fmt.Errorf("scanning village list: %w", err)
	}
	account, err := o.scanner.ScanAccountInfo(dorf1HTML)
	if err != nil {
		return nil, fmt.Errorf("scanning account info: %w", err)
	}

	state := &game.State{Account: account}
	seen := make(map[int]bool, len(identities))

	for _, identity := range identities {
		v, err := o.observeVillage(ctx, driver, identity)
		if err != nil {
			if shared.IsDriverFatal(err) {
				return nil, err
			}
			logger.Log(common.LevelWarn, "village skipped this pass",
				map[string]interface{}{"village": identity.ID, "name": identity.Name, "error": err.Error()})
			continue
		}

		v.Queue.CarryFreezesFrom(o.prevQueues[identity.ID], now)
		o.prevQueues[identity.ID] = v.Queue
		seen[identity.ID] = true
		state.Villages = append(state.Villages, v)
	}

	// Forget queues of villages that vanished from the overview.
	for id := range o.prevQueues {
		if !seen[id] {
			delete(o.prevQueues, id)
		}
	}

	heroInfo, err := o.observeHero(ctx, driver, dorf1HTML)
	if err != nil {
		if shared.IsDriverFatal(err) {
			return nil, err
		}
		logger.Log(common.LevelWarn, "hero pages unavailable this pass",
			map[string]interface{}{"error": err.Error()})
	} else {
		state.Hero = heroInfo
	}

	logger.Log(common.LevelDebug, "observation pass complete",
		map[string]interface{}{"villages": len(state.Villages), "hero": state.Hero != nil})
	return state, nil
}

func (o *Observer) observeVillage(ctx context.Context, driver ports.Driver, identity village.Identity) (*village.Village, error) {
	dorf1HTML, dorf2HTML, err := driver.GetVillageInnerHTML(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	v, err := o.scanner.ScanVillage(identity, dorf1HTML, dorf2HTML)
	if err != nil {
		return nil, err
	}
	v.HasQuestMasterReward = o.scanner.IsRewardAvailable(dorf1HTML)
	return v, nil
}

func (o *Observer) observeHero(ctx context.Context, driver ports.Driver, dorf1HTML string) (*hero.Info, error) {
	attrsHTML, err := driver.GetHTML(ctx, "hero/attributes")
	if err != nil {
		return nil, err
	}
	inventoryHTML, err := driver.GetHTML(ctx, "hero/inventory")
	if err != nil {
		return nil, err
	}

	info, err := o.scanner.ScanHeroInfo(attrsHTML, inventoryHTML)
	if err != nil {
		return nil, err
	}
	info.HasDailyQuestIndicator = o.scanner.IsDailyQuestIndicator(dorf1HTML)
	return info, nil
}
