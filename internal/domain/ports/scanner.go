package ports

import (
	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// StockBar is the parsed resource bar of one village page.
type StockBar struct {
	Resources         resources.Resources
	FreeCrop          int
	WarehouseCapacity int
	GranaryCapacity   int
}

// Production holds the hourly production rates of one village.
type Production struct {
	Rates          resources.Resources
	FreeCropHourly int
}

// IncomingAttacks summarizes troop movements against one village.
type IncomingAttacks struct {
	Count             int
	NextAttackSeconds int
}

// Scanner turns raw rendered HTML of the game views into typed records.
// Implementations must not touch the network; all inputs are strings
// already captured by the Driver. Parse failures are reported as
// shared.ParseError so the observation pass can skip the affected village.
type Scanner interface {
	ScanVillageList(dorf1HTML string) ([]village.Identity, error)
	ScanAccountInfo(dorf1HTML string) (game.Account, error)
	ScanVillage(identity village.Identity, dorf1HTML, dorf2HTML string) (*village.Village, error)

	ScanStockBar(html string) (StockBar, error)
	ScanProduction(html string) (Production, error)
	ScanResourceFields(html string) ([]village.ResourcePit, error)
	ScanVillageCenter(html string) ([]village.Building, error)
	ScanBuildingQueue(html string, parallelAllowed bool) (*village.BuildingQueue, error)

	ScanHeroInfo(heroAttrsHTML, inventoryHTML string) (*hero.Info, error)
	ScanTroops(html string) (map[string]int, error)

	IsRewardAvailable(html string) bool
	IsDailyQuestIndicator(navigationFragment string) bool
	ScanAdvertiseRemainingTime(videoIframeHTML string) (int, error)
	ScanIncomingAttacks(movementsHTML string) (IncomingAttacks, error)
	IdentifyTribe(dorf2HTML string) (village.Tribe, error)
}
