package helpers

import (
	"fmt"
	"sync"

	"github.com/andrescamacho/travian-go/internal/domain/game"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/ports"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// MockScanner is a test double for the Scanner interface. Responses are
// scripted per method; unscripted calls return a descriptive error so a
// test never silently consumes a zero value it did not arrange.
type MockScanner struct {
	mu sync.RWMutex

	VillageList []village.Identity
	Account     *game.Account
	Villages    map[int]*village.Village
	Hero        *hero.Info
	Tribe       village.Tribe

	AdRemainingSeconds int
	AdScanErr          error
	RewardAvailable    bool
	DailyIndicator     bool
	Attacks            ports.IncomingAttacks

	// villageErrs injects a per-village scan failure.
	villageErrs map[int]error
}

func NewMockScanner() *MockScanner {
	return &MockScanner{
		Villages:    make(map[int]*village.Village),
		villageErrs: make(map[int]error),
		Tribe:       village.Gauls,
	}
}

func (m *MockScanner) AddVillage(v *village.Village) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Villages[v.ID] = v
	m.VillageList = append(m.VillageList, village.Identity{ID: v.ID, Name: v.Name, X: v.X, Y: v.Y})
}

func (m *MockScanner) FailVillage(id int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.villageErrs[id] = err
}

func (m *MockScanner) ScanVillageList(string) ([]village.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.VillageList, nil
}

func (m *MockScanner) ScanAccountInfo(string) (game.Account, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Account == nil {
		return game.Account{}, fmt.Errorf("no account scripted")
	}
	return *m.Account, nil
}

func (m *MockScanner) ScanVillage(identity village.Identity, _, _ string) (*village.Village, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if err := m.villageErrs[identity.ID]; err != nil {
		return nil, err
	}
	v, ok := m.Villages[identity.ID]
	if !ok {
		return nil, fmt.Errorf("no village scripted for id %d", identity.ID)
	}
	return v, nil
}

func (m *MockScanner) ScanStockBar(string) (ports.StockBar, error) {
	return ports.StockBar{}, fmt.Errorf("not scripted")
}

func (m *MockScanner) ScanProduction(string) (ports.Production, error) {
	return ports.Production{}, fmt.Errorf("not scripted")
}

func (m *MockScanner) ScanResourceFields(string) ([]village.ResourcePit, error) {
	return nil, fmt.Errorf("not scripted")
}

func (m *MockScanner) ScanVillageCenter(string) ([]village.Building, error) {
	return nil, fmt.Errorf("not scripted")
}

func (m *MockScanner) ScanBuildingQueue(string, bool) (*village.BuildingQueue, error) {
	return nil, fmt.Errorf("not scripted")
}

func (m *MockScanner) ScanHeroInfo(string, string) (*hero.Info, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.Hero == nil {
		return nil, fmt.Errorf("no hero scripted")
	}
	return m.Hero, nil
}

func (m *MockScanner) ScanTroops(string) (map[string]int, error) {
	return map[string]int{}, nil
}

func (m *MockScanner) IsRewardAvailable(string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RewardAvailable
}

func (m *MockScanner) IsDailyQuestIndicator(string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.DailyIndicator
}

func (m *MockScanner) ScanAdvertiseRemainingTime(string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.AdScanErr != nil {
		return 0, m.AdScanErr
	}
	return m.AdRemainingSeconds, nil
}

func (m *MockScanner) ScanIncomingAttacks(string) (ports.IncomingAttacks, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Attacks, nil
}

func (m *MockScanner) IdentifyTribe(string) (village.Tribe, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.Tribe, nil
}
