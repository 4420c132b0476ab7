package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/travian-go/internal/adapters/scanner"
	"github.com/andrescamacho/travian-go/internal/domain/hero"
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/shared"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

const dorf1Fixture = `<html><body class="tribe3">
<script type="text/javascript">
var resources = {"storage":{"l1":1203,"l2":890,"l3":456,"l4":120},"production":{"l1":120,"l2":100,"l3":85,"l4":60,"l5":42},"maxStorage":{"speed":1}};
</script>
<div id="stockBar">
  <span id="l1">&#8234;1.203&#8236;</span>
  <span id="l2">&#8234;890&#8236;</span>
  <span id="l3">&#8234;456&#8236;</span>
  <span id="l4">&#8234;120&#8236;</span>
  <span id="stockBarFreeCrop">&#8234;42&#8236;</span>
  <div class="warehouse"><div class="capacity"><span class="value">2.300</span></div></div>
  <div class="granary"><div class="capacity"><span class="value">1.200</span></div></div>
</div>
<div id="sidebarBoxVillagelist"><ul>
  <li class="listEntry"><a href="/dorf1.php?newdid=101&amp;">
    <span class="name">Riverside</span>
    <span class="coordinateX">(&#8234;&#8722;12&#8236;</span>
    <span class="coordinateY">&#8234;34&#8236;)</span>
  </a></li>
  <li class="listEntry"><a href="/dorf1.php?newdid=102&amp;">
    <span class="name">Hilltop</span>
    <span class="coordinateX">(&#8234;7&#8236;</span>
    <span class="coordinateY">&#8234;&#8722;9&#8236;)</span>
  </a></li>
</ul></div>
<div id="resourceFieldContainer">
  <a class="level colorLayer gid1 buildingSlot1 g1 level3"></a>
  <a class="level colorLayer gid2 buildingSlot5 g2 level2"></a>
  <a class="level colorLayer gid3 buildingSlot7 g3 level1"></a>
  <a class="level colorLayer gid4 buildingSlot9 g4 level4"></a>
</div>
<div class="buildingList"><ul>
  <li>
    <div class="name">Main Building <span class="lvl">level 4</span></div>
    <div class="buildDuration"><span class="timer" value="1543"></span></div>
  </li>
</ul></div>
<div id="troops"><table><tbody>
  <tr><td class="un">Phalanx</td><td class="num">24</td></tr>
  <tr><td class="un">Settlers</td><td class="num">3</td></tr>
</tbody></table></div>
<div id="questmasterButton"><div class="newQuestSpeechBubble">1</div></div>
<div class="dailyQuests"><span class="indicator"></span></div>
<div id="movements">
  <div class="attack"><span class="timer" value="612"></span></div>
  <div class="attack"><span class="timer" value="900"></span></div>
</div>
</body></html>`

const dorf2Fixture = `<html><body class="tribe3">
<div class="villageInfobox"><span class="capital">capital</span></div>
<div id="villageContent">
  <div class="buildingSlot a19 buildingSlot19 g15 level7"></div>
  <div class="buildingSlot a20 buildingSlot20 g10 level5"></div>
  <div class="buildingSlot a21 buildingSlot21 g11 level4"></div>
  <div class="buildingSlot a22 buildingSlot22 g0"></div>
</div>
</body></html>`

const heroAttrsFixture = `<html><body>
<div class="heroStatus"><span class="statusHome">at home</span></div>
<div class="health"><span class="value">&#8234;87%&#8236;</span></div>
<div class="experience"><span class="value">1.250</span></div>
<span id="availablePoints">4</span>
<div class="adventure"><span class="content">3</span></div>
<div class="pointsValueSetter"><input value="5"></div>
<div class="pointsValueSetter"><input value="0"></div>
<div class="pointsValueSetter"><input value="2"></div>
<div class="pointsValueSetter"><input value="10"></div>
</body></html>`

const heroInventoryFixture = `<html><body>
<div id="heroItems">
  <div class="resource lumber"><span class="amount">440</span></div>
  <div class="resource clay"><span class="amount">380</span></div>
  <div class="resource iron"><span class="amount">0</span></div>
  <div class="resource crop"><span class="amount">1.025</span></div>
</div>
</body></html>`

func TestScanVillageList(t *testing.T) {
	s := scanner.New()

	list, err := s.ScanVillageList(dorf1Fixture)

	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, village.Identity{ID: 101, Name: "Riverside", X: -12, Y: 34}, list[0])
	assert.Equal(t, village.Identity{ID: 102, Name: "Hilltop", X: 7, Y: -9}, list[1])
}

func TestScanVillageList_NoVillagesIsParseError(t *testing.T) {
	s := scanner.New()

	_, err := s.ScanVillageList("<html><body></body></html>")

	require.Error(t, err)
	assert.True(t, shared.IsParseError(err))
}

func TestScanStockBar(t *testing.T) {
	s := scanner.New()

	bar, err := s.ScanStockBar(dorf1Fixture)

	require.NoError(t, err)
	assert.Equal(t, resources.New(1203, 890, 456, 120), bar.Resources)
	assert.Equal(t, 42, bar.FreeCrop)
	assert.Equal(t, 2300, bar.WarehouseCapacity)
	assert.Equal(t, 1200, bar.GranaryCapacity)
}

func TestScanProduction(t *testing.T) {
	s := scanner.New()

	production, err := s.ScanProduction(dorf1Fixture)

	require.NoError(t, err)
	assert.Equal(t, resources.New(120, 100, 85, 60), production.Rates)
	assert.Equal(t, 42, production.FreeCropHourly)
}

func TestScanResourceFields(t *testing.T) {
	s := scanner.New()

	pits, err := s.ScanResourceFields(dorf1Fixture)

	require.NoError(t, err)
	require.Len(t, pits, 4)
	assert.Equal(t, village.ResourcePit{ID: 1, Kind: resources.Lumber, Level: 3}, pits[0])
	assert.Equal(t, village.ResourcePit{ID: 5, Kind: resources.Clay, Level: 2}, pits[1])
	assert.Equal(t, village.ResourcePit{ID: 7, Kind: resources.Iron, Level: 1}, pits[2])
	assert.Equal(t, village.ResourcePit{ID: 9, Kind: resources.Crop, Level: 4}, pits[3])
}

func TestScanVillageCenter_SkipsEmptySlots(t *testing.T) {
	s := scanner.New()

	buildings, err := s.ScanVillageCenter(dorf2Fixture)

	require.NoError(t, err)
	require.Len(t, buildings, 3)
	assert.Equal(t, village.Building{ID: 19, Kind: village.MainBuilding, Level: 7}, buildings[0])
	assert.Equal(t, village.Building{ID: 20, Kind: village.Warehouse, Level: 5}, buildings[1])
	assert.Equal(t, village.Building{ID: 21, Kind: village.Granary, Level: 4}, buildings[2])
}

func TestScanBuildingQueue(t *testing.T) {
	s := scanner.New()

	queue, err := s.ScanBuildingQueue(dorf1Fixture, false)

	require.NoError(t, err)
	entries := queue.AllJobs()
	require.Len(t, entries, 1)
	assert.Equal(t, "Main Building", entries[0].BuildingName)
	assert.Equal(t, 4, entries[0].TargetLevel)
	assert.Equal(t, 1543, entries[0].TimeRemainingSeconds)
	assert.False(t, queue.ParallelBuildingAllowed())
}

func TestScanBuildingQueue_ParallelFlag(t *testing.T) {
	s := scanner.New()

	queue, err := s.ScanBuildingQueue(dorf1Fixture, true)

	require.NoError(t, err)
	assert.True(t, queue.ParallelBuildingAllowed())
}

func TestScanHeroInfo(t *testing.T) {
	s := scanner.New()

	info, err := s.ScanHeroInfo(heroAttrsFixture, heroInventoryFixture)

	require.NoError(t, err)
	assert.Equal(t, 87, info.Health)
	assert.Equal(t, 1250, info.Experience)
	assert.Equal(t, 4, info.PointsAvailable)
	assert.Equal(t, 3, info.Adventures)
	assert.True(t, info.IsAvailable)
	assert.Equal(t, resources.New(440, 380, 0, 1025), info.Inventory)
	assert.Equal(t, 5, info.Attributes[hero.FightingStrength])
	assert.Equal(t, 0, info.Attributes[hero.OffBonus])
	assert.Equal(t, 2, info.Attributes[hero.DefBonus])
	assert.Equal(t, 10, info.Attributes[hero.ProductionPoints])
}

func TestScanHeroInfo_MissingHealthIsParseError(t *testing.T) {
	s := scanner.New()

	_, err := s.ScanHeroInfo("<html><body></body></html>", heroInventoryFixture)

	require.Error(t, err)
	assert.True(t, shared.IsParseError(err))
}

func TestScanVillage_AssemblesEverything(t *testing.T) {
	s := scanner.New()
	identity := village.Identity{ID: 101, Name: "Riverside", X: -12, Y: 34}

	v, err := s.ScanVillage(identity, dorf1Fixture, dorf2Fixture)

	require.NoError(t, err)
	assert.Equal(t, 101, v.ID)
	assert.Equal(t, village.Gauls, v.Tribe)
	assert.Equal(t, resources.New(1203, 890, 456, 120), v.Resources)
	assert.Equal(t, resources.New(120, 100, 85, 60), v.HourlyProduction)
	assert.Len(t, v.Pits, 4)
	assert.Len(t, v.Buildings, 3)
	assert.True(t, v.IsPermanentCapital)
	assert.True(t, v.IsUnderAttack)
	assert.Equal(t, 2, v.IncomingAttackCount)
	assert.Equal(t, 612, v.NextAttackSeconds)
	assert.False(t, v.Queue.IsEmpty())
	assert.Equal(t, 24, v.TroopCount("Phalanx"))
	assert.Equal(t, 3, v.TroopCount("Settlers"))
}

func TestScanTroops(t *testing.T) {
	s := scanner.New()

	troops, err := s.ScanTroops(dorf1Fixture)

	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Phalanx": 24, "Settlers": 3}, troops)
}

func TestScanTroops_NoGarrisonTable(t *testing.T) {
	s := scanner.New()

	troops, err := s.ScanTroops("<html><body></body></html>")

	require.NoError(t, err)
	assert.Empty(t, troops)
}

func TestIsRewardAvailable(t *testing.T) {
	s := scanner.New()

	assert.True(t, s.IsRewardAvailable(dorf1Fixture))
	assert.False(t, s.IsRewardAvailable("<html><body><div id=\"questmasterButton\"></div></body></html>"))
}

func TestIsDailyQuestIndicator(t *testing.T) {
	s := scanner.New()

	assert.True(t, s.IsDailyQuestIndicator(dorf1Fixture))
	assert.False(t, s.IsDailyQuestIndicator("<html><body></body></html>"))
}

func TestScanAdvertiseRemainingTime(t *testing.T) {
	s := scanner.New()

	fromAttr, err := s.ScanAdvertiseRemainingTime(
		`<html><body><span id="videoTimer" data-remaining="28"></span></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, 28, fromAttr)

	fromScript, err := s.ScanAdvertiseRemainingTime(
		`<html><script>var player = {"remainingTime": 45};</script></html>`)
	require.NoError(t, err)
	assert.Equal(t, 45, fromScript)

	_, err = s.ScanAdvertiseRemainingTime("<html></html>")
	assert.Error(t, err)
}

func TestScanIncomingAttacks(t *testing.T) {
	s := scanner.New()

	attacks, err := s.ScanIncomingAttacks(dorf1Fixture)

	require.NoError(t, err)
	assert.Equal(t, 2, attacks.Count)
	assert.Equal(t, 612, attacks.NextAttackSeconds)
}

func TestIdentifyTribe(t *testing.T) {
	s := scanner.New()

	tribe, err := s.IdentifyTribe(dorf2Fixture)
	require.NoError(t, err)
	assert.Equal(t, village.Gauls, tribe)

	romans, err := s.IdentifyTribe(`<html><body class="tribe1"></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, village.Romans, romans)

	_, err = s.IdentifyTribe(`<html><body class="noTribe"></body></html>`)
	assert.Error(t, err)
}
