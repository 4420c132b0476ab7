package construction

import (
	"github.com/andrescamacho/travian-go/internal/domain/resources"
	"github.com/andrescamacho/travian-go/internal/domain/village"
)

// timeForm selects how a building's base construction time is derived.
// The form is an immutable property of the building kind.
type timeForm int

const (
	// timeExponential: base·factor^(L-1) − offset seconds, floored at 0.
	timeExponential timeForm = iota
	// timeTable: direct lookup by level.
	timeTable
	// timeTableOffset: lookup by level shifted by a fixed offset, clamped
	// to the last entry.
	timeTableOffset
)

type timeSpec struct {
	form   timeForm
	base   float64
	factor float64
	offset int
	table  []int
}

type costSpec struct {
	base   resources.Resources
	growth float64
	time   timeSpec
}

// standard cost growth per level for almost every building.
const defaultCostGrowth = 1.28

func expTime(base float64, offset int) timeSpec {
	return timeSpec{form: timeExponential, base: base, factor: 1.16, offset: offset}
}

var costSpecs = map[village.BuildingKind]costSpec{
	// Resource pits. Pit times grow faster than center buildings.
	village.Woodcutter: {base: resources.New(40, 100, 50, 60), growth: 1.67, time: timeSpec{form: timeExponential, base: 260, factor: 1.67}},
	village.ClayPit:    {base: resources.New(80, 40, 80, 50), growth: 1.67, time: timeSpec{form: timeExponential, base: 220, factor: 1.67}},
	village.IronMine:   {base: resources.New(100, 80, 30, 60), growth: 1.67, time: timeSpec{form: timeExponential, base: 450, factor: 1.67}},
	village.Cropland:   {base: resources.New(70, 90, 70, 20), growth: 1.67, time: timeSpec{form: timeExponential, base: 150, factor: 1.67}},

	// Resource boosters.
	village.Sawmill:     {base: resources.New(520, 380, 290, 90), growth: defaultCostGrowth, time: expTime(4900, 1800)},
	village.Brickyard:   {base: resources.New(440, 480, 320, 50), growth: defaultCostGrowth, time: expTime(4060, 1800)},
	village.IronFoundry: {base: resources.New(200, 450, 510, 120), growth: defaultCostGrowth, time: expTime(5200, 1800)},
	village.GrainMill:   {base: resources.New(500, 440, 380, 1240), growth: defaultCostGrowth, time: expTime(3540, 1800)},
	village.Bakery:      {base: resources.New(1200, 1480, 870, 1600), growth: defaultCostGrowth, time: expTime(6080, 1800)},

	// Infrastructure.
	village.Warehouse:         {base: resources.New(130, 160, 90, 40), growth: defaultCostGrowth, time: expTime(3875, 1800)},
	village.Granary:           {base: resources.New(80, 100, 70, 20), growth: defaultCostGrowth, time: expTime(3475, 1800)},
	village.Smithy:            {base: resources.New(180, 250, 500, 160), growth: defaultCostGrowth, time: expTime(3975, 1800)},
	village.TournamentSquare:  {base: resources.New(1750, 2250, 1530, 240), growth: defaultCostGrowth, time: expTime(5375, 1800)},
	village.MainBuilding:      {base: resources.New(70, 40, 60, 20), growth: defaultCostGrowth, time: expTime(3875, 1800)},
	village.RallyPoint:        {base: resources.New(110, 160, 90, 70), growth: defaultCostGrowth, time: expTime(3900, 1800)},
	village.Marketplace:       {base: resources.New(80, 70, 120, 70), growth: defaultCostGrowth, time: expTime(3675, 1800)},
	village.Embassy:           {base: resources.New(180, 130, 150, 80), growth: defaultCostGrowth, time: expTime(3700, 1800)},
	village.Barracks:          {base: resources.New(210, 140, 260, 120), growth: defaultCostGrowth, time: expTime(3875, 1800)},
	village.Stable:            {base: resources.New(260, 140, 220, 100), growth: defaultCostGrowth, time: expTime(4075, 1800)},
	village.Workshop:          {base: resources.New(460, 510, 600, 320), growth: defaultCostGrowth, time: expTime(4875, 1800)},
	village.Academy:           {base: resources.New(220, 160, 90, 40), growth: defaultCostGrowth, time: expTime(4450, 1800)},
	village.TownHall:          {base: resources.New(1250, 1110, 1260, 600), growth: defaultCostGrowth, time: expTime(6225, 1800)},
	village.Residence:         {base: resources.New(580, 460, 350, 180), growth: defaultCostGrowth, time: expTime(4900, 1800)},
	village.Palace:            {base: resources.New(550, 800, 750, 250), growth: defaultCostGrowth, time: expTime(6650, 1800)},
	village.Treasury:          {base: resources.New(2880, 2740, 2580, 990), growth: defaultCostGrowth, time: expTime(8625, 1800)},
	village.TradeOffice:       {base: resources.New(1400, 1330, 1200, 400), growth: defaultCostGrowth, time: expTime(5500, 1800)},
	village.GreatBarracks:     {base: resources.New(630, 420, 780, 360), growth: defaultCostGrowth, time: expTime(3875, 1800)},
	village.GreatStable:       {base: resources.New(780, 420, 660, 300), growth: defaultCostGrowth, time: expTime(4075, 1800)},
	village.StonemasonsLodge:  {base: resources.New(155, 130, 125, 70), growth: defaultCostGrowth, time: expTime(4625, 1800)},
	village.Brewery:           {base: resources.New(1460, 930, 1250, 1740), growth: defaultCostGrowth, time: expTime(7100, 1800)},
	village.Trapper:           {base: resources.New(80, 120, 70, 90), growth: defaultCostGrowth, time: expTime(2500, 1800)},
	village.HerosMansion:      {base: resources.New(700, 670, 700, 240), growth: defaultCostGrowth, time: expTime(4125, 1800)},
	village.GreatWarehouse:    {base: resources.New(650, 800, 450, 200), growth: defaultCostGrowth, time: expTime(5425, 1800)},
	village.GreatGranary:      {base: resources.New(400, 500, 350, 100), growth: defaultCostGrowth, time: expTime(4865, 1800)},
	village.HorseDrinkingPool: {base: resources.New(780, 420, 660, 540), growth: defaultCostGrowth, time: expTime(5950, 1800)},

	// Walls use short fixed sequences rather than a parametric curve.
	village.CityWall:  {base: resources.New(70, 90, 170, 70), growth: defaultCostGrowth, time: timeSpec{form: timeTable, table: wallTimes}},
	village.EarthWall: {base: resources.New(120, 200, 0, 80), growth: defaultCostGrowth, time: timeSpec{form: timeTable, table: wallTimes}},
	village.Palisade:  {base: resources.New(160, 100, 80, 60), growth: defaultCostGrowth, time: timeSpec{form: timeTable, table: wallTimes}},
	village.Cranny:    {base: resources.New(40, 50, 30, 10), growth: defaultCostGrowth, time: timeSpec{form: timeTable, table: crannyTimes}},

	// The Wonder reuses the wall sequence shifted into its long tail.
	village.WonderOfTheWorld: {base: resources.New(66700, 69050, 72200, 13200), growth: 1.0275, time: timeSpec{form: timeTableOffset, offset: 4, table: wonderTimes}},
}

var wallTimes = []int{
	2000, 2620, 3340, 4170, 5140, 6260, 7570, 9080, 10840, 12880,
	15250, 18000, 21190, 24900, 29200, 34200, 40000, 46720, 54520, 63570,
}

var crannyTimes = []int{
	300, 810, 1400, 2080, 2880, 3800, 4880, 6130, 7570, 9250,
}

var wonderTimes = []int{
	18000, 19000, 20100, 21300, 22600, 24000, 25500, 27100, 28800, 30600,
	32500, 34500, 36600, 38800, 41100, 43500, 46000, 48600, 51300, 54100,
	57000, 60000, 63100, 66300, 69600, 73000, 76500, 80100, 83800, 87600,
}
