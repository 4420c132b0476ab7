package village

// BuildingKind is the closed enumeration of building types. The integer
// value is the in-game gid: gids 1..4 are the four resource pits, gids >= 5
// are center, military and special buildings.
type BuildingKind int

const (
	Woodcutter        BuildingKind = 1
	ClayPit           BuildingKind = 2
	IronMine          BuildingKind = 3
	Cropland          BuildingKind = 4
	Sawmill           BuildingKind = 5
	Brickyard         BuildingKind = 6
	IronFoundry       BuildingKind = 7
	GrainMill         BuildingKind = 8
	Bakery            BuildingKind = 9
	Warehouse         BuildingKind = 10
	Granary           BuildingKind = 11
	Smithy            BuildingKind = 13
	TournamentSquare  BuildingKind = 14
	MainBuilding      BuildingKind = 15
	RallyPoint        BuildingKind = 16
	Marketplace       BuildingKind = 17
	Embassy           BuildingKind = 18
	Barracks          BuildingKind = 19
	Stable            BuildingKind = 20
	Workshop          BuildingKind = 21
	Academy           BuildingKind = 22
	Cranny            BuildingKind = 23
	TownHall          BuildingKind = 24
	Residence         BuildingKind = 25
	Palace            BuildingKind = 26
	Treasury          BuildingKind = 27
	TradeOffice       BuildingKind = 28
	GreatBarracks     BuildingKind = 29
	GreatStable       BuildingKind = 30
	CityWall          BuildingKind = 31
	EarthWall         BuildingKind = 32
	Palisade          BuildingKind = 33
	StonemasonsLodge  BuildingKind = 34
	Brewery           BuildingKind = 35
	Trapper           BuildingKind = 36
	HerosMansion      BuildingKind = 37
	GreatWarehouse    BuildingKind = 38
	GreatGranary      BuildingKind = 39
	WonderOfTheWorld  BuildingKind = 40
	HorseDrinkingPool BuildingKind = 41
)

type buildingSpec struct {
	name     string
	maxLevel int
}

var buildingSpecs = map[BuildingKind]buildingSpec{
	Woodcutter:        {"Woodcutter", 20},
	ClayPit:           {"Clay Pit", 20},
	IronMine:          {"Iron Mine", 20},
	Cropland:          {"Cropland", 20},
	Sawmill:           {"Sawmill", 5},
	Brickyard:         {"Brickyard", 5},
	IronFoundry:       {"Iron Foundry", 5},
	GrainMill:         {"Grain Mill", 5},
	Bakery:            {"Bakery", 5},
	Warehouse:         {"Warehouse", 20},
	Granary:           {"Granary", 20},
	Smithy:            {"Smithy", 20},
	TournamentSquare:  {"Tournament Square", 20},
	MainBuilding:      {"Main Building", 20},
	RallyPoint:        {"Rally Point", 20},
	Marketplace:       {"Marketplace", 20},
	Embassy:           {"Embassy", 20},
	Barracks:          {"Barracks", 20},
	Stable:            {"Stable", 20},
	Workshop:          {"Workshop", 20},
	Academy:           {"Academy", 20},
	Cranny:            {"Cranny", 10},
	TownHall:          {"Town Hall", 20},
	Residence:         {"Residence", 20},
	Palace:            {"Palace", 20},
	Treasury:          {"Treasury", 20},
	TradeOffice:       {"Trade Office", 20},
	GreatBarracks:     {"Great Barracks", 20},
	GreatStable:       {"Great Stable", 20},
	CityWall:          {"City Wall", 20},
	EarthWall:         {"Earth Wall", 20},
	Palisade:          {"Palisade", 20},
	StonemasonsLodge:  {"Stonemason's Lodge", 20},
	Brewery:           {"Brewery", 20},
	Trapper:           {"Trapper", 20},
	HerosMansion:      {"Hero's Mansion", 20},
	GreatWarehouse:    {"Great Warehouse", 20},
	GreatGranary:      {"Great Granary", 20},
	WonderOfTheWorld:  {"Wonder of the World", 100},
	HorseDrinkingPool: {"Horse Drinking Trough", 20},
}

// Gid returns the stable integer id of the kind.
func (k BuildingKind) Gid() int {
	return int(k)
}

// Name returns the display name of the kind (as it appears on contract
// pages), or "" for an unknown gid.
func (k BuildingKind) Name() string {
	return buildingSpecs[k].name
}

// MaxLevel returns the absolute level ceiling of the kind. Village-level
// ceilings for pits (city / capital status) are applied on top of this.
func (k BuildingKind) MaxLevel() int {
	return buildingSpecs[k].maxLevel
}

// IsKnown reports whether the gid belongs to the closed enumeration.
func (k BuildingKind) IsKnown() bool {
	_, ok := buildingSpecs[k]
	return ok
}

// IsResourcePit reports whether the kind is one of the four outside pits.
func (k BuildingKind) IsResourcePit() bool {
	return k >= Woodcutter && k <= Cropland
}

// QueueKey returns the construction slot the kind occupies: QueueOutside for
// resource pits, QueueInside for everything else.
func (k BuildingKind) QueueKey() QueueKey {
	if k.IsResourcePit() {
		return QueueOutside
	}
	return QueueInside
}

// KindByName resolves a display name back to a BuildingKind. Returns 0 and
// false for unknown names.
func KindByName(name string) (BuildingKind, bool) {
	for kind, spec := range buildingSpecs {
		if spec.name == name {
			return kind, true
		}
	}
	return 0, false
}
