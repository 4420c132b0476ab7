package config

// HeroConfig holds hero automation configuration.
type HeroConfig struct {
	Adventures HeroAdventuresConfig `mapstructure:"adventures"`
	Resources  HeroResourcesConfig  `mapstructure:"resources"`
}

// HeroAdventuresConfig controls when the hero is sent on adventures.
type HeroAdventuresConfig struct {
	// MinimalHealth is the health percentage below which the hero stays
	// home.
	MinimalHealth int `mapstructure:"minimal-health" validate:"min=0,max=100"`

	// IncreaseDifficulty opts into harder adventures when available.
	IncreaseDifficulty bool `mapstructure:"increase-difficulty"`
}

// HeroResourcesConfig controls hero inventory and attribute handling.
type HeroResourcesConfig struct {
	// SupportVillages lets the hero inventory cover build shortages.
	SupportVillages bool `mapstructure:"support-villages"`

	// AttributesRatio is the target distribution of attribute points,
	// keyed by attribute name, values in [0,100].
	AttributesRatio map[string]int `mapstructure:"attributes-ratio"`

	// AttributesSteps assigns fixed point counts per attribute before the
	// ratio applies.
	AttributesSteps map[string]int `mapstructure:"attributes-steps"`
}

// AttributeKeys are the recognized keys of AttributesRatio and
// AttributesSteps.
var AttributeKeys = []string{
	"fighting-strength",
	"off-bonus",
	"def-bonus",
	"production-points",
}
