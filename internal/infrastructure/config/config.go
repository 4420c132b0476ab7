package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the main configuration struct combining all sub-configs
type Config struct {
	Driver   DriverConfig   `mapstructure:"driver"`
	Game     GameConfig     `mapstructure:"game"`
	Hero     HeroConfig     `mapstructure:"hero"`
	Database DatabaseConfig `mapstructure:"database"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// LoadConfig loads configuration from multiple sources with priority:
// 1. Environment variables (highest priority)
// 2. Config file (config.yaml)
// 3. Defaults (lowest priority)
//
// The config file is discovered in order: explicit path, CONFIG_PATH env
// var, current directory, parent directories, executable-adjacent. ${VAR}
// references inside the file are expanded from the environment before
// parsing.
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (doesn't error if missing)
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigType("yaml")

	// Enable environment variable reading
	v.SetEnvPrefix("TRAVIAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path := findConfigFile(configPath); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		expanded := os.Expand(string(raw), func(name string) string {
			return os.Getenv(name)
		})
		if err := v.ReadConfig(bytes.NewReader([]byte(expanded))); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	// No config file found is OK - we'll use env vars and defaults

	// Special handling for DATABASE_URL environment variable
	// This allows users to set the full connection string without prefix
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		v.Set("database.url", dbURL)
	}

	// Create config struct and unmarshal
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults for any missing values
	SetDefaults(&cfg)

	// Validate configuration
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// findConfigFile resolves the config file location, returning "" when no
// file exists anywhere on the search path.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return envPath
	}

	names := []string{"config.yaml", "config.yml"}

	// Current directory, then parents up to the filesystem root.
	if cwd, err := os.Getwd(); err == nil {
		for dir := cwd; ; dir = filepath.Dir(dir) {
			for _, name := range names {
				candidate := filepath.Join(dir, name)
				if _, err := os.Stat(candidate); err == nil {
					return candidate
				}
			}
			if dir == filepath.Dir(dir) {
				break
			}
		}
	}

	// Next to the binary, for installed deployments.
	if exe, err := os.Executable(); err == nil {
		for _, name := range names {
			candidate := filepath.Join(filepath.Dir(exe), name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}

// LoadConfigOrDefault loads configuration or returns a default config on error
func LoadConfigOrDefault(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		// Return default configuration
		defaultCfg := &Config{}
		SetDefaults(defaultCfg)
		return defaultCfg
	}
	return cfg
}

// MustLoadConfig loads configuration and panics on error (for use in main.go)
func MustLoadConfig(configPath string) *Config {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
