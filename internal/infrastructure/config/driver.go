package config

// DriverConfig holds the browser session configuration.
type DriverConfig struct {
	// ServerURL is the game server root, e.g. https://ts1.example.com
	ServerURL string `mapstructure:"server_url" validate:"required,url"`

	UserLogin    string `mapstructure:"user_login" validate:"required"`
	UserPassword string `mapstructure:"user_password" validate:"required"`

	// Headless runs the browser without a window. Disable for debugging.
	Headless bool `mapstructure:"headless"`
}
