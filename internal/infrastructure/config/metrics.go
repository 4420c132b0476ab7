package config

// MetricsConfig controls the optional Prometheus exposition endpoint. The
// agent collects nothing unless Enabled is set.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Listen port of the exposition HTTP server.
	Port int `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Bind host; defaults to localhost so the endpoint is not reachable
	// from outside the box.
	Host string `mapstructure:"host"`

	// Endpoint path, defaults to /metrics.
	Path string `mapstructure:"path"`
}
