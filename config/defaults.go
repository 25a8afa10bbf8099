package config

import "time"

// DefaultConfig returns the built-in defaults. Every value here can be
// overridden by the YAML file or the environment.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:           8000,
			MetricsPort:        9090,
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			RateLimitRPS:       50,
			RateLimitBurst:     100,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			OutputPaths: []string{"stdout"},
		},
		Telemetry: TelemetryConfig{
			Enabled:      false,
			OTLPEndpoint: "localhost:4317",
			ServiceName:  "airline-agents",
			SampleRate:   1.0,
		},
	}
}
