package bridge

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config describes how to reach a bridge service.
type Config struct {
	// URL of the bridge, the protocol may be omitted.
	URL string `env:"CSGO_BRIDGE_URL"`
	// Token is sent as a bearer token if set.
	Token string `env:"CSGO_BRIDGE_TOKEN"`
	// Insecure skips the TLS probe and always connects unencrypted.
	Insecure bool `env:"CSGO_BRIDGE_INSECURE"`
	// PingInterval is the keepalive interval of the websocket connection.
	PingInterval time.Duration `env:"CSGO_BRIDGE_PING_INTERVAL" envDefault:"30s"`
}

// FromEnv reads the configuration from CSGO_BRIDGE_* environment
// variables.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse bridge environment: %w", err)
	}
	return cfg, nil
}
