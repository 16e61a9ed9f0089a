package e2e

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_BASE_URL points at a running server; the scenario is skipped when empty.
	BaseURL string `envconfig:"E2E_BASE_URL"`
	// E2E_DEBUG_JSON dumps full request/response bodies for troubleshooting.
	DebugJSON bool `envconfig:"E2E_DEBUG_JSON" default:"false"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
