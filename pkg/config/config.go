// Package config loads and validates the client configuration.
//
// Configuration comes from a YAML file, with environment variables taking
// precedence for deployment-sensitive values (server URL, log level).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/orglens/orglens/pkg/router"
)

// TierCuts holds the two percentile cut points that partition scores into
// critical / warning / healthy alert tiers. Values are fractions of the
// descending score order: an entity in the top Critical fraction is
// critical, in the top Warning fraction is warning, otherwise healthy.
type TierCuts struct {
	Critical float64 `yaml:"critical" validate:"gt=0,lt=1"`
	Warning  float64 `yaml:"warning" validate:"gt=0,lt=1,gtfield=Critical"`
}

// Config is the full client configuration.
type Config struct {
	ServerURL      string        `yaml:"server_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout" validate:"min=1s,max=5m"`
	StreamTimeout  time.Duration `yaml:"stream_timeout" validate:"min=1s,max=30m"`

	// SearchDebounce is how long after the last keystroke the search
	// match-and-center side effect fires.
	SearchDebounce time.Duration `yaml:"search_debounce" validate:"min=10ms,max=5s"`

	// Zoom levels for camera centering. Selecting a node directly zooms
	// closer than a search hit.
	SearchZoom float64 `yaml:"search_zoom" validate:"gt=0"`
	SelectZoom float64 `yaml:"select_zoom" validate:"gt=0,gtefield=SearchZoom"`

	// Per-view tier cuts. The people list and the risk dashboard use
	// different cut points; both are configurable because the two views
	// disagree and neither is authoritative.
	PeopleTiers TierCuts `yaml:"people_tiers"`
	RiskTiers   TierCuts `yaml:"risk_tiers"`

	// ChatFallback is shown as the assistant's reply when the stream
	// fails before any content arrives.
	ChatFallback string `yaml:"chat_fallback" validate:"required"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFile  string `yaml:"log_file"`

	// MetricsAddr, when set, exposes the client's own prometheus metrics
	// on a local listener (e.g. "127.0.0.1:9190"). Empty disables it.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the configuration used when no file is present. Tier
// cut defaults come from the route table, so the view descriptors and the
// config never disagree.
func Default() *Config {
	people := router.Describe(router.RoutePeople).TierCuts
	risks := router.Describe(router.RouteRisks).TierCuts
	return &Config{
		ServerURL:      "http://localhost:8000",
		RequestTimeout: 30 * time.Second,
		StreamTimeout:  5 * time.Minute,
		SearchDebounce: 300 * time.Millisecond,
		SearchZoom:     1.5,
		SelectZoom:     2.5,
		PeopleTiers:    TierCuts{Critical: people.Critical, Warning: people.Warning},
		RiskTiers:      TierCuts{Critical: risks.Critical, Warning: risks.Warning},
		ChatFallback:   "Sorry, I couldn't reach the analytics service. Please try again.",
		LogLevel:       "info",
	}
}

// Load reads the config file at path, if it exists, applies environment
// overrides, and validates the result. A missing file is not an error; the
// defaults are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ORGLENS_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("ORGLENS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("ORGLENS_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
