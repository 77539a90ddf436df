package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/orglens/orglens/pkg/router"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should validate: %v", err)
	}
	if cfg.SearchDebounce != 300*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 300ms", cfg.SearchDebounce)
	}
	if cfg.PeopleTiers.Critical != 0.10 || cfg.PeopleTiers.Warning != 0.30 {
		t.Errorf("PeopleTiers = %+v, want 10%%/30%%", cfg.PeopleTiers)
	}
	if cfg.RiskTiers.Critical != 0.05 || cfg.RiskTiers.Warning != 0.15 {
		t.Errorf("RiskTiers = %+v, want 5%%/15%%", cfg.RiskTiers)
	}
}

func TestDefaultTierCutsMatchRouteTable(t *testing.T) {
	cfg := Default()

	people := router.Describe(router.RoutePeople).TierCuts
	if cfg.PeopleTiers.Critical != people.Critical || cfg.PeopleTiers.Warning != people.Warning {
		t.Errorf("PeopleTiers = %+v, route table has %+v", cfg.PeopleTiers, people)
	}
	risks := router.Describe(router.RouteRisks).TierCuts
	if cfg.RiskTiers.Critical != risks.Critical || cfg.RiskTiers.Warning != risks.Warning {
		t.Errorf("RiskTiers = %+v, route table has %+v", cfg.RiskTiers, risks)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load with missing file: %v", err)
	}
	if cfg.ServerURL != Default().ServerURL {
		t.Errorf("ServerURL = %q, want default", cfg.ServerURL)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orglens.yaml")
	data := `server_url: http://analytics.internal:8000
search_debounce: 150ms
people_tiers:
  critical: 0.05
  warning: 0.20
log_level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://analytics.internal:8000" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.SearchDebounce != 150*time.Millisecond {
		t.Errorf("SearchDebounce = %v, want 150ms", cfg.SearchDebounce)
	}
	if cfg.PeopleTiers.Warning != 0.20 {
		t.Errorf("PeopleTiers.Warning = %v, want 0.20", cfg.PeopleTiers.Warning)
	}
	// Unset fields keep defaults
	if cfg.SelectZoom != Default().SelectZoom {
		t.Errorf("SelectZoom = %v, want default", cfg.SelectZoom)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("ORGLENS_SERVER_URL", "http://override:9000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServerURL != "http://override:9000" {
		t.Errorf("ServerURL = %q, want env override", cfg.ServerURL)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty server url", func(c *Config) { c.ServerURL = "" }},
		{"not a url", func(c *Config) { c.ServerURL = "not a url" }},
		{"inverted tier cuts", func(c *Config) { c.PeopleTiers = TierCuts{Critical: 0.5, Warning: 0.1} }},
		{"zero debounce", func(c *Config) { c.SearchDebounce = 0 }},
		{"bad log level", func(c *Config) { c.LogLevel = "verbose" }},
		{"select zoom weaker than search", func(c *Config) { c.SearchZoom = 3; c.SelectZoom = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Expected validation error")
			}
		})
	}
}
