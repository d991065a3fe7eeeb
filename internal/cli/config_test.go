package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pricing"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/risk"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Pricing.BaseURL != pricing.DefaultBaseURL {
		t.Errorf("Pricing.BaseURL = %q, want %q", cfg.Pricing.BaseURL, pricing.DefaultBaseURL)
	}
	if cfg.Pricing.Currency != pricing.DefaultCurrency {
		t.Errorf("Pricing.Currency = %q, want %q", cfg.Pricing.Currency, pricing.DefaultCurrency)
	}
	if cfg.Heuristics.LongHoldWindowDays != risk.DefaultLongHoldWindowDays {
		t.Errorf("Heuristics.LongHoldWindowDays = %d, want default", cfg.Heuristics.LongHoldWindowDays)
	}
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	// Point the standard location at an empty directory; a missing default
	// config file yields defaults without an error.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Pricing.Currency != pricing.DefaultCurrency {
		t.Errorf("Pricing.Currency = %q, want default", cfg.Pricing.Currency)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("UTXOINT_PRICE_URL", "http://localhost:9010")
	t.Setenv("UTXOINT_CURRENCY", "eur")
	t.Setenv("UTXOINT_CACHE_DIR", "/tmp/env-cache")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Pricing.BaseURL != "http://localhost:9010" {
		t.Errorf("Pricing.BaseURL = %q, want env override", cfg.Pricing.BaseURL)
	}
	if cfg.Pricing.Currency != "eur" {
		t.Errorf("Pricing.Currency = %q, want %q", cfg.Pricing.Currency, "eur")
	}
	if cfg.CacheDir != "/tmp/env-cache" {
		t.Errorf("CacheDir = %q, want env override", cfg.CacheDir)
	}
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Error("LoadConfig(explicit missing path) = nil error, want failure")
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
cache_dir = "/tmp/custom-cache"

[pricing]
currency = "eur"

[heuristics]
long_hold_window_days = 30
kyc_tags = ["cex"]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.CacheDir != "/tmp/custom-cache" {
		t.Errorf("CacheDir = %q, want override", cfg.CacheDir)
	}
	if cfg.Pricing.Currency != "eur" {
		t.Errorf("Pricing.Currency = %q, want eur", cfg.Pricing.Currency)
	}
	if cfg.Pricing.BaseURL != pricing.DefaultBaseURL {
		t.Errorf("Pricing.BaseURL = %q, want default preserved", cfg.Pricing.BaseURL)
	}
	if cfg.Heuristics.LongHoldWindowDays != 30 {
		t.Errorf("Heuristics.LongHoldWindowDays = %d, want 30", cfg.Heuristics.LongHoldWindowDays)
	}
	if len(cfg.Heuristics.KYCTags) != 1 || cfg.Heuristics.KYCTags[0] != "cex" {
		t.Errorf("Heuristics.KYCTags = %v, want [cex]", cfg.Heuristics.KYCTags)
	}
	// Unspecified heuristic fields are normalized to defaults.
	if cfg.Heuristics.RecentWindowDays != risk.DefaultRecentWindowDays {
		t.Errorf("Heuristics.RecentWindowDays = %d, want default", cfg.Heuristics.RecentWindowDays)
	}
}

func TestLoadConfigRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() accepted malformed TOML")
	}
}
