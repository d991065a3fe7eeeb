package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pricing"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/risk"
)

// Config is the CLI configuration, loaded from a TOML file.
//
// All fields are optional; zero values fall back to built-in defaults.
// The heuristics section tunes the risk profile thresholds, so deployments
// can tighten or relax scoring without a rebuild.
type Config struct {
	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// WalletDir overrides the wallet store directory (file store only).
	WalletDir string `toml:"wallet_dir"`

	Pricing    PricingConfig `toml:"pricing"`
	Redis      RedisConfig   `toml:"redis"`
	Mongo      MongoConfig   `toml:"mongo"`
	Heuristics risk.Profile  `toml:"heuristics"`
}

// PricingConfig configures the price source.
type PricingConfig struct {
	BaseURL  string `toml:"base_url"`
	Currency string `toml:"currency"`
}

// RedisConfig configures the shared cache used by serve.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// MongoConfig configures the shared wallet store.
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Pricing: PricingConfig{
			BaseURL:  pricing.DefaultBaseURL,
			Currency: pricing.DefaultCurrency,
		},
		Heuristics: risk.DefaultProfile(),
	}
}

// LoadConfig reads the TOML config at path. An empty path means the
// standard location (~/.config/utxo-intelligence/config.toml); a missing
// file there is not an error and yields defaults. Environment variables
// override the file in either case.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		p, err := configPath()
		if err != nil {
			return DefaultConfig(), err
		}
		path = p
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return applyEnv(cfg), nil
		}
		return DefaultConfig(), err
	}
	cfg.Heuristics = cfg.Heuristics.Normalize()
	return applyEnv(cfg), nil
}

// applyEnv overlays environment overrides onto cfg.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("UTXOINT_CACHE_DIR"); v != "" {
		cfg.CacheDir = v
	}
	if v := os.Getenv("UTXOINT_WALLET_DIR"); v != "" {
		cfg.WalletDir = v
	}
	if v := os.Getenv("UTXOINT_PRICE_URL"); v != "" {
		cfg.Pricing.BaseURL = v
	}
	if v := os.Getenv("UTXOINT_CURRENCY"); v != "" {
		cfg.Pricing.Currency = v
	}
	if v := os.Getenv("UTXOINT_REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("UTXOINT_MONGO_URI"); v != "" {
		cfg.Mongo.URI = v
	}
	return cfg
}

func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
