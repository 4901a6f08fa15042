// Package config loads the application configuration from YAML with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration.
type Config struct {
	Currencies      []string       `yaml:"currencies"`
	QuoteAsset      string         `yaml:"quote_asset"`
	DataAreaRootDir string         `yaml:"data_area_root_dir"`
	Strategy        StrategyConfig `yaml:"strategy"`
	Trading         TradingConfig  `yaml:"trading"`
	Journal         JournalConfig  `yaml:"journal"`
}

// StrategyConfig selects and tunes the signal strategy.
type StrategyConfig struct {
	Name           string `yaml:"name"` // "ta" or "ta2"
	TA2EMA50Filter bool   `yaml:"ta2_use_ema50_filter"`
}

// TradingConfig contains the override-rule thresholds and execution mode.
type TradingConfig struct {
	TradeThreshold       float64 `yaml:"trade_threshold"`
	TakeProfitPercentage float64 `yaml:"take_profit_percentage"`
	StopLossPercentage   float64 `yaml:"stop_loss_percentage"`
	DryRun               bool    `yaml:"dry_run"`
}

// JournalConfig contains run-journaling parameters.
type JournalConfig struct {
	Type   string `yaml:"type"` // "csv" or "sqlite"
	DBPath string `yaml:"db_path,omitempty"`
	Dir    string `yaml:"dir,omitempty"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; env and defaults
// still apply.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("CURRENCIES"); v != "" {
		cfg.Currencies = splitList(v)
	}
	if v := os.Getenv("QUOTE_ASSET"); v != "" {
		cfg.QuoteAsset = strings.ToUpper(v)
	}
	if v := os.Getenv("DATA_AREA_ROOT_DIR"); v != "" {
		cfg.DataAreaRootDir = v
	}
	if v := os.Getenv("TA_STRATEGY"); v != "" {
		cfg.Strategy.Name = v
	}
	if v := os.Getenv("TA2_USE_EMA50_FILTER"); v != "" {
		cfg.Strategy.TA2EMA50Filter = isTrue(v)
	}
	if v := os.Getenv("TRADE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.TradeThreshold = f
		}
	}
	if v := os.Getenv("TAKE_PROFIT_PERCENTAGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.TakeProfitPercentage = f
		}
	}
	if v := os.Getenv("STOP_LOSS_PERCENTAGE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.StopLossPercentage = f
		}
	}
	if v := os.Getenv("DRY_RUN"); v != "" {
		cfg.Trading.DryRun = isTrue(v)
	}

	// Defaults
	if cfg.QuoteAsset == "" {
		cfg.QuoteAsset = "USDC"
	}
	if cfg.DataAreaRootDir == "" {
		cfg.DataAreaRootDir = "data"
	}
	if cfg.Strategy.Name == "" {
		cfg.Strategy.Name = "ta"
	}
	if cfg.Trading.TradeThreshold == 0 {
		cfg.Trading.TradeThreshold = 10
	}
	if cfg.Trading.TakeProfitPercentage == 0 {
		cfg.Trading.TakeProfitPercentage = 10
	}
	if cfg.Trading.StopLossPercentage == 0 {
		cfg.Trading.StopLossPercentage = 10
	}
	if cfg.Journal.Type == "" {
		cfg.Journal.Type = "csv"
	}
	if cfg.Journal.Type == "csv" && cfg.Journal.Dir == "" {
		cfg.Journal.Dir = cfg.DataAreaRootDir + "/journal"
	}
	if cfg.Journal.Type == "sqlite" && cfg.Journal.DBPath == "" {
		cfg.Journal.DBPath = cfg.DataAreaRootDir + "/journal/hunk.db"
	}

	for i, c := range cfg.Currencies {
		cfg.Currencies[i] = strings.ToUpper(strings.TrimSpace(c))
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	if len(c.Currencies) == 0 {
		return fmt.Errorf("currencies is required")
	}
	if c.QuoteAsset == "" {
		return fmt.Errorf("quote_asset is required")
	}
	if c.Trading.TradeThreshold <= 0 {
		return fmt.Errorf("trading.trade_threshold must be positive")
	}
	if c.Trading.TakeProfitPercentage <= 0 {
		return fmt.Errorf("trading.take_profit_percentage must be positive")
	}
	if c.Trading.StopLossPercentage <= 0 {
		return fmt.Errorf("trading.stop_loss_percentage must be positive")
	}
	if c.Strategy.Name != "ta" && c.Strategy.Name != "ta2" {
		return fmt.Errorf("strategy.name must be 'ta' or 'ta2'")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
