package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string `yaml:"provider"`      // "yahoo", "csv" or "mock"
		DataDir      string `yaml:"data_dir"`      // csv provider: directory of <SYMBOL>.csv files
		SymbolFile   string `yaml:"symbol_file"`   // universe CSV
		SymbolSuffix string `yaml:"symbol_suffix"` // exchange suffix applied for the price source
	} `yaml:"data_source"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Sync struct {
		Workers int  `yaml:"workers"`
		DryRun  bool `yaml:"dry_run"` // compute without persisting
	} `yaml:"sync"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	StateFile string `yaml:"state_file"`
	Proxy     string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
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

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SYMBOL_FILE"); v != "" {
		cfg.DataSource.SymbolFile = v
	}
	if v := os.Getenv("SYNC_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Sync.Workers = n
		}
	}
	if v := os.Getenv("CRON_DAILY"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.SymbolFile == "" {
		cfg.DataSource.SymbolFile = "sources/nifty_total_market.csv"
	}
	if cfg.DataSource.SymbolSuffix == "" {
		cfg.DataSource.SymbolSuffix = ".NS"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/tradesetup.db"
	}
	if cfg.Sync.Workers == 0 {
		cfg.Sync.Workers = 4
	}
	if cfg.Schedule.DailyCron == "" {
		// Weekdays 19:00 IST, after the NSE close and settlement.
		cfg.Schedule.DailyCron = "0 0 19 * * 1-5"
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "data/run_state.json"
	}

	return cfg, nil
}

// Validate checks that all required fields are consistent.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "mock":
	case "csv":
		if c.DataSource.DataDir == "" {
			return fmt.Errorf("data_source.data_dir is required for the csv provider")
		}
	default:
		return fmt.Errorf("data_source.provider must be \"yahoo\", \"csv\" or \"mock\", got %q", c.DataSource.Provider)
	}
	if c.Sync.Workers < 1 {
		return fmt.Errorf("sync.workers must be positive")
	}
	if !c.Sync.DryRun && c.Database.SQLitePath == "" {
		return fmt.Errorf("database.sqlite_path is required unless sync.dry_run is set")
	}
	return nil
}
