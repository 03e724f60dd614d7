// Package config loads application configuration from a YAML file,
// applies environment variable overrides, and fills in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable constants of the simulation.
type Rules struct {
	PeriodDays          int     `yaml:"period_days"`
	DaysPerMonth        int     `yaml:"days_per_month"`
	MaxDay              int     `yaml:"max_day"`
	StartingFunds       float64 `yaml:"starting_funds"`
	MonthlyInterestRate float64 `yaml:"monthly_interest_rate"`
	RentPerMonth        float64 `yaml:"rent_per_month"`
	PenaltyFine         float64 `yaml:"penalty_fine"`
	ProfitPerDay        float64 `yaml:"profit_per_day"`
	CreditStep          float64 `yaml:"credit_step"`
	CreditMax           float64 `yaml:"credit_max"`
}

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   int64  `yaml:"chat_id"`
	} `yaml:"telegram"`
	Rules Rules `yaml:"rules"`
}

// Load reads config from a YAML file, then applies environment
// variable overrides. A missing file is not an error; defaults apply.
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
	if v := os.Getenv("WGAME_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("WGAME_SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("WGAME_TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("WGAME_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/warehouse_game.db"
	}
	cfg.Rules = withRuleDefaults(cfg.Rules)

	return cfg, nil
}

// DefaultRules returns the classroom rule set.
func DefaultRules() Rules {
	return withRuleDefaults(Rules{})
}

func withRuleDefaults(r Rules) Rules {
	if r.PeriodDays == 0 {
		r.PeriodDays = 10
	}
	if r.DaysPerMonth == 0 {
		r.DaysPerMonth = 30
	}
	if r.MaxDay == 0 {
		r.MaxDay = 999999999
	}
	if r.StartingFunds == 0 {
		r.StartingFunds = 2100
	}
	if r.MonthlyInterestRate == 0 {
		r.MonthlyInterestRate = 0.042
	}
	if r.RentPerMonth == 0 {
		r.RentPerMonth = 900
	}
	if r.PenaltyFine == 0 {
		r.PenaltyFine = 60
	}
	if r.ProfitPerDay == 0 {
		r.ProfitPerDay = 120
	}
	if r.CreditStep == 0 {
		r.CreditStep = 300
	}
	if r.CreditMax == 0 {
		r.CreditMax = 9900
	}
	return r
}

// Validate checks that the rule set is usable.
func (c *Config) Validate() error {
	r := c.Rules
	if r.PeriodDays <= 0 {
		return fmt.Errorf("rules.period_days must be positive")
	}
	if r.DaysPerMonth <= 0 || r.DaysPerMonth%r.PeriodDays != 0 {
		return fmt.Errorf("rules.days_per_month must be a positive multiple of period_days")
	}
	if r.MonthlyInterestRate < 0 || r.MonthlyInterestRate >= 1 {
		return fmt.Errorf("rules.monthly_interest_rate must be in [0, 1)")
	}
	if r.CreditStep <= 0 || r.CreditMax < r.CreditStep {
		return fmt.Errorf("rules.credit_step/credit_max are inconsistent")
	}
	if r.MaxDay <= r.PeriodDays {
		return fmt.Errorf("rules.max_day must exceed period_days")
	}
	return nil
}
