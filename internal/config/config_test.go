package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected addr default: %q", cfg.Server.Addr)
	}
	if cfg.Rules.PeriodDays != 10 || cfg.Rules.StartingFunds != 2100 {
		t.Errorf("unexpected rule defaults: %+v", cfg.Rules)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  addr: ":9000"
rules:
  rent_per_month: 1200
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("WGAME_ADDR", ":7000")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("env override lost: %q", cfg.Server.Addr)
	}
	if cfg.Rules.RentPerMonth != 1200 {
		t.Errorf("file value lost: %v", cfg.Rules.RentPerMonth)
	}
	if cfg.Rules.PenaltyFine != 60 {
		t.Errorf("default not applied alongside file values: %v", cfg.Rules.PenaltyFine)
	}
}

func TestValidateRejectsBrokenRules(t *testing.T) {
	cfg := &Config{Rules: DefaultRules()}
	cfg.Rules.DaysPerMonth = 25 // not a multiple of the period
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for days_per_month")
	}

	cfg = &Config{Rules: DefaultRules()}
	cfg.Rules.MonthlyInterestRate = 1.5
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for interest rate")
	}
}
