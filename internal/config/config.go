package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/salmoriadev/bancodio3.0/internal/id"
)

// FileName is the conventional config file name.
const FileName = "bancodio.yaml"

// Withdrawal count windows accepted by CheckingConfig.WithdrawalWindow.
const (
	WindowLifetime = "lifetime"
	WindowDaily    = "daily"
)

// Config represents the top-level bancodio.yaml configuration.
type Config struct {
	Bank     BankConfig     `yaml:"bank"`
	Checking CheckingConfig `yaml:"checking"`
	Log      LogConfig      `yaml:"log"`
}

// BankConfig identifies the bank.
type BankConfig struct {
	Name   string `yaml:"name"`
	Branch string `yaml:"branch"`
}

// CheckingConfig sets the rules for checking accounts.
type CheckingConfig struct {
	WithdrawalLimit  string `yaml:"withdrawal_limit"` // decimal, e.g. "500.00"
	MaxWithdrawals   int    `yaml:"max_withdrawals"`
	WithdrawalWindow string `yaml:"withdrawal_window"` // "lifetime" or "daily"
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads a bancodio.yaml file from disk. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config matching the bank's built-in rules.
func Default() *Config {
	return &Config{
		Bank: BankConfig{
			Name:   "Banco OO",
			Branch: "0001",
		},
		Checking: CheckingConfig{
			WithdrawalLimit:  "500.00",
			MaxWithdrawals:   3,
			WithdrawalWindow: WindowLifetime,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Validate reports every problem found in cfg.
func (c *Config) Validate() error {
	var errs []error
	if !id.IsDigits(c.Bank.Branch) {
		errs = append(errs, fmt.Errorf("bank.branch %q must be digits", c.Bank.Branch))
	}
	if _, err := c.CheckingLimit(); err != nil {
		errs = append(errs, err)
	}
	if c.Checking.MaxWithdrawals < 1 {
		errs = append(errs, fmt.Errorf("checking.max_withdrawals %d must be at least 1", c.Checking.MaxWithdrawals))
	}
	switch c.Checking.WithdrawalWindow {
	case WindowLifetime, WindowDaily:
	default:
		errs = append(errs, fmt.Errorf("checking.withdrawal_window %q must be %q or %q", c.Checking.WithdrawalWindow, WindowLifetime, WindowDaily))
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format %q must be console or json", c.Log.Format))
	}
	return errors.Join(errs...)
}

// CheckingLimit parses the per-withdrawal limit.
func (c *Config) CheckingLimit() (decimal.Decimal, error) {
	limit, err := decimal.NewFromString(c.Checking.WithdrawalLimit)
	if err != nil {
		return decimal.Zero, fmt.Errorf("checking.withdrawal_limit %q: %w", c.Checking.WithdrawalLimit, err)
	}
	if !limit.IsPositive() {
		return decimal.Zero, fmt.Errorf("checking.withdrawal_limit %q must be positive", c.Checking.WithdrawalLimit)
	}
	return limit, nil
}
