// Package config provides configuration management for the journal application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	UI       UIConfig       `mapstructure:"ui"`
	Market   MarketConfig   `mapstructure:"market"`
	Macro    MacroConfig    `mapstructure:"macro"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	TimeFormat   string `mapstructure:"time_format"`
}

// MarketConfig holds market-analysis configuration.
type MarketConfig struct {
	// Assets are the symbols shown by default in the band calculator.
	Assets []string `mapstructure:"assets"`
	// Indices are the CME index symbols for settlement limit bands.
	Indices []string `mapstructure:"indices"`
}

// MacroConfig holds macro-schedule configuration.
type MacroConfig struct {
	// Timezone is the fixed reference zone macro times are read in.
	// All catalog times are wall-clock values in this zone.
	Timezone string `mapstructure:"timezone"`
	// Upcoming is how many future macros the countdown shows.
	Upcoming int `mapstructure:"upcoming"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/ict-journal"
	}
	return filepath.Join(home, ".config", "ict-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := writeTemplate(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("database.path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)
	v.SetDefault("logging.file", true)
	v.SetDefault("logging.file_path", filepath.Join(configDir, "logs", "journal.log"))
	v.SetDefault("logging.max_size", 50)
	v.SetDefault("logging.max_backups", 5)
	v.SetDefault("logging.max_age", 30)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "2006-01-02")
	v.SetDefault("ui.time_format", "15:04:05")
	v.SetDefault("market.assets", []string{
		"XAUUSD", "BTCUSD", "SOLUSD", "ETHUSD", "USOIL",
		"NAS100", "SPX500", "US30", "XRPUSD",
	})
	v.SetDefault("market.indices", []string{"NAS100", "SPX500", "US30"})
	v.SetDefault("macro.timezone", "America/New_York")
	v.SetDefault("macro.upcoming", 5)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("ICT_JOURNAL_DB"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("ICT_JOURNAL_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("ICT_JOURNAL_TZ"); v != "" {
		cfg.Macro.Timezone = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	if c.Macro.Upcoming < 1 || c.Macro.Upcoming > 50 {
		return fmt.Errorf("macro.upcoming must be between 1 and 50")
	}

	if c.Macro.Timezone != "" {
		if _, err := time.LoadLocation(c.Macro.Timezone); err != nil {
			return fmt.Errorf("invalid macro.timezone: %w", err)
		}
	}

	return nil
}

// Location returns the configured macro reference zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Macro.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
