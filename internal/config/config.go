// Package config provides configuration management for the journal
// application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/sanjuujosephh/trade-journey-insights-sub000/internal/analytics"
)

// Config holds all application configuration.
type Config struct {
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Store     StoreConfig     `mapstructure:"store"`
	UI        UIConfig        `mapstructure:"ui"`
	Insights  InsightsConfig  `mapstructure:"insights"`

	Credentials Credentials `mapstructure:"-"` // Loaded separately
}

// AnalyticsConfig holds the engine's heuristic constants. Defaults match
// analytics.DefaultConfig; every magic number lives here rather than
// being duplicated at call sites.
type AnalyticsConfig struct {
	StopLossPenaltyWeight    float64 `mapstructure:"stop_loss_penalty_weight"`
	OvertradingThreshold     int     `mapstructure:"overtrading_threshold"`
	OvertradingPenaltyWeight float64 `mapstructure:"overtrading_penalty_weight"`
	OffHoursPenaltyWeight    float64 `mapstructure:"off_hours_penalty_weight"`
	MarketOpen               string  `mapstructure:"market_open"`
	MarketClose              string  `mapstructure:"market_close"`
	SmallPositionMax         float64 `mapstructure:"small_position_max"`
	MediumPositionMax        float64 `mapstructure:"medium_position_max"`
	ReportMaxEntries         int     `mapstructure:"report_max_entries"`
}

// StoreConfig holds persistence configuration.
type StoreConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// InsightsConfig holds narrative-generation configuration.
type InsightsConfig struct {
	Model          string `mapstructure:"model"`
	DefaultCredits int    `mapstructure:"default_credits"`
}

// Credentials holds API credentials.
type Credentials struct {
	OpenAI OpenAICredentials `mapstructure:"openai"`
}

// OpenAICredentials holds OpenAI API credentials.
type OpenAICredentials struct {
	APIKey string `mapstructure:"api_key"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/trade-journal"
	}
	return filepath.Join(home, ".config", "trade-journal")
}

// Load loads configuration from the specified directory. If configDir is
// empty, uses the default config directory. Missing files fall back to
// defaults rather than failing.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}
	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	defaults := analytics.DefaultConfig()
	v.SetDefault("analytics.stop_loss_penalty_weight", defaults.StopLossPenaltyWeight)
	v.SetDefault("analytics.overtrading_threshold", defaults.OvertradingThreshold)
	v.SetDefault("analytics.overtrading_penalty_weight", defaults.OvertradingPenaltyWeight)
	v.SetDefault("analytics.off_hours_penalty_weight", defaults.OffHoursPenaltyWeight)
	v.SetDefault("analytics.market_open", defaults.MarketOpen)
	v.SetDefault("analytics.market_close", defaults.MarketClose)
	v.SetDefault("analytics.small_position_max", defaults.SmallPositionMax)
	v.SetDefault("analytics.medium_position_max", defaults.MediumPositionMax)
	v.SetDefault("analytics.report_max_entries", defaults.ReportMaxEntries)
	v.SetDefault("store.path", filepath.Join(configDir, "journal.db"))
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02 Jan 2006")
	v.SetDefault("insights.model", "gpt-4o-mini")
	v.SetDefault("insights.default_credits", 5)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Credentials.OpenAI.APIKey = v
	}
	if v := os.Getenv("JOURNAL_DB_PATH"); v != "" {
		cfg.Store.Path = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Analytics.StopLossPenaltyWeight < 0 || c.Analytics.StopLossPenaltyWeight > 100 {
		return fmt.Errorf("stop_loss_penalty_weight must be between 0 and 100")
	}
	if c.Analytics.OvertradingThreshold < 1 {
		return fmt.Errorf("overtrading_threshold must be at least 1")
	}
	if c.Analytics.SmallPositionMax <= 0 || c.Analytics.MediumPositionMax <= c.Analytics.SmallPositionMax {
		return fmt.Errorf("position size bucket limits must be increasing and positive")
	}
	if c.Insights.DefaultCredits < 0 {
		return fmt.Errorf("default_credits must be non-negative")
	}
	return nil
}

// EngineConfig maps the loaded analytics settings onto the engine's
// Config, keeping the fixed annualization assumption.
func (c *Config) EngineConfig() analytics.Config {
	engine := analytics.DefaultConfig()
	engine.StopLossPenaltyWeight = c.Analytics.StopLossPenaltyWeight
	engine.OvertradingThreshold = c.Analytics.OvertradingThreshold
	engine.OvertradingPenaltyWeight = c.Analytics.OvertradingPenaltyWeight
	engine.OffHoursPenaltyWeight = c.Analytics.OffHoursPenaltyWeight
	engine.MarketOpen = c.Analytics.MarketOpen
	engine.MarketClose = c.Analytics.MarketClose
	engine.SmallPositionMax = c.Analytics.SmallPositionMax
	engine.MediumPositionMax = c.Analytics.MediumPositionMax
	engine.ReportMaxEntries = c.Analytics.ReportMaxEntries
	return engine
}
