// Package config loads daemon configuration through Viper and builds the
// logger from it.
package config

import (
	"fmt"
	"time"

	"github.com/HerbHall/dockpulse/internal/notify"
	"github.com/spf13/viper"
)

// Config is the fully-resolved daemon configuration. It is constructed
// once at startup and passed by reference; no package reads configuration
// ambiently.
type Config struct {
	// Server is the host label used in notification subjects and bodies.
	Server       string               `mapstructure:"server"`
	Containers   []string             `mapstructure:"containers"`
	PollInterval time.Duration        `mapstructure:"poll_interval"`
	ProbeTimeout time.Duration        `mapstructure:"probe_timeout"`
	StateFile    string               `mapstructure:"state_file"`
	Listen       string               `mapstructure:"listen"` // ops endpoint; empty disables
	History      HistoryConfig        `mapstructure:"history"`
	Email        notify.EmailConfig   `mapstructure:"email"`
	Webhook      notify.WebhookConfig `mapstructure:"webhook"`
	Logging      LoggingConfig        `mapstructure:"logging"`
}

// HistoryConfig configures the transition history database.
type HistoryConfig struct {
	Path                string        `mapstructure:"path"` // empty disables history
	RetentionPeriod     time.Duration `mapstructure:"retention_period"`
	MaintenanceInterval time.Duration `mapstructure:"maintenance_interval"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
// If configPath is empty, dockpulse.yaml is searched in the usual places.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server", "unspecified")
	v.SetDefault("poll_interval", "60s")
	v.SetDefault("probe_timeout", "10s")
	v.SetDefault("state_file", "container_status.json")
	v.SetDefault("listen", "")
	v.SetDefault("history.path", "dockpulse.db")
	v.SetDefault("history.retention_period", "720h")
	v.SetDefault("history.maintenance_interval", "1h")
	v.SetDefault("email.port", 25)
	v.SetDefault("webhook.timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("dockpulse")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/dockpulse")
	}

	// Environment variable support: DP_POLL_INTERVAL=30s
	v.SetEnvPrefix("DP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is fine -- use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration can drive a monitoring cycle.
func (c *Config) Validate() error {
	if len(c.Containers) == 0 {
		return fmt.Errorf("no containers configured")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe_timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.StateFile == "" {
		return fmt.Errorf("state_file must not be empty")
	}
	return nil
}
