// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Presence PresenceConfig `yaml:"presence"`
	Chat     ChatConfig     `yaml:"chat"`
	Playback PlaybackConfig `yaml:"playback"`
	Storage  StorageConfig  `yaml:"storage"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig represents HTTP server configuration.
type ServerConfig struct {
	Addr            string `yaml:"addr" default:":8080"`
	ShutdownTimeout int    `yaml:"shutdown_timeout_sec" default:"10" validate:"gte=1,lte=120"`
}

// DatabaseConfig represents the sqlite database configuration.
type DatabaseConfig struct {
	Path string `yaml:"path" default:"lounge.db"`
}

// AuthConfig represents authentication configuration.
type AuthConfig struct {
	AdminToken     string `yaml:"admin_token" validate:"required"`
	SessionTTLHrs  int    `yaml:"session_ttl_hours" default:"72" validate:"gte=1"`
	BcryptCost     int    `yaml:"bcrypt_cost" default:"10" validate:"gte=4,lte=31"`
	AllowAnonymous bool   `yaml:"allow_anonymous" default:"true"`
}

// PresenceConfig represents online-presence configuration.
type PresenceConfig struct {
	TimeoutSec int `yaml:"timeout_sec" default:"30" validate:"gte=5,lte=600"`
	SweepSec   int `yaml:"sweep_sec" default:"10" validate:"gte=1,lte=60"`
}

// ChatConfig represents chat polling configuration.
type ChatConfig struct {
	DefaultLimit int `yaml:"default_limit" default:"50" validate:"gte=1,lte=200"`
	MaxLimit     int `yaml:"max_limit" default:"200" validate:"gte=1,lte=1000"`
}

// PlaybackConfig represents jukebox polling configuration.
type PlaybackConfig struct {
	PollIntervalMs int `yaml:"poll_interval_ms" default:"2000" validate:"gte=250,lte=30000"`
}

// StorageConfig represents object storage configuration.
// Settings are provider specific and decoded by the objstore factory.
type StorageConfig struct {
	Provider string         `yaml:"provider" default:"none" validate:"oneof=none s3"`
	Settings map[string]any `yaml:"settings"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Output string `yaml:"output" default:"stdout"`
	Level  string `yaml:"level" default:"info"`
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values for secrets.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	cfg.overrideFromEnv()

	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return &cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("LOUNGE_ADMIN_TOKEN"); v != "" {
		c.Auth.AdminToken = v
	}
	if v := os.Getenv("LOUNGE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("LOUNGE_S3_ACCESS_KEY"); v != "" {
		if c.Storage.Settings == nil {
			c.Storage.Settings = map[string]any{}
		}
		c.Storage.Settings["access_key"] = v
	}
	if v := os.Getenv("LOUNGE_S3_SECRET_KEY"); v != "" {
		if c.Storage.Settings == nil {
			c.Storage.Settings = map[string]any{}
		}
		c.Storage.Settings["secret_key"] = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	if c.Chat.DefaultLimit > c.Chat.MaxLimit {
		return errors.Newf("chat default_limit (%d) must not exceed max_limit (%d)",
			c.Chat.DefaultLimit, c.Chat.MaxLimit)
	}
	return nil
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Auth.SessionTTLHrs) * time.Hour
}

// PresenceTimeout returns the presence timeout as a duration.
func (c *Config) PresenceTimeout() time.Duration {
	return time.Duration(c.Presence.TimeoutSec) * time.Second
}

// PresenceSweep returns the presence sweep interval as a duration.
func (c *Config) PresenceSweep() time.Duration {
	return time.Duration(c.Presence.SweepSec) * time.Second
}

// PollInterval returns the jukebox poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Playback.PollIntervalMs) * time.Millisecond
}
