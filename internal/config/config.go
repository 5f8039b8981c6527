package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the runtime configuration for the TaskHub backend.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port     int    `mapstructure:"port"`
	GinMode  string `mapstructure:"gin_mode"`
	LogLevel string `mapstructure:"log_level"`
}

// DatabaseConfig describes the supported database connections.
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"` // postgres, mysql or sqlite
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	Path     string `mapstructure:"path"` // sqlite file path
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	JWTIssuer      string        `mapstructure:"jwt_issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// SchedulerConfig controls the background due-date scan.
type SchedulerConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DueDatesSpec string `mapstructure:"due_dates_spec"`
}

// Load reads configuration from config.yaml (optional) and TASKHUB_*
// environment variables, applying defaults for everything unset.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.log_level", "info")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "taskhub")
	v.SetDefault("database.password", "taskhub")
	v.SetDefault("database.name", "taskhub")
	v.SetDefault("database.path", "taskhub.db")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_issuer", "taskhub")
	v.SetDefault("auth.access_token_ttl", 30*time.Minute)

	v.SetDefault("scheduler.enabled", false)
	v.SetDefault("scheduler.due_dates_spec", "@hourly")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TASKHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the invariants the rest of the application relies on.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("config: unsupported database driver %q", c.Database.Driver)
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: auth.jwt_secret is required")
	}
	if c.Auth.AccessTokenTTL <= 0 {
		return fmt.Errorf("config: auth.access_token_ttl must be positive")
	}
	return nil
}
