package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration loaded from environment variables
// and an optional config file named by CONFIG_FILE.
type Config struct {
	Port              string
	DatabaseURL       string
	RedisURL          string
	CarrySecret       string
	RequireCarryToken bool
	SessionTTL        time.Duration
	StaticDir         string
	CORSOrigins       string
	LogLevel          string
	LogFile           string
	Dev               bool
}

// Load reads configuration. Environment variables override the config file,
// which overrides the defaults. Empty DATABASE_URL, REDIS_URL and
// CARRY_SECRET switch the matching feature off.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "8009")
	v.SetDefault("database_url", "")
	v.SetDefault("redis_url", "")
	v.SetDefault("carry_secret", "")
	v.SetDefault("require_carry_token", false)
	v.SetDefault("session_ttl", "1h")
	v.SetDefault("static_dir", "")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("dev", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path := v.GetString("config_file"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		Port:              v.GetString("port"),
		DatabaseURL:       v.GetString("database_url"),
		RedisURL:          v.GetString("redis_url"),
		CarrySecret:       v.GetString("carry_secret"),
		RequireCarryToken: v.GetBool("require_carry_token"),
		SessionTTL:        v.GetDuration("session_ttl"),
		StaticDir:         v.GetString("static_dir"),
		CORSOrigins:       v.GetString("cors_origins"),
		LogLevel:          v.GetString("log_level"),
		LogFile:           v.GetString("log_file"),
		Dev:               v.GetBool("dev"),
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("session_ttl must be positive, got %q", v.GetString("session_ttl"))
	}
	if cfg.RequireCarryToken && cfg.CarrySecret == "" {
		return nil, fmt.Errorf("require_carry_token needs carry_secret")
	}
	return cfg, nil
}
