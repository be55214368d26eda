package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the probe configuration loaded from files and environment
// variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	BaseURL               string        `mapstructure:"base_url"`
	RequestTimeoutSeconds int64         `mapstructure:"request_timeout_seconds"`
	RequestTimeout        time.Duration `mapstructure:"-"`

	Lang           string `mapstructure:"client_lang"`
	TipEnabled     bool   `mapstructure:"tip_enabled"`
	CatalogOverlay string `mapstructure:"catalog_overlay"`

	ProbeMethod string `mapstructure:"probe_method"`
	ProbePath   string `mapstructure:"probe_path"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "reqkit-webprobe")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("request_timeout_seconds", 20)
	// client_lang, not lang: AutomaticEnv would otherwise read the LANG
	// locale variable.
	v.SetDefault("client_lang", "zh-cn")
	v.SetDefault("tip_enabled", true)
	v.SetDefault("probe_method", "GET")
	v.SetDefault("probe_path", "/")
	// Registered so AutomaticEnv can satisfy them from env alone.
	v.SetDefault("base_url", "")
	v.SetDefault("catalog_overlay", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.RequestTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid request_timeout_seconds (must be positive seconds)")
	}
	cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second

	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base_url is required")
	}
	if cfg.Lang == "" {
		return nil, fmt.Errorf("lang is required")
	}

	return &cfg, nil
}
