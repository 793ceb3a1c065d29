// Package config loads the service configuration from YAML, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/WIIN2602/Farm2Hand/internal/assistant"
	"github.com/WIIN2602/Farm2Hand/internal/widget"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FARM2HAND_"

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Cart      CartConfig      `yaml:"cart"`
	Widget    WidgetConfig    `yaml:"widget"`
	Assistant AssistantConfig `yaml:"assistant"`
	Auth      AuthConfig      `yaml:"auth"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	WidgetPort      int           `yaml:"widget_port"`
	MetricsPort     int           `yaml:"metrics_port"`
	MetricsEnabled  bool          `yaml:"metrics_enabled"`
	MaxSessions     int           `yaml:"max_sessions"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is "sqlite3" or "postgres". Empty serves the built-in seed data.
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Seed   bool   `yaml:"seed"`
}

type CatalogConfig struct {
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

type CartConfig struct {
	ShippingFee decimal.Decimal `yaml:"shipping_fee"`
	// SeedDemoCart starts new sessions with the demo cart.
	SeedDemoCart bool `yaml:"seed_demo_cart"`
}

type WidgetConfig struct {
	Limits widget.Limits `yaml:"limits"`
}

type AssistantConfig struct {
	Enabled      bool               `yaml:"enabled"`
	Provider     assistant.Provider `yaml:"provider"`
	Model        string             `yaml:"model"`
	APIKey       string             `yaml:"api_key"`
	BaseURL      string             `yaml:"base_url"`
	SystemPrompt string             `yaml:"system_prompt"`
	Timeout      time.Duration      `yaml:"timeout"`
	QueueSize    int                `yaml:"queue_size"`
	History      int                `yaml:"history"`
}

type AuthConfig struct {
	// JWTSecret enables bearer authentication on the API when set.
	JWTSecret string `yaml:"jwt_secret"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			WidgetPort:      8090,
			MetricsPort:     9090,
			MetricsEnabled:  true,
			MaxSessions:     1024,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{Seed: true},
		Catalog:  CatalogConfig{CacheSize: 64, CacheTTL: 5 * time.Minute},
		Cart:     CartConfig{ShippingFee: decimal.NewFromInt(50)},
		Widget:   WidgetConfig{Limits: widget.DefaultLimits()},
		Assistant: AssistantConfig{
			Provider:     assistant.ProviderOpenAI,
			Model:        "gpt-4o-mini",
			SystemPrompt: "คุณคือผู้ช่วยร้านค้าผลผลิตจากเกษตรกร ตอบสั้น สุภาพ และเป็นภาษาไทย",
			Timeout:      30 * time.Second,
			QueueSize:    32,
			History:      50,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads .env (if present), then the YAML file at path (if non-empty and
// present), then FARM2HAND_* environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	num := func(key string, dst *int) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = n
		}
	}
	flag := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, key, err))
				return
			}
			*dst = b
		}
	}

	num("PORT", &c.Server.Port)
	num("WIDGET_PORT", &c.Server.WidgetPort)
	num("METRICS_PORT", &c.Server.MetricsPort)
	flag("METRICS_ENABLED", &c.Server.MetricsEnabled)
	str("DB_DRIVER", &c.Database.Driver)
	str("DB_DSN", &c.Database.DSN)
	flag("DB_SEED", &c.Database.Seed)
	flag("ASSISTANT_ENABLED", &c.Assistant.Enabled)
	if v, ok := os.LookupEnv(EnvPrefix + "ASSISTANT_PROVIDER"); ok {
		c.Assistant.Provider = assistant.Provider(strings.TrimSpace(v))
	}
	str("ASSISTANT_MODEL", &c.Assistant.Model)
	str("ASSISTANT_BASE_URL", &c.Assistant.BaseURL)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("LOG_LEVEL", &c.Log.Level)
	flag("LOG_DEVELOPMENT", &c.Log.Development)

	if v, ok := os.LookupEnv(EnvPrefix + "SHIPPING_FEE"); ok {
		fee, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%sSHIPPING_FEE: %w", EnvPrefix, err))
		} else {
			c.Cart.ShippingFee = fee
		}
	}

	// the provider's conventional key wins over the prefixed one
	if v := os.Getenv(providerKeyEnv[c.Assistant.Provider]); v != "" {
		c.Assistant.APIKey = v
	} else {
		str("ASSISTANT_API_KEY", &c.Assistant.APIKey)
	}

	return errors.Join(errs...)
}

var providerKeyEnv = map[assistant.Provider]string{
	assistant.ProviderOpenAI:       "OPENAI_API_KEY",
	assistant.ProviderGitHubModels: "GITHUB_TOKEN",
	assistant.ProviderAnthropic:    "ANTHROPIC_API_KEY",
}

// Validate checks the configuration for values the service cannot run with.
func (c *Config) Validate() error {
	var errs []error
	for name, port := range map[string]int{
		"server.port":         c.Server.Port,
		"server.widget_port":  c.Server.WidgetPort,
		"server.metrics_port": c.Server.MetricsPort,
	} {
		if port <= 0 || port > 65535 {
			errs = append(errs, fmt.Errorf("%s must be between 1 and 65535, got %d", name, port))
		}
	}
	if c.Server.MaxSessions <= 0 {
		errs = append(errs, fmt.Errorf("server.max_sessions must be positive"))
	}
	switch c.Database.Driver {
	case "":
	case "sqlite3", "postgres":
		if c.Database.DSN == "" {
			errs = append(errs, fmt.Errorf("database.dsn is required for driver %q", c.Database.Driver))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver %q is not supported", c.Database.Driver))
	}
	if c.Cart.ShippingFee.IsNegative() {
		errs = append(errs, fmt.Errorf("cart.shipping_fee must not be negative"))
	}
	if c.Widget.Limits.FeaturedProducts < 0 || c.Widget.Limits.CategoryProducts < 0 || c.Widget.Limits.Orders < 0 {
		errs = append(errs, fmt.Errorf("widget.limits must not be negative"))
	}
	if c.Assistant.Enabled {
		switch {
		case !c.Assistant.Provider.Valid():
			errs = append(errs, fmt.Errorf("assistant.provider %q is not supported", c.Assistant.Provider))
		case c.Assistant.Provider.NeedsKey() && c.Assistant.APIKey == "":
			errs = append(errs, fmt.Errorf("assistant.api_key is required for provider %q", c.Assistant.Provider))
		}
	}
	return errors.Join(errs...)
}
