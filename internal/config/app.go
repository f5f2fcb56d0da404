package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/finkit/finproj/internal/domain"
	"github.com/finkit/finproj/internal/locale"
	"github.com/finkit/finproj/internal/logging"
)

// EnvPrefix prefixes every environment variable read by LoadApp
const EnvPrefix = "FINPROJ"

// DefaultAppConfigFile is read from the working directory when no path is given
const DefaultAppConfigFile = "finproj.yaml"

// AppConfig represents the application settings of the CLI and HTTP server
type AppConfig struct {
	Server  ServerConfig            `yaml:"server" envconfig:"SERVER"`
	Logging logging.Config          `yaml:"logging" envconfig:"LOG"`
	Locale  string                  `yaml:"locale" envconfig:"LOCALE"`
	Rules   domain.CalculationRules `yaml:"rules" envconfig:"RULES"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	MaxBodyBytes    int64           `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// Address returns the listen address for the server
func (s ServerConfig) Address() string {
	return fmt.Sprintf(":%d", s.Port)
}

// DefaultAppConfig returns the built-in settings
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   40,
			},
		},
		Logging: logging.DefaultConfig(),
		Locale:  locale.DefaultTag,
		Rules:   domain.DefaultCalculationRules(),
	}
}

// LoadApp builds the settings from defaults, then the YAML file, then the
// environment (FINPROJ_*). An explicit path must exist; the default file is
// optional.
func LoadApp(path string) (*AppConfig, error) {
	cfg := DefaultAppConfig()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultAppConfigFile); err == nil {
			file = DefaultAppConfigFile
		}
	}
	if file != "" {
		if err := loadAppFile(file, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.Rules = cfg.Rules.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func loadAppFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	// tax tables given in the file replace the defaults wholesale
	cfg.Rules.Tax = domain.TaxRules{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse YAML %s: %w", path, err)
	}
	return nil
}

// Validate checks the settings
func (c *AppConfig) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimit.Enabled && (c.Server.RateLimit.RPS <= 0 || c.Server.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive when enabled")
	}
	if _, err := locale.Lookup(c.Locale); err != nil {
		return err
	}
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("rules: %w", err)
	}
	return nil
}
