package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the log level and output format.
type LogConfig struct {
	Level  string `json:"level,omitempty" yaml:"level,omitempty"`
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// DiscountConfig selects the discount strategy. A non-empty Expression
// builds a rule, a non-zero Rate a custom percentage, otherwise Strategy
// names a built-in discount.
type DiscountConfig struct {
	Strategy   string  `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	Rate       float64 `json:"rate,omitempty" yaml:"rate,omitempty"`
	Expression string  `json:"expression,omitempty" yaml:"expression,omitempty"`
}

// ShippingConfig selects the shipping strategy by name.
type ShippingConfig struct {
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// StorageConfig selects and configures the storage backend.
type StorageConfig struct {
	Driver   string `json:"driver,omitempty" yaml:"driver,omitempty"`
	DSN      string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// BooklyConfig configures order reports.
type BooklyConfig struct {
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
}

// MetricsConfig configures the dispatch counters.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// Config is the application configuration.
type Config struct {
	Log      LogConfig      `json:"log" yaml:"log"`
	Metrics  MetricsConfig  `json:"metrics" yaml:"metrics"`
	Discount DiscountConfig `json:"discount" yaml:"discount"`
	Shipping ShippingConfig `json:"shipping" yaml:"shipping"`
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Bookly   BooklyConfig   `json:"bookly" yaml:"bookly"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "info", Format: "text"},
		Metrics:  MetricsConfig{Namespace: "exam"},
		Discount: DiscountConfig{Strategy: "regular"},
		Shipping: ShippingConfig{Strategy: "standard"},
		Storage:  StorageConfig{Driver: "memory"},
		Bookly:   BooklyConfig{Locale: "es"},
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile loads a configuration from a YAML file.
func LoadFromFile(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", filepath, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if c.Discount.Rate < 0 || c.Discount.Rate > 1 {
		errs = append(errs, fmt.Errorf("discount.rate: %v is outside [0, 1]", c.Discount.Rate))
	}
	if c.Discount.Strategy == "" && c.Discount.Rate == 0 && c.Discount.Expression == "" {
		errs = append(errs, errors.New("discount: no strategy, rate or expression"))
	}
	if c.Shipping.Strategy == "" {
		errs = append(errs, errors.New("shipping.strategy: required"))
	}
	if c.Storage.Driver == "" {
		errs = append(errs, errors.New("storage.driver: required"))
	}
	if c.Bookly.Locale != "" {
		if _, err := language.Parse(c.Bookly.Locale); err != nil {
			errs = append(errs, fmt.Errorf("bookly.locale: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
