// Package config loads the generator settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"ariss-articles/internal/datetext"
	"ariss-articles/internal/source"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the complete generator configuration.
type Config struct {
	Newsletter NewsletterConfig `yaml:"newsletter"`
	Render     RenderConfig     `yaml:"render"`
	Parser     ParserConfig     `yaml:"parser"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// NewsletterConfig says where the newsletter comes from.
type NewsletterConfig struct {
	File    string        `yaml:"file"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// RenderConfig is the display zone and locale of the articles.
type RenderConfig struct {
	Timezone string `yaml:"timezone"`
	Locale   string `yaml:"locale"`
}

// ParserConfig lists the locales accepted in schedule date text.
type ParserConfig struct {
	DateLocales []string `yaml:"date_locales"`
}

type ServerConfig struct {
	Port            string        `yaml:"port"`
	Redis           string        `yaml:"redis"`
	Badger          string        `yaml:"badger"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Newsletter: NewsletterConfig{
			File:    "arissnews.txt",
			URL:     source.DefaultURL,
			Timeout: 10 * time.Second,
		},
		Render: RenderConfig{
			Timezone: "Europe/Paris",
			Locale:   "fr_FR",
		},
		Parser: ParserConfig{
			DateLocales: []string{"en_US", "fr_FR"},
		},
		Server: ServerConfig{
			Port:            "8080",
			Redis:           "localhost:6379",
			Badger:          "./badger-data",
			RefreshInterval: 6 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the generator cannot use.
func (c *Config) Validate() error {
	checks := []error{
		validation.ValidateStruct(&c.Newsletter,
			validation.Field(&c.Newsletter.File, validation.Required),
			validation.Field(&c.Newsletter.Timeout, validation.Min(time.Second)),
		),
		validation.ValidateStruct(&c.Render,
			validation.Field(&c.Render.Timezone, validation.Required, validation.By(checkZone)),
			validation.Field(&c.Render.Locale, validation.Required, validation.By(checkLocale)),
		),
		validation.ValidateStruct(&c.Parser,
			validation.Field(&c.Parser.DateLocales, validation.Required, validation.Each(validation.By(checkLocale))),
		),
		validation.ValidateStruct(&c.Server,
			validation.Field(&c.Server.Port, validation.Required),
			validation.Field(&c.Server.RefreshInterval, validation.Min(time.Minute)),
		),
		validation.ValidateStruct(&c.Logging,
			validation.Field(&c.Logging.Level, validation.In("debug", "info", "warn", "error")),
		),
	}

	for _, err := range checks {
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

func checkZone(value any) error {
	name, _ := value.(string)
	if _, err := time.LoadLocation(name); err != nil {
		return fmt.Errorf("unknown time zone %q", name)
	}
	return nil
}

func checkLocale(value any) error {
	code, _ := value.(string)
	_, err := datetext.ParseLocales([]string{code})
	return err
}
