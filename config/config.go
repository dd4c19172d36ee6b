// Package config loads the lemmix configuration from a YAML file, .env files
// and LEMMIX_ environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "LEMMIX"
	DefaultFile    = "lemmix.yaml"
	DefaultEnvFile = ".env"
)

type Config struct {
	// Maximum number of review rows scored
	CapRows int `mapstructure:"cap_rows" validate:"gte=0"`

	NegativityThreshold float64 `mapstructure:"negativity_threshold" validate:"gte=-1,lte=1"`

	OutputDir string `mapstructure:"output_dir" validate:"required"`

	// lexicon, prose or spacy
	Capability string `mapstructure:"capability" validate:"oneof=lexicon prose spacy"`

	Spacy  SpacyConfig  `mapstructure:"spacy"`
	Render RenderConfig `mapstructure:"render"`
	Fetch  FetchConfig  `mapstructure:"fetch"`
	Log    LogConfig    `mapstructure:"log"`
}

type SpacyConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

type RenderConfig struct {
	// PNG enables the PNG copy of dependency diagrams
	PNG bool `mapstructure:"png"`
}

type FetchConfig struct {
	Timeout   time.Duration `mapstructure:"timeout" validate:"gt=0"`
	UserAgent string        `mapstructure:"user_agent"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`

	// File enables logging to a rotated file instead of stderr
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=1"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cap_rows", 1000)
	v.SetDefault("negativity_threshold", -0.3)
	v.SetDefault("output_dir", ".")
	v.SetDefault("capability", "lexicon")

	v.SetDefault("spacy.base_url", "http://localhost:8000/api")
	v.SetDefault("spacy.timeout", 30*time.Second)

	v.SetDefault("render.png", true)

	v.SetDefault("fetch.timeout", 30*time.Second)
	v.SetDefault("fetch.user_agent", "lemmix/1.0")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
}

// Load reads the config file at path and the environment. An empty path
// looks for lemmix.yaml in the current directory; a missing default file is
// not an error, a missing explicit file is. Variables from a .env file in
// the current directory are loaded first and never override the process
// environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DefaultEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !isNotFound(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

// Default returns the configuration without file or environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// defaults always decode
	_ = v.Unmarshal(&cfg)
	return &cfg
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
