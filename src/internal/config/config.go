// Package config loads bibentry settings from an optional YAML file and
// BIBENTRY_* environment variables.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// Prompt modes.
const (
	PromptAuto   = "auto"
	PromptSurvey = "survey"
	PromptPlain  = "plain"
)

// Config holds the settings shared by all commands.
type Config struct {
	// Output is the result format: text, yaml or json.
	Output string `mapstructure:"output" yaml:"output"`

	// StateFile is where start/submit/show keep an in-progress entry.
	StateFile string `mapstructure:"state_file" yaml:"state_file"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level"`

	// Prompt selects the interactive driver: auto, survey or plain.
	Prompt string `mapstructure:"prompt" yaml:"prompt"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Output:    OutputText,
		StateFile: ".bibentry-state.yaml",
		LogLevel:  "warn",
		Prompt:    PromptAuto,
	}
}

// Load reads cfgFile, or bibentry.yaml from the working directory or
// ~/.config/bibentry when cfgFile is empty. A missing default config file is
// not an error.
func Load(cfgFile string) (Config, error) {
	v := viper.New()
	d := Defaults()
	v.SetDefault("output", d.Output)
	v.SetDefault("state_file", d.StateFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("prompt", d.Prompt)

	v.SetEnvPrefix("BIBENTRY")
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("bibentry")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "bibentry"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Output {
	case OutputText, OutputYAML, OutputJSON:
	default:
		return fmt.Errorf("invalid output format %q (want text, yaml or json)", c.Output)
	}
	switch c.Prompt {
	case PromptAuto, PromptSurvey, PromptPlain:
	default:
		return fmt.Errorf("invalid prompt mode %q (want auto, survey or plain)", c.Prompt)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.StateFile == "" {
		return errors.New("state_file must not be empty")
	}
	return nil
}

type ctxKey struct{}

// WithContext attaches cfg to ctx.
func WithContext(ctx context.Context, cfg Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

// FromContext returns the Config attached to ctx, or Defaults.
func FromContext(ctx context.Context) Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(ctxKey{}).(Config); ok {
			return cfg
		}
	}
	return Defaults()
}
