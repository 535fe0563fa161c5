// Package config loads settings for the demo programs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix marks environment overrides. A double underscore separates
// nested keys: WYSIWYG_LOG__LEVEL sets log.level.
const EnvPrefix = "WYSIWYG_"

// Config holds the demo settings.
type Config struct {
	// Document is an HTML file loaded into the page. Empty uses a built-in
	// sample.
	Document string `koanf:"document"`

	// Default: "[data-wyg]".
	Selector string `koanf:"selector" validate:"required"`

	// Tools lists enabled tool ids. Empty keeps the editor default.
	Tools []string `koanf:"tools" validate:"dive,required"`

	// Default: 10ms.
	RecheckDelay time.Duration `koanf:"recheck_delay" validate:"gte=0"`

	// Default: 200.
	HistoryLimit int `koanf:"history_limit" validate:"gte=0"`

	// MaxMediaSize caps embedded media files, e.g. "5 MB". Empty means no
	// limit.
	MaxMediaSize string `koanf:"max_media_size"`

	// SystemClipboard binds copy and paste to the OS clipboard.
	SystemClipboard bool `koanf:"system_clipboard"`

	Log Log `koanf:"log"`
}

// Log configures the demo's log file.
type Log struct {
	// Empty disables logging.
	File string `koanf:"file"`

	// Default: "info".
	Level string `koanf:"level" validate:"oneof=debug info warn error"`

	MaxSizeMB int `koanf:"max_size_mb" validate:"gte=0"`
}

// Default returns the settings used when nothing overrides them.
func Default() *Config {
	return &Config{
		Selector:        "[data-wyg]",
		RecheckDelay:    10 * time.Millisecond,
		HistoryLimit:    200,
		SystemClipboard: true,
		Log:             Log{Level: "info"},
	}
}

// Load reads the optional dotenv file, then the YAML file at path, then
// WYSIWYG_ environment overrides, and validates the result. Missing files
// are skipped.
func Load(path, dotenv string) (*Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %s: %w", dotenv, err)
		}
	}

	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.MediaLimit(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// MediaLimit returns MaxMediaSize in bytes, or 0 when unset.
func (c *Config) MediaLimit() (int64, error) {
	if c.MaxMediaSize == "" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(c.MaxMediaSize)
	if err != nil {
		return 0, fmt.Errorf("max_media_size %q: %w", c.MaxMediaSize, err)
	}
	return int64(n), nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
