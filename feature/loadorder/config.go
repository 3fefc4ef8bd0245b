package loadorder

import (
	"fmt"
	"time"

	"loadorder-manager/core/games"
)

// Config holds configuration for the load order feature.
type Config struct {
	// Game selects the native plugin list seeded into new profiles.
	Game string `mapstructure:"game" default:"skyrimse"`
	// Profile is the profile used when none is given.
	Profile string `mapstructure:"profile" default:"default"`
	// DebounceMS is the quiet window after lock changes, in milliseconds.
	DebounceMS int `mapstructure:"debounce_ms" default:"2000"`
	// ExcludedExtension is the plugin class that does not occupy a load index.
	ExcludedExtension string `mapstructure:"excluded_extension" default:".esl"`
	// PublishPrefix is the object key prefix for published plugins.txt files.
	PublishPrefix string `mapstructure:"publish_prefix" default:"profiles"`
	// PublishEnabled uploads every published order to object storage.
	PublishEnabled bool `mapstructure:"publish_enabled" default:"false"`
}

// QuietWindow returns the debounce interval.
func (c Config) QuietWindow() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Validate checks the configured game and debounce interval.
func (c Config) Validate() error {
	if _, ok := games.Lookup(c.Game); !ok {
		return fmt.Errorf("unknown game %q, expected one of %v", c.Game, games.IDs())
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMS)
	}
	if c.Profile == "" {
		return fmt.Errorf("profile must not be empty")
	}
	return nil
}
