package config

import (
	"fmt"
	"os"

	"gazette/models"

	"github.com/BurntSushi/toml"
)

// SourcesConfig is the top-level sources configuration
type SourcesConfig struct {
	// IANA timezone name used for "today" filtering and display
	Timezone string `toml:"timezone"`

	Sources []models.Source `toml:"sources"`
}

const DefaultTimezone = "Australia/Brisbane"

func LoadSources(path string) (*SourcesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading sources file: %w", err)
	}

	var config SourcesConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing sources file: %w", err)
	}

	if config.Timezone == "" {
		config.Timezone = DefaultTimezone
	}

	return &config, nil
}

// SaveSources writes the configuration back to disk. Used by the sources
// management commands.
func SaveSources(path string, config *SourcesConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating sources file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(config); err != nil {
		return fmt.Errorf("error encoding sources file: %w", err)
	}

	return nil
}
