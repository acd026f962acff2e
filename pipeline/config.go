// CLAUDE:SUMMARY Pipeline configuration structs with YAML loader and defaults.
package pipeline

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all pipeline configuration. Directories and the store
// location always come from here; there is no implicit process-wide
// path state.
type Config struct {
	// DBPath is the SQLite database location (default: "cesta.db").
	DBPath string `yaml:"db_path"`

	// Product is the label persisted with every price observation
	// (default: "Cesta Básica", since all sources report the aggregate basket).
	Product string `yaml:"product"`

	// Sources lists the document directories to ingest, one per agency.
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig describes one publishing agency's document directory.
type SourceConfig struct {
	// Name is the origin tag persisted with each observation ("procon",
	// "dieese", ...).
	Name string `yaml:"name"`

	// Dir is the directory holding this source's downloaded bulletins.
	Dir string `yaml:"dir"`

	// Match is a case-insensitive substring a filename must contain to
	// belong to this source. Empty matches every supported file; used when
	// several agencies share a download directory.
	Match string `yaml:"match"`

	// Location, when set, marks a fixed-region source: every observation
	// carries this label instead of the per-row entity name.
	Location string `yaml:"location"`
}

// Defaults fills zero values in place.
func (c *Config) Defaults() {
	if c.DBPath == "" {
		c.DBPath = "cesta.db"
	}
	if c.Product == "" {
		c.Product = "Cesta Básica"
	}
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Defaults()
	return cfg, nil
}
