// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

var (
	// RootSettingsFile is the settings file read when --settings is not set
	RootSettingsFile = filepath.Join(home(), ".smap", "config.yaml")

	// EnvPrefix prefixes every environment variable read, eg SMAP_STORE
	EnvPrefix = "SMAP"
)

// DumpConfig is the sections printed by smap -dump
type DumpConfig struct {
	// list each object's segments onto the root
	Segments bool `mapstructure:"segments"`

	// list each object's mismatch regions
	Mismatches bool `mapstructure:"mismatches"`

	// print every object's fields in full
	Raw bool `mapstructure:"raw"`
}

// FASTAConfig is for writing assembled DNA
type FASTAConfig struct {
	// bases per line, zero for a single line
	LineWidth int `mapstructure:"line-width"`
}

// Config is the root-level settings struct and is a mix
// of settings available in the settings file and those
// available from the command line
type Config struct {
	// path to the YAML object store
	Store string `mapstructure:"store"`

	// paths to FASTA files with the objects' DNA
	DNA []string `mapstructure:"dna"`

	// whether to log objects left out of a map
	Verbose bool `mapstructure:"verbose"`

	// dump settings
	Dump DumpConfig `mapstructure:"dump"`

	// FASTA output settings
	FASTA FASTAConfig `mapstructure:"fasta"`
}

// SetDefaults registers the default value of every setting with Viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("dump.segments", true)
	v.SetDefault("dump.mismatches", true)
	v.SetDefault("dump.raw", false)
	v.SetDefault("fasta.line-width", 60)
}

// New returns a new Config struct populated by Viper settings
// (either from the settings file) and/or command line arguments
func New() (*Config, error) {
	return From(viper.GetViper())
}

// From unmarshals a Config from v.
func From(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if c.FASTA.LineWidth < 0 {
		return nil, fmt.Errorf("fasta.line-width must not be negative: %d", c.FASTA.LineWidth)
	}
	return c, nil
}

// Read merges the settings file at path into v. A missing file is only an
// error when it was asked for explicitly.
func Read(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && path == RootSettingsFile {
			return nil
		}
		return fmt.Errorf("failed to find settings file %s: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read settings file %s: %w", path, err)
	}
	return nil
}

func home() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return dir
}
