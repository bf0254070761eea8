/*
Package config provides configuration management for the claude-clear
application. It handles environment variables, default path resolution and
validation of all configuration parameters.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Environment Variables:

	CLAUDE_CLEAR_PATH            Path to the Claude configuration file
	CLAUDE_CLEAR_KEEP_BACKUPS    Number of backups kept by "backups --prune"
	CLAUDE_CLEAR_NO_COLOR        Disable colored output
	CLAUDE_CLEAR_VERBOSE         Verbosity level (number of 'v's)

Default Values:

	Path:        ~/.claude.json
	KeepBackups: 5
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultKeepBackups is the number of backup files preserved by a prune.
const DefaultKeepBackups = 5

// Config holds all configuration parameters for the application.
type Config struct {
	// Path is the location of the Claude configuration file.
	Path string

	// KeepBackups is the number of most recent backups kept when pruning.
	KeepBackups int

	// NoColor disables colored output.
	NoColor bool

	// Verbose sets the verbosity level.
	Verbose int
}

// Load reads configuration from environment variables and validates it.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("keep_backups", DefaultKeepBackups)
	v.SetDefault("no_color", false)
	v.SetDefault("verbose", 0)

	v.SetEnvPrefix("CLAUDE_CLEAR")
	v.AutomaticEnv()

	v.BindEnv("path")
	v.BindEnv("keep_backups")
	v.BindEnv("no_color")
	v.BindEnv("verbose")

	// Verbosity may be given as a string of 'v's (CLAUDE_CLEAR_VERBOSE=vv).
	if verboseStr := v.GetString("verbose"); strings.Contains(verboseStr, "v") {
		v.Set("verbose", strings.Count(verboseStr, "v"))
	}

	cfg := Config{
		Path:        v.GetString("path"),
		KeepBackups: v.GetInt("keep_backups"),
		NoColor:     v.GetBool("no_color"),
		Verbose:     v.GetInt("verbose"),
	}

	if cfg.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		cfg.Path = filepath.Join(home, ".claude.json")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("configuration path must not be empty")
	}

	if c.KeepBackups < 1 {
		return fmt.Errorf("keep backups must be at least 1")
	}

	if c.Verbose < 0 {
		return fmt.Errorf("verbosity must be non-negative")
	}

	return nil
}

// String returns a string representation of the configuration.
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{Path: %s, KeepBackups: %d, NoColor: %v, Verbose: %d}",
		c.Path, c.KeepBackups, c.NoColor, c.Verbose,
	)
}
