package config

import (
	"fmt"
	"path/filepath"

	"github.com/fyrsmithlabs/cc-context-awareness/internal/logging"
)

// DefaultFlagDir is where the runtime scripts drop their per-session flag files.
const DefaultFlagDir = "/tmp"

// Config holds the resolved settings for one CLI invocation.
type Config struct {
	// Global selects ~/.claude instead of ./.claude.
	Global bool `koanf:"global"`

	HomeDir string `koanf:"home_dir"`
	WorkDir string `koanf:"work_dir"`

	// AssetsDir replaces the embedded asset bundle when set.
	AssetsDir string `koanf:"assets_dir"`
	FlagDir   string `koanf:"flag_dir"`

	NoClaudeMD bool `koanf:"no_claude_md"`
	NoSkill    bool `koanf:"no_skill"`

	Logging logging.Config `koanf:"logging"`
}

// Scope returns "global" or "local".
func (c *Config) Scope() string {
	if c.Global {
		return "global"
	}
	return "local"
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	dirs := []struct {
		name, value string
		required    bool
	}{
		{"home_dir", c.HomeDir, true},
		{"work_dir", c.WorkDir, true},
		{"flag_dir", c.FlagDir, true},
		{"assets_dir", c.AssetsDir, false},
	}
	for _, d := range dirs {
		if d.value == "" {
			if d.required {
				return fmt.Errorf("%s is required", d.name)
			}
			continue
		}
		if !filepath.IsAbs(d.value) {
			return fmt.Errorf("%s must be an absolute path, got %q", d.name, d.value)
		}
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}
