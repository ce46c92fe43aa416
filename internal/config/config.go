// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config holds all branchtitle configuration.
type Config struct {
	Sessions SessionsConfig `koanf:"sessions"`
	Naming   NamingConfig   `koanf:"naming"`
	Git      GitConfig      `koanf:"git"`
	Log      LogConfig      `koanf:"log"`
}

// SessionsConfig controls where session logs live and how they are scanned.
type SessionsConfig struct {
	// Root is the projects directory containing one subdirectory per project.
	Root string `koanf:"root"`

	// AgentPrefix marks session files that belong to background agent
	// sessions. Files whose stem starts with this prefix are never listed
	// or renamed.
	AgentPrefix string `koanf:"agent_prefix"`

	// ListTimeout bounds a full listing scan.
	ListTimeout Duration `koanf:"list_timeout"`
}

// NamingConfig controls session name derivation.
type NamingConfig struct {
	// TrunkBranch is the branch that never triggers a rename.
	TrunkBranch string `koanf:"trunk_branch"`
}

// GitConfig controls the branch-query subprocess.
type GitConfig struct {
	// Timeout bounds the git invocation.
	Timeout Duration `koanf:"timeout"`
}

// LogConfig controls the diagnostic log file.
type LogConfig struct {
	Path  string `koanf:"path"`
	Level string `koanf:"level"`
}

// Default returns config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Sessions.Root == "" {
		home, _ := os.UserHomeDir()
		cfg.Sessions.Root = filepath.Join(home, ".claude", "projects")
	}
	if cfg.Sessions.AgentPrefix == "" {
		cfg.Sessions.AgentPrefix = "agent-"
	}
	if cfg.Sessions.ListTimeout == 0 {
		cfg.Sessions.ListTimeout = Duration(10 * time.Second)
	}
	if cfg.Naming.TrunkBranch == "" {
		cfg.Naming.TrunkBranch = "main"
	}
	if cfg.Git.Timeout == 0 {
		cfg.Git.Timeout = Duration(5 * time.Second)
	}
	if cfg.Log.Path == "" {
		cfg.Log.Path = "/tmp/branchtitle.log"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Sessions.Root == "" {
		return fmt.Errorf("sessions.root must not be empty")
	}
	if c.Sessions.ListTimeout.Duration() <= 0 {
		return fmt.Errorf("sessions.list_timeout must be positive, got %s", c.Sessions.ListTimeout.Duration())
	}
	if c.Naming.TrunkBranch == "" {
		return fmt.Errorf("naming.trunk_branch must not be empty")
	}
	if c.Git.Timeout.Duration() <= 0 {
		return fmt.Errorf("git.timeout must be positive, got %s", c.Git.Timeout.Duration())
	}
	return nil
}
