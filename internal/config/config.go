// Package config loads the gitman configuration from
// ~/.config/gitman/config.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultStagingBranch is the staging branch name used when the config file
// doesn't set one.
const DefaultStagingBranch = "local_commit"

// Config holds the gitman configuration
type Config struct {
	BaseDir       string `toml:"base_dir"`       // directory scanned for repositories
	StagingBranch string `toml:"staging_branch"` // per-repository staging branch name
}

// Default returns the default configuration
func Default() Config {
	return Config{
		BaseDir:       "",
		StagingBranch: DefaultStagingBranch,
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	if len(path) >= 1 && path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gitman", "config.toml"), nil
}

// Load reads config from ~/.config/gitman/config.toml
// Returns Default() if file doesn't exist (no error)
// Returns error only if file exists but is invalid
func Load() (Config, error) {
	path, err := configPath()
	if err != nil {
		return Default(), nil
	}
	return loadFrom(path)
}

func loadFrom(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	if cfg.BaseDir != "" {
		expanded, err := expandPath(cfg.BaseDir)
		if err != nil {
			return Default(), fmt.Errorf("expand base_dir: %w", err)
		}
		cfg.BaseDir = expanded
	}
	if cfg.StagingBranch == "" {
		cfg.StagingBranch = DefaultStagingBranch
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if err := ValidatePath(c.BaseDir, "base_dir"); err != nil {
		return err
	}
	// Branch names with path separators or refspec characters would leak
	// into every git invocation; reject them up front.
	for _, r := range c.StagingBranch {
		switch r {
		case ' ', ':', '~', '^', '?', '*', '[', '\\':
			return fmt.Errorf("invalid staging_branch %q: contains %q", c.StagingBranch, r)
		}
	}
	return nil
}

const defaultConfig = `# gitman configuration

# Directory scanned for git repositories (immediate children only).
# Must be an absolute path or start with ~ (no relative paths like "." or "..")
# Examples: "/Users/you/dev" or "~/dev"
# base_dir = "~/dev"

# Name of the per-repository staging branch. Commits are drafted here and
# moved onto the mainline branch with "gitman move".
staging_branch = "local_commit"
`

// Init creates a default config file at ~/.config/gitman/config.toml
// If force is true, overwrites existing file
// Returns the path to the created file
func Init(force bool) (string, error) {
	path, err := configPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", err
	}

	return path, nil
}

// Path returns the config file location for display purposes.
func Path() string {
	path, err := configPath()
	if err != nil {
		return ""
	}
	return path
}
