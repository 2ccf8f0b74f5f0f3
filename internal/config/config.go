// Package config handles global configuration and storage path resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/omnisnip/config.yml.
type GlobalConfig struct {
	SnippetsDir string `yaml:"snippets_dir,omitempty"` // Overrides the default storage directory
	Editor      string `yaml:"editor,omitempty"`       // Preferred editor for snippet code
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "omnisnip"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// DefaultDirName is the dot-directory under the user's home that
	// holds the snippet collection by default.
	DefaultDirName = ".omnisnip"
	// CacheDirName is the directory inside the storage dir holding the
	// rebuildable search index.
	CacheDirName = "cache"
	// IndexDBFile is the SQLite search index file name.
	IndexDBFile = "index.db"
	// EnvDir is the environment variable overriding the storage directory.
	EnvDir = "OMNISNIP_DIR"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/omnisnip/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.SnippetsDir != "" {
		cfg.SnippetsDir = ExpandTilde(cfg.SnippetsDir)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// Save writes the global configuration file, creating its directory if
// needed.
func (c *GlobalConfig) Save() error {
	path := GlobalConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config path")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding global config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing global config: %w", err)
	}

	globalConfigCache = nil
	return nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// DefaultDir returns the default storage directory, ~/.omnisnip.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultDirName
	}
	return filepath.Join(home, DefaultDirName)
}

// ResolveDir resolves the storage directory with the precedence:
// explicit flag value, OMNISNIP_DIR environment variable, snippets_dir
// from global config, then the default ~/.omnisnip.
func ResolveDir(flagValue string) string {
	if flagValue != "" {
		return ExpandTilde(flagValue)
	}
	if env := os.Getenv(EnvDir); env != "" {
		return ExpandTilde(env)
	}
	cfg, err := LoadGlobalConfig()
	if err == nil && cfg.SnippetsDir != "" {
		return cfg.SnippetsDir
	}
	return DefaultDir()
}

// CachePath returns the cache directory inside the storage directory.
func CachePath(dir string) string {
	return filepath.Join(dir, CacheDirName)
}

// IndexDBPath returns the path of the SQLite search index.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, CacheDirName, IndexDBFile)
}

// ExpandTilde expands a leading ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
