// Package config loads the roomcal configuration file.
//
// Configuration lives at ~/.config/roomcal/config.toml (or under
// $XDG_CONFIG_HOME when set). Every field is optional; a missing file yields
// the stock defaults, so no setup is required for first use.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/fonts"
)

// appName is the application name used for directories.
const appName = "roomcal"

// DefaultListen is the stock web UI listen address.
const DefaultListen = "localhost:8392"

// Config is the on-disk configuration.
type Config struct {
	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`

	// Theme is the default render theme ("light" or "dark").
	Theme string `toml:"theme"`

	// Listen is the web UI listen address.
	Listen string `toml:"listen"`

	Font Font `toml:"font"`
}

// Font configures glyph asset acquisition.
type Font struct {
	// Candidates overrides the system font search list.
	Candidates []string `toml:"candidates"`

	// DownloadURL overrides the fallback font asset. Empty keeps the stock
	// URL; "off" disables downloading.
	DownloadURL string `toml:"download_url"`

	// DownloadTimeout bounds the fetch, in seconds.
	DownloadTimeout int `toml:"download_timeout"`
}

// DefaultPath returns the configuration file location per the XDG standard.
func DefaultPath() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName, "config.toml")
}

// Load reads the configuration at path, or the default location when path is
// empty. A missing file is not an error; it yields the zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) || path == "" {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	return cfg, nil
}

// ResolveCacheDir returns the cache directory: the configured override, or
// the XDG standard location (~/.cache/roomcal/).
func (c Config) ResolveCacheDir() (string, error) {
	if c.CacheDir != "" {
		return c.CacheDir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// FontConfig merges the configured font settings over the stock defaults.
func (c Config) FontConfig() fonts.Config {
	fc := fonts.DefaultConfig()
	if len(c.Font.Candidates) > 0 {
		fc.Candidates = c.Font.Candidates
	}
	switch c.Font.DownloadURL {
	case "":
	case "off":
		fc.DownloadURL = ""
	default:
		fc.DownloadURL = c.Font.DownloadURL
	}
	if c.Font.DownloadTimeout > 0 {
		fc.DownloadTimeout = time.Duration(c.Font.DownloadTimeout) * time.Second
	}
	return fc
}

// ResolveListen returns the web UI listen address.
func (c Config) ResolveListen() string {
	if c.Listen != "" {
		return c.Listen
	}
	return DefaultListen
}

// ResolveTheme returns the default render theme name.
func (c Config) ResolveTheme() string {
	if c.Theme != "" {
		return c.Theme
	}
	return "light"
}
