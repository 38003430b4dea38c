// Package cli implements the roomcal command-line interface.
//
// This package provides commands for rendering booking workbooks into
// calendar images, inspecting workbook contents, managing the cached glyph
// asset, and serving the web UI. The CLI is built using cobra and supports
// verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Turn a booking workbook into a monthly calendar image
//   - sheets: List the worksheets of a workbook
//   - font: Inspect, fetch or clear the cached CJK font
//   - serve: Run the upload → preview → download web UI
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a non-default configuration file.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hctsai/roomcal/internal/config"
	"github.com/hctsai/roomcal/pkg/buildinfo"
	"github.com/hctsai/roomcal/pkg/cache"
	"github.com/hctsai/roomcal/pkg/fonts"
	"github.com/hctsai/roomcal/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "roomcal",
		Short:        "Roomcal turns room-booking workbooks into calendar images",
		Long:         `Roomcal reads the booking office's monthly XLSX workbook and renders each month's reservations as a printable calendar image.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ~/.config/roomcal/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sheetsCommand())
	root.AddCommand(c.fontCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration named by --config, or the default file.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// openCache creates the file cache, degrading to a no-op cache when the
// directory cannot be used.
func (c *CLI) openCache(cfg config.Config, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cfg.ResolveCacheDir()
	if err != nil {
		c.Logger.Debugf("no cache dir: %v", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debugf("cache unavailable: %v", err)
		return cache.NewNullCache()
	}
	return fc
}

// newRunner acquires a font source and builds a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) *pipeline.Runner {
	fontCache := c.openCache(cfg, noCache)
	src := fonts.Load(ctx, cfg.FontConfig(), fontCache, c.Logger)
	return pipeline.NewRunner(src, c.Logger)
}
