package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/fonts"
)

// fontCommand creates the font management command.
func (c *CLI) fontCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "font",
		Short: "Manage the CJK font used for rendering",
	}

	cmd.AddCommand(c.fontStatusCommand())
	cmd.AddCommand(c.fontFetchCommand())
	cmd.AddCommand(c.fontClearCommand())

	return cmd
}

// fontStatusCommand creates the "font status" subcommand.
func (c *CLI) fontStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show how the rendering font would be acquired",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fontCfg := cfg.FontConfig()

			if name, path, ok := fonts.LocalCandidate(fontCfg); ok {
				printSuccess("System font available: %s", name)
				printDetail("%s", path)
			} else {
				printWarning("No configured system font installed")
			}

			fc := c.openCache(cfg, false)
			defer fc.Close()
			if data, hit, err := fc.Get(cmd.Context(), fonts.CacheKey); err == nil && hit {
				printSuccess("Fallback font cached (%d bytes)", len(data))
			} else {
				printInfo("Fallback font not cached; run `roomcal font fetch` to download it")
			}
			return nil
		},
	}
}

// fontFetchCommand creates the "font fetch" subcommand.
func (c *CLI) fontFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the fallback font into the cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fc := c.openCache(cfg, false)
			defer fc.Close()

			spinner := newSpinnerWithContext(cmd.Context(), "Downloading font")
			spinner.Start()
			src, err := fonts.Fetch(cmd.Context(), cfg.FontConfig(), fc)
			spinner.Stop()
			if err != nil {
				printError("%s", errors.UserMessage(err))
				return err
			}

			printSuccess("Fetched %s", src.Name())
			return nil
		},
	}
}

// fontClearCommand creates the "font clear" subcommand.
func (c *CLI) fontClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the cached fallback font",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fc := c.openCache(cfg, false)
			defer fc.Close()

			if err := fc.Delete(cmd.Context(), fonts.CacheKey); err != nil {
				return fmt.Errorf("clear cached font: %w", err)
			}
			printSuccess("Cleared the cached font")
			return nil
		},
	}
}
