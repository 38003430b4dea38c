package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple formats)
	sheet   string   // explicit worksheet name
	year    int      // calendar year (with month, selects the worksheet)
	month   int      // calendar month
	title   string   // calendar title override
	formats []string // output formats: "png", "svg"
	theme   string   // "light" or "dark"
	scale   float64  // raster scale factor for PNG
	noCache bool     // skip the font cache
}

// renderCommand creates the render command for generating calendar images.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render [file.xlsx]",
		Short: "Render a booking workbook as a monthly calendar image",
		Long: `Render reads a booking workbook and draws the requested month as a
calendar image. The worksheet can be named explicitly with --sheet, or derived
from --year and --month; a single-sheet workbook needs neither.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.sheet, "sheet", "s", "", "worksheet name (e.g. 11411)")
	cmd.Flags().IntVarP(&opts.year, "year", "y", 0, "calendar year")
	cmd.Flags().IntVarP(&opts.month, "month", "m", 0, "calendar month (1-12)")
	cmd.Flags().StringVar(&opts.title, "title", "", "calendar title (default derived from the month)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), svg (comma-separated)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "color theme: light (default), dark")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "raster scale factor for PNG output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the font cache")

	return cmd
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatPNG}
	}
	return strings.Split(s, ",")
}

// runRender executes the pipeline against the input workbook and writes the
// requested artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	theme := opts.theme
	if theme == "" {
		theme = cfg.ResolveTheme()
	}

	runner := c.newRunner(ctx, cfg, opts.noCache)

	spinner := newSpinnerWithContext(ctx, "Rendering calendar")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Options{
		Path:    input,
		Sheet:   opts.sheet,
		Year:    opts.year,
		Month:   opts.month,
		Title:   opts.title,
		Formats: opts.formats,
		Theme:   theme,
		Scale:   opts.scale,
	})
	spinner.Stop()
	if err != nil {
		printError("%s", errors.UserMessage(err))
		return err
	}

	printSuccess("Rendered %s — %d/%02d", result.Sheet, result.Year, result.Month)
	printDetail("%d weeks · %d days with bookings · %d events", result.Weeks, result.Days, result.EventCount)

	for _, format := range opts.formats {
		path := outputPath(opts.output, input, result.Sheet, format, len(opts.formats) > 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// outputPath derives the artifact path. An explicit --output wins; with
// multiple formats its extension is replaced per format. By default the
// artifact lands next to the input as calendar_<sheet>.<format>.
func outputPath(output, input, sheet, format string, multi bool) string {
	if output == "" {
		return filepath.Join(filepath.Dir(input), pipeline.OutputName(sheet, format))
	}
	if !multi {
		return output
	}
	base := strings.TrimSuffix(output, filepath.Ext(output))
	return base + "." + format
}
