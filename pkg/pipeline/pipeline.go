// Package pipeline provides the core rendering pipeline for roomcal.
//
// This package implements the complete ingest → extract → layout → render
// pipeline that can be used by CLI and web components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Ingest: Read the workbook and resolve the requested worksheet
//  2. Extract: Turn booking rows into per-day event strings
//  3. Layout: Compute normalized draw commands for the month grid
//  4. Render: Generate output in various formats (PNG, SVG)
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(fontSrc, logger)
//	opts := pipeline.Options{
//	    Path:    "bookings.xlsx",
//	    Year:    2025,
//	    Month:   11,
//	    Formats: []string{"png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.Artifacts["png"]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/fonts"
	"github.com/hctsai/roomcal/pkg/render"
)

const (
	// DefaultScale is the raster scale factor applied to PNG output. The
	// base cell is 240px; scale 2 yields print-friendly resolution.
	DefaultScale = 2.0

	// DefaultTheme is the theme used when none is requested.
	DefaultTheme = "light"
)

// Format constants for output formats.
const (
	FormatPNG = "png"
	FormatSVG = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG: true,
	FormatSVG: true,
}

// Options contains all configuration for a render request.
// This struct supports JSON serialization for web requests.
type Options struct {
	// Ingest options. Path names the workbook on disk (CLI); web handlers
	// open the workbook themselves and call ExecuteWorkbook. Sheet selects a
	// worksheet by exact name; when empty the sheet is derived from
	// Year/Month, falling back to the only sheet of a single-sheet workbook.
	Path  string `json:"path,omitempty"`
	Sheet string `json:"sheet,omitempty"`
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`

	// Layout options
	Title string `json:"title,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`
	Theme   string   `json:"theme,omitempty"`
	Scale   float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger  `json:"-"`
	Font   fonts.Source `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Sheet is the worksheet the render was produced from.
	Sheet string

	// Year and Month identify the rendered calendar page.
	Year  int
	Month int

	// Days is the number of days carrying at least one event.
	Days int

	// EventCount is the total number of rendered event lines.
	EventCount int

	// Weeks is the number of grid rows of the month.
	Weeks int

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	IngestTime  time.Duration
	ExtractTime time.Duration
	LayoutTime  time.Duration
	RenderTime  time.Duration
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Month != 0 && (o.Month < 1 || o.Month > 12) {
		return errors.New(errors.ErrCodeInvalidMonth, "month %d out of range 1..12", o.Month)
	}
	if (o.Year == 0) != (o.Month == 0) {
		return errors.New(errors.ErrCodeInvalidMonth, "year and month must be given together")
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatPNG}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: png, svg)", f)
		}
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if _, err := render.ThemeByName(o.Theme); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DefaultTitle returns the stock calendar title for a month, in the form the
// booking office prints on its monthly sheets.
func DefaultTitle(year, month int) string {
	return fmt.Sprintf("%d年%02d月 多功能教室使用情形", year, month)
}

// OutputName returns the conventional artifact filename for a sheet and
// format, e.g. "calendar_11411.png".
func OutputName(sheet, format string) string {
	return fmt.Sprintf("calendar_%s.%s", sheet, format)
}
