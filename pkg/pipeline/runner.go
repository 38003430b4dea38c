package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/hctsai/roomcal/pkg/booking"
	"github.com/hctsai/roomcal/pkg/errors"
	"github.com/hctsai/roomcal/pkg/fonts"
	"github.com/hctsai/roomcal/pkg/render"
	"github.com/hctsai/roomcal/pkg/render/sink"
	"github.com/hctsai/roomcal/pkg/workbook"
)

// Runner encapsulates pipeline execution. Both CLI and web UI use this to
// avoid duplicating orchestration logic.
//
// The Runner is stateless except for the font source and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Font   fonts.Source
	Logger *log.Logger
}

// NewRunner creates a runner with the given font source.
// If font is nil, the built-in degraded face is used.
func NewRunner(font fonts.Source, logger *log.Logger) *Runner {
	if font == nil {
		font = fonts.Basic()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Font:   font,
		Logger: logger,
	}
}

// Execute runs the complete ingest → extract → layout → render pipeline,
// reading the workbook from opts.Path.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	wb, err := workbook.Open(opts.Path)
	if err != nil {
		return nil, err
	}
	ingestTime := time.Since(start)

	result, err := r.ExecuteWorkbook(ctx, wb, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.IngestTime = ingestTime
	return result, nil
}

// ExecuteWorkbook runs the pipeline against an already-open workbook, e.g.
// one read from an HTTP upload.
func (r *Runner) ExecuteWorkbook(ctx context.Context, wb *spreadsheet.Workbook, opts Options) (*Result, error) {
	r.applyRuntime(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	sheet, year, month, err := resolveSheet(wb, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Sheet:     sheet,
		Year:      year,
		Month:     month,
		Artifacts: make(map[string][]byte),
	}

	// Stage 2: Extract
	extractStart := time.Now()
	rows, err := workbook.Rows(wb, sheet)
	if err != nil {
		return nil, err
	}
	events, err := booking.Extract(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, errors.New(errors.ErrCodeNoUsableData,
			"sheet %q has no rows with a date, a time and a description", sheet)
	}
	result.Stats.ExtractTime = time.Since(extractStart)
	result.Days = len(events)
	for _, lines := range events {
		result.EventCount += len(lines)
	}

	opts.Logger.Info("extracted events",
		"sheet", sheet,
		"days", result.Days,
		"events", result.EventCount,
		"duration", result.Stats.ExtractTime)

	// Stage 3: Layout
	title := opts.Title
	if title == "" {
		title = DefaultTitle(year, month)
	}
	layoutStart := time.Now()
	layout := render.Compute(year, time.Month(month), events, title)
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Weeks = layout.Weeks

	opts.Logger.Info("computed layout",
		"weeks", layout.Weeks,
		"commands", len(layout.Commands),
		"duration", result.Stats.LayoutTime)

	// Stage 4: Render
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTimeout, err, "render canceled")
	}
	theme, err := render.ThemeByName(opts.Theme)
	if err != nil {
		return nil, err
	}
	renderStart := time.Now()
	for _, format := range opts.Formats {
		switch format {
		case FormatPNG:
			data, err := sink.RenderPNG(layout,
				sink.WithScale(opts.Scale),
				sink.WithTheme(theme),
				sink.WithFont(opts.Font))
			if err != nil {
				return nil, err
			}
			result.Artifacts[FormatPNG] = data
		case FormatSVG:
			result.Artifacts[FormatSVG] = sink.RenderSVG(layout, sink.WithSVGTheme(theme))
		}
	}
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// resolveSheet picks the worksheet to render and the calendar page it
// covers. An explicit sheet name wins; otherwise the name is derived from
// year/month (ROC code first, then the Gregorian form); a single-sheet
// workbook needs neither.
func resolveSheet(wb *spreadsheet.Workbook, opts Options) (sheet string, year, month int, err error) {
	names := workbook.SheetNames(wb)

	if opts.Sheet != "" {
		if !contains(names, opts.Sheet) {
			return "", 0, 0, errors.New(errors.ErrCodeSheetNotFound,
				"no worksheet named %q (workbook has: %v)", opts.Sheet, names)
		}
		year, month = opts.Year, opts.Month
		if year == 0 {
			if y, m, ok := workbook.MonthFromSheet(opts.Sheet); ok {
				year, month = y, m
			} else {
				return "", 0, 0, errors.New(errors.ErrCodeInvalidMonth,
					"cannot derive a month from sheet %q; pass year and month", opts.Sheet)
			}
		}
		return opts.Sheet, year, month, nil
	}

	if opts.Year != 0 {
		for _, code := range []string{
			workbook.SheetCode(opts.Year, opts.Month),
			workbook.GregorianCode(opts.Year, opts.Month),
		} {
			if contains(names, code) {
				return code, opts.Year, opts.Month, nil
			}
		}
		return "", 0, 0, errors.New(errors.ErrCodeSheetNotFound,
			"no worksheet for %d/%02d (workbook has: %v)", opts.Year, opts.Month, names)
	}

	if len(names) == 1 {
		if y, m, ok := workbook.MonthFromSheet(names[0]); ok {
			return names[0], y, m, nil
		}
		return "", 0, 0, errors.New(errors.ErrCodeInvalidMonth,
			"cannot derive a month from sheet %q; pass year and month", names[0])
	}

	return "", 0, 0, errors.New(errors.ErrCodeInvalidInput,
		"workbook has %d worksheets; pass a sheet name or year and month", len(names))
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// applyRuntime fills in the runner's font and logger on options if not
// already set.
func (r *Runner) applyRuntime(opts *Options) {
	if opts.Font == nil {
		opts.Font = r.Font
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
