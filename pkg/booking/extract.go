// Package booking turns loosely structured booking-sheet rows into a
// day-keyed collection of formatted event lines.
//
// The extraction pipeline is a pure function over its input rows:
// forward-fill sparse columns, drop rows without a time range or date,
// reformat the time token, derive tags and a description, and group the
// resulting event lines by day-of-month in row order.
package booking

import (
	"strings"
	"time"

	"github.com/hctsai/roomcal/pkg/errors"
)

// Tag labels in their fixed priority order: class, loan, visit.
const (
	TagClass = "上課"
	TagLoan  = "借用"
	TagVisit = "參訪"
)

// descSeparator joins reason and unit when both are present.
const descSeparator = "｜"

// DayEvents maps a day of month (1..31) to that day's formatted event lines,
// in source row order.
type DayEvents map[int][]string

// Event is one booking occurrence derived from a single row.
type Event struct {
	Day         int      // day of month, 1..31
	TimeLabel   string   // "HH:MM-HH:MM" or raw passthrough
	Tags        []string // subset of {TagClass, TagLoan, TagVisit}, fixed order
	Description string   // non-empty after the fallback rule
}

// Line renders the event as "{time} {tags} {description}" with the tag text
// parenthesized and surrounding whitespace trimmed.
func (e Event) Line() string {
	tagText := ""
	if len(e.Tags) > 0 {
		tagText = "(" + strings.Join(e.Tags, "、") + ")"
	}
	return strings.TrimSpace(e.TimeLabel + " " + tagText + " " + e.Description)
}

// FormatTimeRange reformats a raw time-range token for display.
// "0900-1200" and "900-1200" both become "09:00-12:00"; tokens without a
// "-" separator pass through unchanged; an absent field yields "".
func FormatTimeRange(f Field) string {
	if !f.Present() {
		return ""
	}
	raw := f.Trimmed()
	start, end, found := strings.Cut(raw, "-")
	if !found {
		return raw
	}
	return padClock(start) + "-" + padClock(end)
}

// padClock zero-pads a numeric clock token to 4 digits and inserts the colon.
func padClock(s string) string {
	for len(s) < 4 {
		s = "0" + s
	}
	return s[:2] + ":" + s[2:]
}

// dateLayouts are the accepted textual date forms. Workbook ingest converts
// Excel serial dates to the first layout before extraction.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006-01-02 15:04:05",
}

// parseDay parses a date field and returns its day of month.
func parseDay(f Field) (int, error) {
	raw := f.Trimmed()
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Day(), nil
		}
	}
	return 0, errors.New(errors.ErrCodeBadDate, "unparseable date value %q", raw)
}

// tags derives the tag list from the flag columns, fixed order.
func tags(r Row) []string {
	var out []string
	if r.Class.Flagged() {
		out = append(out, TagClass)
	}
	if r.Loan.Flagged() {
		out = append(out, TagLoan)
	}
	if r.Visit.Flagged() {
		out = append(out, TagVisit)
	}
	return out
}

// description applies the inclusive fallback rule: reason and unit joined
// with descSeparator when both are present, else whichever is non-empty.
// Returns "" when both are empty, which excludes the row.
func description(r Row) string {
	reason := r.Reason.Trimmed()
	unit := r.Unit.Trimmed()
	switch {
	case reason != "" && unit != "":
		return reason + descSeparator + unit
	case reason != "":
		return reason
	default:
		return unit
	}
}

// Extract converts booking rows into day-keyed event lines.
//
// Rows are forward-filled first, then rows without a time range or a date are
// dropped. A malformed date on a surviving row aborts extraction with a
// BAD_DATE error; there is no per-row recovery. Rows whose time label or
// description come out empty are skipped silently, since absent optional
// fields are normal data.
func Extract(rows []Row) (DayEvents, error) {
	filled := make([]Row, len(rows))
	copy(filled, rows)
	ForwardFill(filled)

	events := make(DayEvents)
	for _, r := range filled {
		if !r.Time.Present() || !r.Date.Present() {
			continue
		}

		day, err := parseDay(r.Date)
		if err != nil {
			return nil, err
		}

		ev := Event{
			Day:         day,
			TimeLabel:   FormatTimeRange(r.Time),
			Tags:        tags(r),
			Description: description(r),
		}
		if ev.TimeLabel == "" || ev.Description == "" {
			continue
		}

		events[day] = append(events[day], ev.Line())
	}
	return events, nil
}
