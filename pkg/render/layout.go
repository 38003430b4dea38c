package render

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hctsai/roomcal/pkg/booking"
	"github.com/hctsai/roomcal/pkg/calgrid"
)

// Layout is a computed month layout: the grid height in week rows plus the
// ordered command sequence that reproduces the calendar on any sink.
type Layout struct {
	Weeks    int
	Commands []Command
}

// TopPad is the grid-coordinate height of the band above the first week row
// that holds the title and the weekday headers. Sinks reserve this space
// above y = Weeks.
const TopPad = 0.8

// Compute lays out one month. The result is deterministic: identical inputs
// produce an identical command sequence, with no clock, locale, or time-zone
// dependency.
func Compute(year int, month time.Month, events booking.DayEvents, title string) Layout {
	matrix := calgrid.Matrix(year, month)
	weeks := len(matrix)
	fw := float64(weeks)

	cmds := make([]Command, 0, weeks*calgrid.Columns*3+calgrid.Columns+1)

	// Title above the header band.
	cmds = append(cmds, Text{
		X: float64(calgrid.Columns) / 2, Y: fw + 0.45,
		Content: title,
		Size:    20, Bold: true,
		HAlign: AlignCenter, VAlign: AlignBottom,
	})

	// Weekday headers, fixed Sunday-first order.
	for i, wd := range calgrid.Weekdays {
		cmds = append(cmds, Text{
			X: float64(i) + 0.5, Y: fw + 0.05,
			Content: wd,
			Size:    14, Bold: true,
			HAlign: AlignCenter, VAlign: AlignBottom,
		})
	}

	// Cells: week 0 is the top row of the grid, but y grows upward.
	for weekIdx, week := range matrix {
		for dayIdx, day := range week {
			x := float64(dayIdx)
			y := fw - float64(weekIdx+1)

			cmds = append(cmds, Rect{X: x, Y: y, W: 1, H: 1})
			if day == 0 {
				continue
			}

			cmds = append(cmds, Text{
				X: x + 0.05, Y: y + 0.85,
				Content: strconv.Itoa(day),
				Size:    12, Bold: true,
				HAlign: AlignLeft, VAlign: AlignTop,
			})

			if block := eventBlock(events[day]); block != "" {
				cmds = append(cmds, Text{
					X: x + 0.05, Y: y + 0.75,
					Content: block,
					Size:    12,
					HAlign:  AlignLeft, VAlign: AlignTop,
				})
			}
		}
	}

	return Layout{Weeks: weeks, Commands: cmds}
}

// eventBlock joins the day's events into one multi-line cell text: each event
// wrapped to the fixed column width and prefixed with a bullet.
func eventBlock(events []string) string {
	if len(events) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(events))
	for _, ev := range events {
		blocks = append(blocks, bullet+wrap(ev, wrapWidth))
	}
	return strings.Join(blocks, "\n")
}

// Days returns the sorted day keys of a DayEvents mapping. Used by callers
// reporting what a render contained.
func Days(events booking.DayEvents) []int {
	days := make([]int, 0, len(events))
	for d := range events {
		days = append(days, d)
	}
	sort.Ints(days)
	return days
}
