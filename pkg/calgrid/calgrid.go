// Package calgrid computes Gregorian month grids for calendar layout.
//
// A month grid is a weeks×7 matrix with Sunday as the first column. Cells
// outside the month hold 0. The computation depends only on the year and
// month, never on locale or time zone.
package calgrid

import "time"

// Columns is the fixed number of weekday columns in a month grid.
const Columns = 7

// Weekdays are the column header labels, Sunday first.
var Weekdays = [Columns]string{"週日", "週一", "週二", "週三", "週四", "週五", "週六"}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Matrix returns the month grid for year/month: one row per week, 7 columns,
// Sunday first. Cells hold the day of month, or 0 for padding cells outside
// the month. The result always has between 4 and 6 rows.
func Matrix(year int, month time.Month) [][Columns]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	offset := int(first.Weekday()) // Sunday == 0
	days := DaysIn(year, month)

	weeks := (offset + days + Columns - 1) / Columns
	matrix := make([][Columns]int, weeks)
	for day := 1; day <= days; day++ {
		idx := offset + day - 1
		matrix[idx/Columns][idx%Columns] = day
	}
	return matrix
}
