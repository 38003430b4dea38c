// Package workbook reads booking workbooks (XLSX) into typed rows.
//
// A booking workbook holds one worksheet per month. Each sheet starts with a
// two-row header (a title row, then the column-name row); data rows follow.
// This package locates the column-name row, resolves the required and
// optional columns by their stable names, and converts the data rows into
// booking.Row records with explicit field presence.
package workbook

import (
	"io"
	"math"
	"os"
	"time"

	"github.com/unidoc/unioffice/spreadsheet"
	"github.com/unidoc/unioffice/spreadsheet/reference"

	"github.com/hctsai/roomcal/pkg/booking"
	"github.com/hctsai/roomcal/pkg/errors"
)

// Stable column names of a booking sheet.
const (
	ColDate     = "日期"
	ColWeekday  = "星期"
	ColLocation = "地點"
	ColTime     = "時間"
	ColClass    = "上課"
	ColLoan     = "借用"
	ColVisit    = "參訪"
	ColReason   = "申請事由"
	ColUnit     = "申請單位"
)

// headerScanLimit bounds how many leading rows are searched for the
// column-name row. Sheets carry one title row before it; a few extra rows of
// slack tolerates reformatted workbooks.
const headerScanLimit = 10

// Open reads a workbook from disk.
func Open(path string) (*spreadsheet.Workbook, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "no such file: %s", path)
	}
	wb, err := spreadsheet.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWorkbook, err, "read workbook %s", path)
	}
	return wb, nil
}

// Read parses a workbook from an in-memory source, e.g. an HTTP upload.
func Read(r io.ReaderAt, size int64) (*spreadsheet.Workbook, error) {
	wb, err := spreadsheet.Read(r, size)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeWorkbook, err, "read workbook")
	}
	return wb, nil
}

// SheetNames lists the workbook's worksheet names in file order.
func SheetNames(wb *spreadsheet.Workbook) []string {
	sheets := wb.Sheets()
	names := make([]string, 0, len(sheets))
	for _, s := range sheets {
		names = append(names, s.Name())
	}
	return names
}

// findSheet resolves a worksheet by exact name.
func findSheet(wb *spreadsheet.Workbook, name string) (spreadsheet.Sheet, error) {
	for _, s := range wb.Sheets() {
		if s.Name() == name {
			return s, nil
		}
	}
	return spreadsheet.Sheet{}, errors.New(errors.ErrCodeSheetNotFound, "no worksheet named %q", name)
}

// columns maps resolved column indexes. Required columns are always >= 0;
// optional columns are -1 when absent.
type columns struct {
	date, weekday, location, time    int
	class, loan, visit, reason, unit int
	headerRow                        int // 0-based index into the row list
}

// Rows extracts the booking rows of the named sheet. The header rows are
// consumed here; callers receive data rows only.
func Rows(wb *spreadsheet.Workbook, sheetName string) ([]booking.Row, error) {
	sheet, err := findSheet(wb, sheetName)
	if err != nil {
		return nil, err
	}

	grid := cellGrid(sheet)
	cols, err := resolveColumns(grid, sheetName)
	if err != nil {
		return nil, err
	}

	var rows []booking.Row
	for i := cols.headerRow + 1; i < len(grid); i++ {
		cells := grid[i]
		rows = append(rows, booking.Row{
			Date:     fieldAt(cells, cols.date),
			Weekday:  fieldAt(cells, cols.weekday),
			Location: fieldAt(cells, cols.location),
			Time:     fieldAt(cells, cols.time),
			Class:    fieldAt(cells, cols.class),
			Loan:     fieldAt(cells, cols.loan),
			Visit:    fieldAt(cells, cols.visit),
			Reason:   fieldAt(cells, cols.reason),
			Unit:     fieldAt(cells, cols.unit),
		})
	}
	return rows, nil
}

// cellGrid flattens a sheet into dense rows of cell strings. Date-formatted
// numeric cells are rendered as ISO dates so extraction can parse them
// uniformly.
func cellGrid(sheet spreadsheet.Sheet) [][]string {
	var grid [][]string
	for _, row := range sheet.Rows() {
		var cells []string
		for _, cell := range row.Cells() {
			colName, err := cell.Column()
			if err != nil {
				continue
			}
			idx := int(reference.ColumnToIndex(colName))
			for len(cells) <= idx {
				cells = append(cells, "")
			}
			cells[idx] = cellString(cell)
		}
		grid = append(grid, cells)
	}
	return grid
}

// excelEpoch is day zero of the 1900 date system.
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// cellString renders a cell for extraction. Numeric cells holding plausible
// date serials become ISO dates; everything else keeps its formatted value.
func cellString(cell spreadsheet.Cell) string {
	if cell.IsNumber() {
		if v, err := cell.GetValueAsNumber(); err == nil && looksLikeDateSerial(v) {
			return excelEpoch.Add(time.Duration(v * float64(24*time.Hour))).Format("2006-01-02")
		}
	}
	return cell.GetFormattedValue()
}

// looksLikeDateSerial reports whether v falls in the serial range of
// plausible booking dates (1990..2100, whole days).
func looksLikeDateSerial(v float64) bool {
	return v == math.Trunc(v) && v > 32874 && v < 73415
}

// resolveColumns locates the column-name row and maps column names to
// indexes. Missing required columns are a fatal configuration error for the
// sheet.
func resolveColumns(grid [][]string, sheetName string) (columns, error) {
	cols := columns{
		date: -1, weekday: -1, location: -1, time: -1,
		class: -1, loan: -1, visit: -1, reason: -1, unit: -1,
	}

	limit := len(grid)
	if limit > headerScanLimit {
		limit = headerScanLimit
	}

	for i := 0; i < limit; i++ {
		idx := indexByName(grid[i])
		if idx[ColDate] < 0 || idx[ColTime] < 0 {
			continue
		}
		cols.headerRow = i
		cols.date = idx[ColDate]
		cols.weekday = idx[ColWeekday]
		cols.location = idx[ColLocation]
		cols.time = idx[ColTime]
		cols.class = idx[ColClass]
		cols.loan = idx[ColLoan]
		cols.visit = idx[ColVisit]
		cols.reason = idx[ColReason]
		cols.unit = idx[ColUnit]

		if cols.reason < 0 || cols.unit < 0 {
			return cols, errors.New(errors.ErrCodeMissingColumn,
				"sheet %q is missing a required column (%s or %s)", sheetName, ColReason, ColUnit)
		}
		return cols, nil
	}

	return cols, errors.New(errors.ErrCodeMissingColumn,
		"sheet %q has no header row with the required %s and %s columns", sheetName, ColDate, ColTime)
}

// indexByName maps known column names to their index in a header row.
func indexByName(cells []string) map[string]int {
	idx := map[string]int{
		ColDate: -1, ColWeekday: -1, ColLocation: -1, ColTime: -1,
		ColClass: -1, ColLoan: -1, ColVisit: -1, ColReason: -1, ColUnit: -1,
	}
	for i, v := range cells {
		if _, known := idx[v]; known && idx[v] < 0 {
			idx[v] = i
		}
	}
	return idx
}

// fieldAt builds a booking.Field from a dense cell row. Out-of-range and
// blank cells are absent.
func fieldAt(cells []string, idx int) booking.Field {
	if idx < 0 || idx >= len(cells) {
		return booking.None()
	}
	if cells[idx] == "" {
		return booking.None()
	}
	return booking.Str(cells[idx])
}
