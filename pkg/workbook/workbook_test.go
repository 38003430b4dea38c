package workbook

import (
	"bytes"
	"testing"

	"github.com/unidoc/unioffice/spreadsheet"

	"github.com/hctsai/roomcal/pkg/errors"
)

// standardHeader is the column-name row of a typical booking sheet.
var standardHeader = []string{
	ColDate, ColWeekday, ColLocation, ColTime,
	ColClass, ColLoan, ColVisit, ColReason, ColUnit,
}

// buildWorkbook creates an in-memory workbook with one sheet laid out like a
// real booking export: a title row, a column-name row, then data rows.
func buildWorkbook(t *testing.T, sheetName string, header []string, data [][]string) *spreadsheet.Workbook {
	t.Helper()
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName(sheetName)

	title := sheet.AddRow()
	title.AddCell().SetString("多功能教室使用情形")

	hdr := sheet.AddRow()
	for _, name := range header {
		hdr.AddCell().SetString(name)
	}

	for _, cells := range data {
		row := sheet.AddRow()
		for _, v := range cells {
			row.AddCell().SetString(v)
		}
	}
	return wb
}

func TestRows(t *testing.T) {
	wb := buildWorkbook(t, "11411", standardHeader, [][]string{
		{"2025-11-03", "一", "A101", "0900-1200", "V", "", "", "Math", "Dept"},
		{"", "", "", "1400-1600", "", "V", "", "", "Club X"},
	})

	rows, err := Rows(wb, "11411")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Date.Value != "2025-11-03" || !first.Date.Set {
		t.Errorf("unexpected date field: %+v", first.Date)
	}
	if first.Time.Value != "0900-1200" {
		t.Errorf("unexpected time field: %+v", first.Time)
	}
	if !first.Class.Flagged() {
		t.Errorf("class column should carry the flag marker")
	}
	if first.Loan.Flagged() {
		t.Errorf("loan column should not be flagged")
	}

	second := rows[1]
	if second.Date.Present() {
		t.Errorf("blank date cell should be absent, got %+v", second.Date)
	}
	if !second.Loan.Flagged() {
		t.Errorf("loan column should carry the flag marker")
	}
	if second.Reason.Present() {
		t.Errorf("blank reason cell should be absent")
	}
	if second.Unit.Value != "Club X" {
		t.Errorf("unexpected unit: %+v", second.Unit)
	}
}

func TestRowsRaggedRow(t *testing.T) {
	// Rows shorter than the header are common in real exports: trailing
	// blank cells are simply not stored.
	wb := buildWorkbook(t, "11411", standardHeader, [][]string{
		{"2025-11-03", "一", "A101", "0900-1200"},
	})

	rows, err := Rows(wb, "11411")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if rows[0].Reason.Present() || rows[0].Unit.Present() {
		t.Errorf("missing trailing cells should be absent fields")
	}
	if rows[0].Time.Value != "0900-1200" {
		t.Errorf("unexpected time: %+v", rows[0].Time)
	}
}

func TestRowsDateSerial(t *testing.T) {
	wb := spreadsheet.New()
	sheet := wb.AddSheet()
	sheet.SetName("11411")
	hdr := sheet.AddRow()
	for _, name := range standardHeader {
		hdr.AddCell().SetString(name)
	}
	row := sheet.AddRow()
	row.AddCell().SetNumber(45966) // 2025-11-05 in the 1900 date system
	for i := 1; i < len(standardHeader); i++ {
		row.AddCell().SetString("x")
	}

	rows, err := Rows(wb, "11411")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if got := rows[0].Date.Value; got != "2025-11-05" {
		t.Errorf("serial date: got %q, want 2025-11-05", got)
	}
}

func TestRowsMissingRequiredColumn(t *testing.T) {
	header := []string{ColDate, ColWeekday, ColLocation, ColTime, ColReason} // no unit
	wb := buildWorkbook(t, "11411", header, nil)

	_, err := Rows(wb, "11411")
	if !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("expected MISSING_COLUMN, got %v", err)
	}
}

func TestRowsNoHeaderRow(t *testing.T) {
	wb := buildWorkbook(t, "11411", []string{"nothing", "useful"}, [][]string{
		{"still", "nothing"},
	})

	_, err := Rows(wb, "11411")
	if !errors.Is(err, errors.ErrCodeMissingColumn) {
		t.Errorf("expected MISSING_COLUMN, got %v", err)
	}
}

func TestRowsSheetNotFound(t *testing.T) {
	wb := buildWorkbook(t, "11411", standardHeader, nil)

	_, err := Rows(wb, "11412")
	if !errors.Is(err, errors.ErrCodeSheetNotFound) {
		t.Errorf("expected SHEET_NOT_FOUND, got %v", err)
	}
}

func TestSheetNames(t *testing.T) {
	wb := spreadsheet.New()
	for _, name := range []string{"11409", "11410", "11411"} {
		wb.AddSheet().SetName(name)
	}

	got := SheetNames(wb)
	want := []string{"11409", "11410", "11411"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sheet %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestReadRoundTrip(t *testing.T) {
	wb := buildWorkbook(t, "11411", standardHeader, [][]string{
		{"2025-11-03", "一", "A101", "0900-1200", "V", "", "", "Math", "Dept"},
	})

	var buf bytes.Buffer
	if err := wb.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reread, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	rows, err := Rows(reread, "11411")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Reason.Value != "Math" {
		t.Errorf("unexpected rows after round trip: %+v", rows)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open("/nonexistent/booking.xlsx")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("expected FILE_NOT_FOUND, got %v", err)
	}
}

func TestSheetCode(t *testing.T) {
	if got := SheetCode(2025, 11); got != "11411" {
		t.Errorf("SheetCode(2025, 11) = %q, want 11411", got)
	}
	if got := SheetCode(2026, 2); got != "11502" {
		t.Errorf("SheetCode(2026, 2) = %q, want 11502", got)
	}
	if got := GregorianCode(2025, 11); got != "202511" {
		t.Errorf("GregorianCode(2025, 11) = %q, want 202511", got)
	}
}

func TestMonthFromSheet(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
		ok    bool
	}{
		{"11411", 2025, 11, true},
		{"11502", 2026, 2, true},
		{"202511", 2025, 11, true},
		{"11413", 0, 0, false}, // month out of range
		{"nov25", 0, 0, false},
		{"", 0, 0, false},
		{"1141", 0, 0, false}, // too short
	}
	for _, tt := range tests {
		year, month, ok := MonthFromSheet(tt.name)
		if ok != tt.ok {
			t.Errorf("MonthFromSheet(%q): ok = %v, want %v", tt.name, ok, tt.ok)
			continue
		}
		if ok && (year != tt.year || month != tt.month) {
			t.Errorf("MonthFromSheet(%q) = %d/%d, want %d/%d", tt.name, year, month, tt.year, tt.month)
		}
	}
}
