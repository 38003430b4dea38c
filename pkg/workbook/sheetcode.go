package workbook

import "fmt"

// rocOffset converts a Gregorian year to a Republic-of-China calendar year.
const rocOffset = 1911

// SheetCode returns the conventional worksheet name for a month: the ROC
// year followed by the two-digit month, e.g. November 2025 -> "11411".
func SheetCode(year, month int) string {
	return fmt.Sprintf("%d%02d", year-rocOffset, month)
}

// GregorianCode returns the Gregorian variant of a month's worksheet name,
// e.g. November 2025 -> "202511". Some workbooks use this form instead of
// the ROC one.
func GregorianCode(year, month int) string {
	return fmt.Sprintf("%d%02d", year, month)
}

// MonthFromSheet parses a worksheet name back into a Gregorian year and
// month. Both the ROC form ("11411") and the Gregorian form ("202511") are
// accepted. ok is false for names that fit neither.
func MonthFromSheet(name string) (year, month int, ok bool) {
	var y, m int
	if len(name) != 5 && len(name) != 6 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(name[:len(name)-2], "%d", &y); err != nil {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(name[len(name)-2:], "%d", &m); err != nil {
		return 0, 0, false
	}
	if m < 1 || m > 12 {
		return 0, 0, false
	}
	if len(name) == 5 {
		y += rocOffset
	}
	if y < 1990 || y > 2100 {
		return 0, 0, false
	}
	return y, m, true
}
