package booking

import (
	"reflect"
	"testing"

	"github.com/hctsai/roomcal/pkg/errors"
)

func TestForwardFill(t *testing.T) {
	rows := []Row{
		{Date: Str("2025-11-05"), Weekday: Str("週三"), Location: Str("多功能教室"), Time: Str("0900-1200")},
		{Time: Str("1400-1600")},
		{Date: Str("2025-11-07"), Time: Str("0800-0900")},
		{Time: Str("1000-1100")},
	}

	ForwardFill(rows)

	if got := rows[1].Date.Trimmed(); got != "2025-11-05" {
		t.Errorf("rows[1].Date = %q, want 2025-11-05", got)
	}
	if got := rows[1].Location.Trimmed(); got != "多功能教室" {
		t.Errorf("rows[1].Location = %q, want 多功能教室", got)
	}
	if got := rows[3].Date.Trimmed(); got != "2025-11-07" {
		t.Errorf("rows[3].Date = %q, want 2025-11-07", got)
	}
	if got := rows[3].Weekday.Trimmed(); got != "週三" {
		t.Errorf("rows[3].Weekday = %q, want 週三 (carried from last non-empty)", got)
	}
}

func TestForwardFillIdempotent(t *testing.T) {
	rows := []Row{
		{Date: Str("2025-11-05"), Weekday: Str("週三"), Location: Str("A")},
		{Time: Str("1400-1600")},
		{Date: Str("2025-11-06")},
	}

	ForwardFill(rows)
	once := make([]Row, len(rows))
	copy(once, rows)

	ForwardFill(rows)
	if !reflect.DeepEqual(once, rows) {
		t.Errorf("second fill changed rows:\n once = %+v\ntwice = %+v", once, rows)
	}
}

func TestFormatTimeRange(t *testing.T) {
	tests := []struct {
		name string
		in   Field
		want string
	}{
		{"padded range", Str("0900-1200"), "09:00-12:00"},
		{"unpadded start", Str("900-1200"), "09:00-12:00"},
		{"unpadded both", Str("900-930"), "09:00-09:30"},
		{"no separator passes through", Str("全天"), "全天"},
		{"absent field", None(), ""},
		{"blank field", Str("   "), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimeRange(tt.in); got != tt.want {
				t.Errorf("FormatTimeRange(%q) = %q, want %q", tt.in.Value, got, tt.want)
			}
		})
	}
}

func TestTagOrderIsFixed(t *testing.T) {
	row := Row{
		Date:   Str("2025-11-05"),
		Time:   Str("0900-1200"),
		Loan:   Str("V"),
		Class:  Str("V"),
		Reason: Str("x"),
	}

	events, err := Extract([]Row{row})
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	want := "09:00-12:00 (上課、借用) x"
	if got := events[5][0]; got != want {
		t.Errorf("event = %q, want %q (class before loan)", got, want)
	}
}

func TestFlagRequiresExactMarker(t *testing.T) {
	row := Row{
		Date:   Str("2025-11-05"),
		Time:   Str("0900-1200"),
		Class:  Str("v"), // lowercase is not the marker
		Visit:  Str("VV"),
		Reason: Str("x"),
	}

	events, err := Extract([]Row{row})
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if got := events[5][0]; got != "09:00-12:00 x" {
		t.Errorf("event = %q, want no tags", got)
	}
}

func TestDescriptionFallback(t *testing.T) {
	tests := []struct {
		name     string
		reason   Field
		unit     Field
		want     string // expected event line, "" means row excluded
		excluded bool
	}{
		{"both present join", Str("A"), Str("B"), "09:00-12:00 A｜B", false},
		{"reason only", Str("A"), None(), "09:00-12:00 A", false},
		{"unit only", None(), Str("B"), "09:00-12:00 B", false},
		{"blank reason falls back", Str("  "), Str("B"), "09:00-12:00 B", false},
		{"both empty excluded", None(), Str("   "), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := Row{Date: Str("2025-11-05"), Time: Str("0900-1200"), Reason: tt.reason, Unit: tt.unit}
			events, err := Extract([]Row{row})
			if err != nil {
				t.Fatalf("Extract error: %v", err)
			}
			if tt.excluded {
				if len(events) != 0 {
					t.Errorf("events = %v, want empty mapping", events)
				}
				return
			}
			if got := events[5][0]; got != tt.want {
				t.Errorf("event = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractSkipsRowsWithoutTime(t *testing.T) {
	rows := []Row{
		{Date: Str("2025-11-05"), Reason: Str("no time range")},
		{Date: Str("2025-11-05"), Time: Str("全天"), Reason: Str("kept")},
	}

	events, err := Extract(rows)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if len(events[5]) != 1 || events[5][0] != "全天 kept" {
		t.Errorf("events[5] = %v, want exactly the row with a time token", events[5])
	}
}

func TestExtractMalformedDateAborts(t *testing.T) {
	rows := []Row{
		{Date: Str("not-a-date"), Time: Str("0900-1200"), Reason: Str("x")},
	}

	_, err := Extract(rows)
	if err == nil {
		t.Fatal("Extract should fail on a malformed date")
	}
	if !errors.Is(err, errors.ErrCodeBadDate) {
		t.Errorf("error code = %v, want BAD_DATE", errors.GetCode(err))
	}
}

func TestExtractPreservesRowOrderPerDay(t *testing.T) {
	rows := []Row{
		{Date: Str("2025-11-05"), Time: Str("1400-1600"), Reason: Str("later slot first in sheet")},
		{Time: Str("0900-1200"), Reason: Str("earlier slot second in sheet")},
	}

	events, err := Extract(rows)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	got := events[5]
	if len(got) != 2 {
		t.Fatalf("len(events[5]) = %d, want 2", len(got))
	}
	if got[0] != "14:00-16:00 later slot first in sheet" || got[1] != "09:00-12:00 earlier slot second in sheet" {
		t.Errorf("events not in source order: %v", got)
	}
}

// The end-to-end scenario: two rows on the 5th, a class booking with a reason
// and a loan booking with only a unit.
func TestExtractEndToEnd(t *testing.T) {
	rows := []Row{
		{Date: Str("2025-11-05"), Weekday: Str("週三"), Location: Str("教室"), Time: Str("0900-1200"), Class: Str("V"), Reason: Str("Math")},
		{Time: Str("1400-1600"), Loan: Str("V"), Unit: Str("Club X")},
	}

	events, err := Extract(rows)
	if err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	want := []string{
		"09:00-12:00 (上課) Math",
		"14:00-16:00 (借用) Club X",
	}
	if !reflect.DeepEqual(events[5], want) {
		t.Errorf("events[5] = %v, want %v", events[5], want)
	}
	if len(events) != 1 {
		t.Errorf("len(events) = %d, want 1 day", len(events))
	}
}

func TestExtractDoesNotMutateInput(t *testing.T) {
	rows := []Row{
		{Date: Str("2025-11-05"), Time: Str("0900-1200"), Reason: Str("x")},
		{Time: Str("1400-1600"), Reason: Str("y")},
	}
	if _, err := Extract(rows); err != nil {
		t.Fatalf("Extract error: %v", err)
	}
	if rows[1].Date.Present() {
		t.Error("Extract forward-filled the caller's slice")
	}
}
