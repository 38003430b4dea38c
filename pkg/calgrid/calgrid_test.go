package calgrid

import (
	"testing"
	"time"
)

func TestMatrixShape(t *testing.T) {
	for year := 2020; year <= 2030; year++ {
		for month := time.January; month <= time.December; month++ {
			m := Matrix(year, month)
			if len(m) < 4 || len(m) > 6 {
				t.Errorf("%d-%02d: weeks = %d, want 4..6", year, month, len(m))
			}

			count := 0
			for _, week := range m {
				for _, day := range week {
					if day != 0 {
						count++
					}
				}
			}
			if want := DaysIn(year, month); count != want {
				t.Errorf("%d-%02d: %d non-zero cells, want %d", year, month, count, want)
			}
		}
	}
}

func TestMatrixSundayFirst(t *testing.T) {
	// November 2025 starts on a Saturday: day 1 sits in the last column.
	m := Matrix(2025, time.November)
	if m[0][6] != 1 {
		t.Errorf("m[0][6] = %d, want 1", m[0][6])
	}
	for col := 0; col < 6; col++ {
		if m[0][col] != 0 {
			t.Errorf("m[0][%d] = %d, want 0 padding", col, m[0][col])
		}
	}
	// Nov 2 is a Sunday, first column of the second week.
	if m[1][0] != 2 {
		t.Errorf("m[1][0] = %d, want 2", m[1][0])
	}
}

func TestMatrixDayProgression(t *testing.T) {
	m := Matrix(2025, time.November)
	prev := 0
	for _, week := range m {
		for _, day := range week {
			if day == 0 {
				continue
			}
			if day != prev+1 {
				t.Fatalf("day %d follows %d, want consecutive", day, prev)
			}
			prev = day
		}
	}
	if prev != 30 {
		t.Errorf("last day = %d, want 30", prev)
	}
}

func TestMatrixWeekCountBoundaries(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		weeks int
	}{
		{2026, time.February, 4}, // 28 days starting on Sunday: minimal grid
		{2026, time.August, 6},   // 31 days starting on Saturday: maximal grid
		{2025, time.November, 6}, // 30 days starting on Saturday
		{2025, time.June, 5},
	}

	for _, tt := range tests {
		if got := len(Matrix(tt.year, tt.month)); got != tt.weeks {
			t.Errorf("%d-%02d: weeks = %d, want %d", tt.year, tt.month, got, tt.weeks)
		}
	}
}

func TestDaysIn(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.November, 30},
		{2025, time.December, 31},
		{2024, time.February, 29}, // leap year
		{2025, time.February, 28},
	}

	for _, tt := range tests {
		if got := DaysIn(tt.year, tt.month); got != tt.want {
			t.Errorf("DaysIn(%d, %v) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}
