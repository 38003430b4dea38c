package render

import (
	"strings"
	"testing"
)

func TestWrapSpacedText(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"fits on one line", "09:00-12:00", 14, "09:00-12:00"},
		{"breaks at word boundary", "09:00-12:00 (上課) Math", 14, "09:00-12:00\n(上課) Math"},
		{"collapses runs of spaces", "a   b", 14, "a b"},
		{"empty input", "", 14, ""},
		{"single long word hard-broken", "0123456789012345678", 14, "01234567890123\n45678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrap(tt.in, tt.width); got != tt.want {
				t.Errorf("wrap(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestWrapCJKHardBreak(t *testing.T) {
	// CJK text has no spaces; it must break at the rune width, never
	// mid-byte.
	in := strings.Repeat("字", 30)
	got := wrap(in, 14)

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3", len(lines))
	}
	for i, line := range lines[:2] {
		if n := len([]rune(line)); n != 14 {
			t.Errorf("line %d rune length = %d, want 14", i, n)
		}
	}
	if n := len([]rune(lines[2])); n != 2 {
		t.Errorf("last line rune length = %d, want 2", n)
	}
	if strings.ReplaceAll(got, "\n", "") != in {
		t.Error("wrapping lost or corrupted runes")
	}
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	inputs := []string{
		"09:00-12:00 (上課、借用) 數學科補救教學",
		"14:00-16:00 (借用) Club X",
		"全天 (參訪) 外賓參觀多功能教室與設備介紹",
	}
	for _, in := range inputs {
		for _, line := range strings.Split(wrap(in, wrapWidth), "\n") {
			if n := len([]rune(line)); n > wrapWidth {
				t.Errorf("line %q has %d runes, exceeds %d", line, n, wrapWidth)
			}
		}
	}
}
