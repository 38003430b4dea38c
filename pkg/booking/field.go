package booking

import "strings"

// Field is a single spreadsheet cell value with an explicit presence flag.
// Presence is decoupled from the value so that an intentionally empty string
// can be distinguished from a cell that was never set.
type Field struct {
	Value string
	Set   bool
}

// Str creates a present Field holding v.
func Str(v string) Field {
	return Field{Value: v, Set: true}
}

// None returns an absent Field.
func None() Field {
	return Field{}
}

// Present reports whether the field holds a value with non-blank content.
// A present-but-blank cell behaves like an absent one, matching how empty
// spreadsheet cells surface through formatted values.
func (f Field) Present() bool {
	return f.Set && strings.TrimSpace(f.Value) != ""
}

// Trimmed returns the field value with surrounding whitespace removed,
// or "" when the field is absent.
func (f Field) Trimmed() string {
	if !f.Set {
		return ""
	}
	return strings.TrimSpace(f.Value)
}

// flagMarker is the literal cell content marking a boolean flag column as set.
const flagMarker = "V"

// Flagged reports whether the field holds the exact flag marker.
func (f Field) Flagged() bool {
	return f.Trimmed() == flagMarker
}
