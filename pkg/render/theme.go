package render

import "github.com/hctsai/roomcal/pkg/errors"

// Theme is the explicit rendering configuration passed to sinks. There is no
// process-wide style state; every render carries its own theme.
type Theme struct {
	Name       string
	Background string // hex color, e.g. "#ffffff"
	Grid       string // cell border color
	Text       string // text color
}

// Light is the default white-background theme.
func Light() Theme {
	return Theme{
		Name:       "light",
		Background: "#ffffff",
		Grid:       "#222222",
		Text:       "#111111",
	}
}

// Dark is an inverted theme for on-screen preview.
func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: "#1e1e1e",
		Grid:       "#cccccc",
		Text:       "#eeeeee",
	}
}

// ThemeByName resolves a theme name. Valid names are "light" and "dark".
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "light":
		return Light(), nil
	case "dark":
		return Dark(), nil
	default:
		return Theme{}, errors.New(errors.ErrCodeInvalidTheme, "invalid theme: %q (must be 'light' or 'dark')", name)
	}
}
