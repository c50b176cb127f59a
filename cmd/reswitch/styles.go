package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// styles holds color formatters for human output.
type styles struct {
	location *color.Color
	value    *color.Color
	match    *color.Color
	context  *color.Color
	ok       *color.Color
	fail     *color.Color
}

// newStyles creates color formatters.
// enabled=false respects --color=never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		location: color.New(color.FgHiGreen),
		value:    color.New(color.Bold, color.FgHiBlue),
		match:    color.New(color.FgYellow),
		context:  color.New(color.Faint),
		ok:       color.New(color.Bold, color.FgGreen),
		fail:     color.New(color.Bold, color.FgRed),
	}

	if !enabled {
		s.location.DisableColor()
		s.value.DisableColor()
		s.match.DisableColor()
		s.context.DisableColor()
		s.ok.DisableColor()
		s.fail.DisableColor()
	}

	return s
}

// resolveColor applies a --color setting to the global color state and
// returns the resulting styles.
func resolveColor(mode string) (*styles, error) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto", "":
		// Check if stdout is a TTY and NO_COLOR is not set
		if !term.IsTerminal(int(os.Stdout.Fd())) || os.Getenv("NO_COLOR") != "" {
			color.NoColor = true
		} else {
			color.NoColor = false
		}
	default:
		return nil, fmt.Errorf("unknown color mode: %s (want auto, always or never)", mode)
	}
	return newStyles(!color.NoColor), nil
}
