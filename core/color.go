package core

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/josephlewis42/smallsh/core/config"
)

var (
	ColorBoldRed = []color.Attribute{color.FgRed, color.Bold}
	ColorYellow  = []color.Attribute{color.FgYellow}
)

// ColorPrinter colorizes messages according to the configured color mode.
type ColorPrinter struct {
	mode string
}

// NewColorPrinter creates a printer for the given mode, one of
// always|auto|never.
func NewColorPrinter(mode string) *ColorPrinter {
	return &ColorPrinter{mode: mode}
}

// ShouldColor reports whether output written to w gets colored.
func (c *ColorPrinter) ShouldColor(w io.Writer) bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		return isTerminal(w)
	}
}

// Fprintln writes the line to w, colored if ShouldColor allows it.
func (c *ColorPrinter) Fprintln(w io.Writer, attrs []color.Attribute, a ...interface{}) {
	if !c.ShouldColor(w) {
		fmt.Fprintln(w, a...)
		flush(w)
		return
	}

	clr := color.New(attrs...)
	clr.EnableColor()
	// Keep the newline outside of the escape sequence.
	fmt.Fprintln(w, clr.Sprint(strings.TrimSuffix(fmt.Sprintln(a...), "\n")))
	flush(w)
}
