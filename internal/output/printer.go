// Package output provides CLI output formatting utilities
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors when the terminal supports them (default)
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on
	ColorAlways
	// ColorNever forces colors off
	ColorNever
)

// ParseColorMode parses a string into a ColorMode
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default: // ColorAuto
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return !color.NoColor
	}
}

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer writing results to out and errors to errOut
func NewPrinter(out, errOut io.Writer, useColors bool) *Printer {
	return &Printer{
		out:       out,
		err:       errOut,
		useColors: useColors,
	}
}

func (p *Printer) paint(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// Info prints an informational message
func (p *Printer) Info(format string, args ...interface{}) {
	if p.useColors {
		p.paint(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	if p.useColors {
		p.paint(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

// Error prints an error message
func (p *Printer) Error(format string, args ...interface{}) {
	if p.useColors {
		p.paint(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

// Header prints a section header
func (p *Printer) Header(title string) {
	if p.useColors {
		p.paint(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		p.paint(color.FgWhite).Fprintf(p.out, "%s\n", repeatChar('─', len([]rune(title))))
	} else {
		fmt.Fprintf(p.out, "\n%s\n%s\n", title, repeatChar('-', len([]rune(title))))
	}
}

// Total prints a labelled number, e.g. "edits: 1,234"
func (p *Printer) Total(label string, value int64) {
	fmt.Fprintf(p.out, "%s: %s\n", p.Dim(label), p.Bold(FormatInt(value)))
}

// JSON writes v as indented JSON
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Writer returns the result writer, for tables
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Bold returns text in bold
func (p *Printer) Bold(text string) string {
	if p.useColors {
		return p.paint(color.Bold).Sprint(text)
	}
	return text
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	if p.useColors {
		return p.paint(color.Faint).Sprint(text)
	}
	return text
}

// FormatInt renders n with thousands separators
func FormatInt(n int64) string {
	return humanize.Comma(n)
}

func repeatChar(char rune, count int) string {
	result := make([]rune, count)
	for i := range result {
		result[i] = char
	}
	return string(result)
}
