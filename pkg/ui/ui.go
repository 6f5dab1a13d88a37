// Package ui writes styled diagnostics for the command line.
// Styles apply only when the output format is FormatTerminal.
package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/palchukovsky/logreader/pkg/ui/styles"
)

// Printer renders messages with the semantic styles of pkg/ui/styles
type Printer struct {
	out      io.Writer
	format   Format
	renderer *lipgloss.Renderer
}

// NewPrinter creates a printer for out. FormatAuto is resolved with
// DetectFormat when out is a file and falls back to FormatText otherwise.
func NewPrinter(out io.Writer, format Format) *Printer {
	if format == FormatAuto {
		format = FormatText
		if file, ok := out.(*os.File); ok {
			format = DetectFormat(file)
		}
	}

	renderer := lipgloss.NewRenderer(out)
	if format == FormatTerminal {
		if renderer.ColorProfile() == termenv.Ascii {
			renderer.SetColorProfile(termenv.ANSI256)
		}
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	return &Printer{out: out, format: format, renderer: renderer}
}

// Format returns the resolved output format
func (p *Printer) Format() Format {
	return p.format
}

// Style renders text with the named style
func (p *Printer) Style(name, text string) string {
	if p.format != FormatTerminal {
		return text
	}
	return p.renderer.NewStyle().Inherit(styles.GetStyle(name)).Render(text)
}

// Subject renders text in the named style layered over Error, for the
// subject of a diagnostic written with Errorf.
func (p *Printer) Subject(name, text string) string {
	if p.format != FormatTerminal {
		return text
	}
	return p.renderer.NewStyle().Inherit(styles.MergeStyles(name, "Error")).Render(text)
}

// Println writes text in the named style followed by a newline
func (p *Printer) Println(style, text string) error {
	_, err := fmt.Fprintln(p.out, p.Style(style, text))
	return err
}

// Errorf writes a formatted message in the Error style
func (p *Printer) Errorf(format string, args ...interface{}) error {
	return p.Println("Error", fmt.Sprintf(format, args...))
}

// Print writes text unstyled
func (p *Printer) Print(text string) error {
	_, err := io.WriteString(p.out, text)
	return err
}
