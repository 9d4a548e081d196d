// Package console provides the interactive prompt primitives and the styled
// output sink shared by all helpers.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/calev/stathelper/internal/ui/theme"
)

// Printer writes styled lines to an output sink. Styling is disabled when the
// sink is not a terminal or NO_COLOR is set, so scripted sessions and tests
// see plain text.
type Printer struct {
	w     io.Writer
	color bool
}

// NewPrinter creates a Printer over w with automatic color detection.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, color: shouldColor(w)}
}

func shouldColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Writer returns the underlying output sink.
func (p *Printer) Writer() io.Writer {
	return p.w
}

func (p *Printer) render(st lipgloss.Style, s string) string {
	if !p.color {
		return s
	}
	return st.Render(s)
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, args ...any) {
	fmt.Fprintln(p.w, fmt.Sprintf(format, args...))
}

// Headerf writes a highlighted section header line.
func (p *Printer) Headerf(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(theme.Header, fmt.Sprintf(format, args...)))
}

// Resultf writes a highlighted final-answer line.
func (p *Printer) Resultf(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(theme.Result, fmt.Sprintf(format, args...)))
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(theme.Warning, fmt.Sprintf(format, args...)))
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(theme.Error, fmt.Sprintf(format, args...)))
}

// Hintf writes a dimmed explanatory line.
func (p *Printer) Hintf(format string, args ...any) {
	fmt.Fprintln(p.w, p.render(theme.Hint, fmt.Sprintf(format, args...)))
}

// Promptf writes a prompt without a trailing newline.
func (p *Printer) Promptf(format string, args ...any) {
	fmt.Fprint(p.w, p.render(theme.Prompt, fmt.Sprintf(format, args...)))
}

// Rule writes a horizontal separator line.
func (p *Printer) Rule() {
	fmt.Fprintln(p.w, p.render(theme.Hint, strings.Repeat("-", 60)))
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.w)
}

// Table writes a padded column table. Columns listed in rightAlign are
// right-aligned (numeric columns).
func (p *Printer) Table(headers []string, rows [][]string, rightAlign map[int]bool) {
	lines := formatTable(headers, rows, rightAlign)
	for i, line := range lines {
		if i == 0 && len(headers) > 0 {
			fmt.Fprintln(p.w, p.render(theme.Header, line))
			continue
		}
		fmt.Fprintln(p.w, line)
	}
}
