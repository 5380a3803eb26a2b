// Package ui prints user-facing progress lines. These are the CLI's output,
// not diagnostics; diagnostics go through package logging.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	prefixWidth = 9
	indent      = "  "
	tagline     = "Tell Claude what to do based on how much context it has used."
)

// Printer writes prefixed, coloured lines. Colour is dropped automatically
// when the writer is not a terminal.
type Printer struct {
	out    io.Writer
	errOut io.Writer

	info    lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	dim     lipgloss.Style
	title   lipgloss.Style
}

// NewPrinter creates a Printer. Errors go to errOut, everything else to out.
func NewPrinter(out, errOut io.Writer) *Printer {
	r := lipgloss.NewRenderer(out)
	re := lipgloss.NewRenderer(errOut)
	return &Printer{
		out:     out,
		errOut:  errOut,
		info:    r.NewStyle().Foreground(lipgloss.Color("255")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("226")),
		err:     re.NewStyle().Foreground(lipgloss.Color("196")),
		success: r.NewStyle().Foreground(lipgloss.Color("46")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
		title:   r.NewStyle().Foreground(lipgloss.Color("231")).Bold(true),
	}
}

func prefix(style lipgloss.Style, label string) string {
	return style.Render(fmt.Sprintf("%-*s", prefixWidth, "["+label+"]"))
}

func (p *Printer) Info(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", prefix(p.info, "INFO"), msg)
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", prefix(p.warn, "WARN"), msg)
}

func (p *Printer) Success(msg string) {
	fmt.Fprintf(p.out, "%s %s\n", prefix(p.success, "SUCCESS"), msg)
}

// Error writes to the error stream. Multi-line messages keep their lines.
func (p *Printer) Error(msg string) {
	fmt.Fprintf(p.errOut, "%s %s\n", prefix(p.err, "ERROR"), msg)
}

// Dim writes an indented secondary line.
func (p *Printer) Dim(msg string) {
	fmt.Fprintln(p.out, p.dim.Render(indent+msg))
}

// Blank writes an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}

// Banner writes the tool name, version and tagline.
func (p *Printer) Banner(version string) {
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.title.Render("cc-context-awareness")+p.dim.Render(" v"+version))
	fmt.Fprintln(p.out, p.dim.Render(tagline))
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, p.dim.Render(strings.Repeat("─", len(tagline))))
	fmt.Fprintln(p.out)
}

// Table writes two-column rows with the first column padded to its widest cell.
func (p *Printer) Table(rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		fmt.Fprintf(p.out, "%s%s  %s\n", indent, p.title.Render(fmt.Sprintf("%-*s", width, r[0])), p.dim.Render(r[1]))
	}
}
