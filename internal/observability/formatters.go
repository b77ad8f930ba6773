// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/jobboard/internal/db"
	"github.com/jonathan/jobboard/internal/schemas"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for CLI commands
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most width runes, ending in "..." when cut.
// fmt pads %-*s by rune count, so widths here are in runes too.
func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-3]) + "..."
}

// PrintQuery writes the statement verbatim followed by a box listing its
// positional arguments.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintQuery(q db.Query) {
	fmt.Fprintln(p.out, q.SQL)
	fmt.Fprintln(p.out)

	if len(q.Args) == 0 {
		p.printBox("ARGUMENTS", "(none)")
		return
	}

	var sb strings.Builder
	for i, arg := range q.Args {
		sb.WriteString(fmt.Sprintf("$%d = %#v\n", i+1, arg))
	}
	p.printBox("ARGUMENTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintValidationErrors outputs the schema violations, capped at maxItemsToShow.
func (p *Printer) PrintValidationErrors(verr *schemas.ValidationError) {
	if verr == nil || len(verr.Errors) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total errors: %d\n\n", len(verr.Errors)))

	count := min(len(verr.Errors), maxItemsToShow)
	for i := 0; i < count; i++ {
		e := verr.Errors[i]
		sb.WriteString(fmt.Sprintf("⚠ %s: %s\n", e.Field, e.Message))
	}
	if len(verr.Errors) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(verr.Errors)-maxItemsToShow))
	}

	p.printBox("VALIDATION FAILED", strings.TrimSuffix(sb.String(), "\n"))
}
