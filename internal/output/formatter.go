package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/ksyq12/sitegen/internal/reconcile"
	"github.com/ksyq12/sitegen/internal/reload"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
)

// Printer writes operator-facing messages: progress and results to out,
// errors to errOut.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// NewPrinter creates a Printer on the given writers
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// JSON outputs data as indented JSON
func (p *Printer) JSON(data any) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table outputs data as a formatted table
func (p *Printer) Table(headers []string, rows [][]string) {
	if len(headers) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	line := func(cells []string) {
		padded := make([]string, len(headers))
		for i := range headers {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			padded[i] = fmt.Sprintf("%-*s", widths[i], cell)
		}
		fmt.Fprintln(p.out, strings.TrimRight(strings.Join(padded, "  "), " "))
	}

	line(headers)
	sep := make([]string, len(headers))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	line(sep)
	for _, row := range rows {
		line(row)
	}
}

// Success prints a success message
func (p *Printer) Success(format string, args ...any) {
	_, _ = successColor.Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Error prints an error message to the error writer
func (p *Printer) Error(format string, args ...any) {
	_, _ = errorColor.Fprintf(p.errOut, "✗ "+format+"\n", args...)
}

// Warn prints a warning message
func (p *Printer) Warn(format string, args ...any) {
	_, _ = warnColor.Fprintf(p.out, "! "+format+"\n", args...)
}

// Info prints an info message
func (p *Printer) Info(format string, args ...any) {
	_, _ = infoColor.Fprintf(p.out, "→ "+format+"\n", args...)
}

// Print prints a plain message
func (p *Printer) Print(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Section reports the reconciliation of one section.
func (p *Printer) Section(o reconcile.Outcome, dryRun bool) {
	if dryRun {
		switch o.Action {
		case reconcile.ActionUnchanged:
			p.Info("Already exists and identical %s", o.ConfigPath)
		case reconcile.ActionCreated:
			p.Warn("Would create %s and path %s", o.ConfigPath, o.SiteDir)
		case reconcile.ActionUpdated:
			p.Warn("Would update %s and ensure path %s", o.ConfigPath, o.SiteDir)
		}
		return
	}

	switch o.Action {
	case reconcile.ActionUnchanged:
		p.Info("Already exists and identical %s", o.ConfigPath)
	case reconcile.ActionCreated:
		p.Success("Created file %s", o.ConfigPath)
		p.Success("Created path %s", o.SiteDir)
	case reconcile.ActionUpdated:
		p.Success("Updated file %s", o.ConfigPath)
		p.Success("Created path %s", o.SiteDir)
	}
}

// Reload reports the final reload status.
func (p *Printer) Reload(s reload.Status) {
	switch {
	case s.Failed():
		p.Warn("%s", s.Message)
	case s.Reloaded:
		p.Success("%s", s.Message)
	default:
		p.Info("%s", s.Message)
	}
}
