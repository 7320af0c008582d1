package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/holepunchto/lunte/internal/linter"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	dim    = "\033[2m"
)

// Options controls rendering.
type Options struct {
	Format string
	Color  bool
}

// Write renders diagnostics to w in the requested format.
func Write(w io.Writer, diagnostics []linter.Diagnostic, opts Options) error {
	switch opts.Format {
	case "", FormatText:
		_, err := io.WriteString(w, Text(diagnostics, opts.Color)+"\n")
		return err
	case FormatJSON:
		if diagnostics == nil {
			diagnostics = []linter.Diagnostic{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(diagnostics)
	default:
		return fmt.Errorf("unknown format %q (want text or json)", opts.Format)
	}
}

// Text renders one "path:line:col  SEVERITY  message" line per diagnostic
// followed by a summary.
func Text(diagnostics []linter.Diagnostic, color bool) string {
	paint := func(c, s string) string {
		if !color {
			return s
		}
		return c + s + reset
	}

	if len(diagnostics) == 0 {
		return paint(green, "✓ No issues found")
	}

	lines := make([]string, 0, len(diagnostics)+1)
	for _, d := range diagnostics {
		file := d.File
		if file == "" {
			file = "<stdin>"
		}
		sev := strings.ToUpper(d.Severity)
		if d.RuleID != "" {
			sev += " (" + d.RuleID + ")"
		}
		switch d.Severity {
		case "error":
			sev = paint(red, sev)
		case "warning":
			sev = paint(yellow, sev)
		}
		lines = append(lines, fmt.Sprintf("%s  %s  %s",
			paint(dim, fmt.Sprintf("%s:%d:%d", file, d.Line, d.Column)), sev, linter.DisplayMessage(d.Message)))
	}
	lines = append(lines, Summary(diagnostics))

	return strings.Join(lines, "\n")
}

// Summary counts errors and warnings, e.g. "2 errors, 1 warning".
func Summary(diagnostics []linter.Diagnostic) string {
	var errors, warnings int
	for _, d := range diagnostics {
		switch d.Severity {
		case "error":
			errors++
		case "warning":
			warnings++
		}
	}

	var parts []string
	if errors > 0 {
		parts = append(parts, plural(errors, "error"))
	}
	if warnings > 0 {
		parts = append(parts, plural(warnings, "warning"))
	}
	if len(parts) == 0 {
		return plural(len(diagnostics), "issue")
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
