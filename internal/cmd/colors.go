package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ANSI color codes
const (
	reset  = "\033[0m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

// isTerminal reports whether w writes to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// tagged renders "[TAG] msg". The tag is colored only when w is a terminal.
func tagged(w io.Writer, color, tag, msg string) string {
	label := "[" + tag + "]"
	if isTerminal(w) {
		label = color + label + reset
	}
	return label + " " + msg
}

// formatError formats an error line for stderr.
func formatError(msg string) string {
	return tagged(os.Stderr, red, "ERROR", msg)
}

// titleWithDesc formats a section title for stderr.
func titleWithDesc(title, desc string) string {
	return tagged(os.Stderr, bold+cyan, title, desc)
}

func printOK(w io.Writer, msg string) {
	fmt.Fprintln(w, tagged(w, green, "OK", msg))
}

func printWarn(w io.Writer, msg string) {
	fmt.Fprintln(w, tagged(w, yellow, "WARN", msg))
}

func printTitle(w io.Writer, title, desc string) {
	fmt.Fprintln(w, tagged(w, bold+cyan, title, desc))
}

// indent returns the message with indentation
func indent(msg string) string {
	return "     " + msg
}
