package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/engine"
	"github.com/holepunchto/lunte/internal/linter"
)

// verbose is a global flag for verbose output
var verbose bool

// resultCacheSize bounds the number of cached lint results per process.
const resultCacheSize = 256

var rootCmd = &cobra.Command{
	Use:   "lunte-lint",
	Short: "lunte-lint - run the lunte JavaScript linter and report diagnostics",
	Long: `lunte-lint integrates the lunte linter with editors and tools.

It runs "lunte --stdin", reads each "<path>:<line>:<col>  <message>" line
of output as a diagnostic, and reports the results.

Features:
  - Lint stdin, files, directories and glob patterns
  - Settings resolved from defaults, user, project and environment
  - Watch mode that re-lints files as they change
  - MCP server for editor and AI tooling`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a process exit code. A nil err exits silently.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// errLintFailed signals that diagnostics with error severity were reported.
var errLintFailed = &exitError{code: 1}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.err != nil {
				fmt.Fprintln(os.Stderr, formatError(exitErr.err.Error()))
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, formatError(err.Error()))
		os.Exit(2)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newRunner builds a runner over the global registry for the current directory.
func newRunner(opts ...engine.Option) (*engine.Runner, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	opts = append([]engine.Option{engine.WithVerbose(verbose)}, opts...)
	return engine.NewRunner(linter.Global(), wd, resultCacheSize, opts...)
}
