package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/engine"
	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/report"
)

var (
	lintFormat        string
	lintStdinFilename string
	lintWatch         bool
	lintFileMode      bool
	lintConcurrency   int
)

var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Lint JavaScript from stdin, files, directories or globs",
	Long: `Run lunte and report its diagnostics.

With no paths, or with "-", source is read from standard input and
--stdin-filename names the file it belongs to. Directories are walked
recursively (node_modules and .git are skipped). Glob patterns support **.

Exit codes: 0 no errors, 1 lint errors reported, 2 lunte could not be run.`,
	Example: `  cat src/app.js | lunte-lint lint --stdin-filename src/app.js
  lunte-lint lint src
  lunte-lint lint 'src/**/*.js' --format json
  lunte-lint lint --watch src`,
	RunE: runLint,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFormat, "format", "f", report.FormatText, "output format (text|json)")
	lintCmd.Flags().StringVar(&lintStdinFilename, "stdin-filename", "", "file name to report for stdin input")
	lintCmd.Flags().BoolVarP(&lintWatch, "watch", "w", false, "re-lint files as they change")
	lintCmd.Flags().BoolVar(&lintFileMode, "file-mode", false, "pass file paths to lunte instead of piping contents through stdin")
	lintCmd.Flags().IntVarP(&lintConcurrency, "concurrency", "j", 0, "files linted in parallel (default: number of CPUs)")
}

func runLint(cmd *cobra.Command, args []string) error {
	runner, err := newRunner(
		engine.WithFileMode(lintFileMode),
		engine.WithConcurrency(lintConcurrency),
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	opts := report.Options{
		Format: lintFormat,
		Color:  lintFormat == report.FormatText && isTerminal(out),
	}

	if lintWatch {
		return watch(ctx, runner, args, out, opts)
	}

	var diagnostics []linter.Diagnostic
	if len(args) == 0 || (len(args) == 1 && args[0] == "-") {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		diagnostics, err = runner.LintSource(ctx, lintStdinFilename, src)
		if err != nil {
			return &exitError{code: 2, err: err}
		}
	} else {
		diagnostics, err = runner.LintFiles(ctx, args)
		if err != nil {
			return &exitError{code: 2, err: err}
		}
	}

	if err := report.Write(out, diagnostics, opts); err != nil {
		return err
	}

	if linter.HasErrors(diagnostics) {
		return errLintFailed
	}
	return nil
}

func watch(ctx context.Context, runner *engine.Runner, args []string, out io.Writer, opts report.Options) error {
	targets := args
	if len(targets) == 0 {
		targets = []string{"."}
	}

	fmt.Fprintln(os.Stderr, titleWithDesc("WATCH", fmt.Sprintf("watching %s (Ctrl+C to stop)", strings.Join(targets, ", "))))

	return runner.Watch(ctx, targets, engine.DefaultDebounce, func(file string, diagnostics []linter.Diagnostic, err error) {
		if err != nil {
			fmt.Fprintln(os.Stderr, formatError(fmt.Sprintf("%s: %v", file, err)))
			return
		}
		fmt.Fprintln(os.Stderr, indent(file))
		if err := report.Write(out, diagnostics, opts); err != nil {
			fmt.Fprintln(os.Stderr, formatError(err.Error()))
		}
	})
}
