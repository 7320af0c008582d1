package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/settings"
)

// defaultScope is assumed for stdin input without a filename.
const defaultScope = "source.js"

// ResolveFunc resolves a linter's settings for a project dir.
type ResolveFunc func(defaults settings.Settings, projectDir string) (settings.Settings, error)

// Runner lints source text and files with every registered stdin linter
// whose selector and dependency gate allow it.
//
// Runner is safe for concurrent use.
type Runner struct {
	registry    *linter.Registry
	projectDir  string
	resolve     ResolveFunc
	cache       *lru.Cache[string, []linter.Diagnostic]
	concurrency int
	fileMode    bool
	verbose     bool
}

// Option is a functional option for Runner.
type Option func(*Runner)

// WithConcurrency bounds the number of files linted in parallel.
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithResolver replaces settings resolution (settings.Resolve by default).
func WithResolver(fn ResolveFunc) Option {
	return func(r *Runner) { r.resolve = fn }
}

// WithFileMode makes LintFiles pass paths to the tool instead of piping
// file contents through stdin.
func WithFileMode(enabled bool) Option {
	return func(r *Runner) { r.fileMode = enabled }
}

// WithVerbose enables verbose logging to stderr.
func WithVerbose(verbose bool) Option {
	return func(r *Runner) { r.verbose = verbose }
}

// NewRunner creates a runner over registry. cacheSize bounds the number of
// cached lint results; it must be positive.
func NewRunner(registry *linter.Registry, projectDir string, cacheSize int, opts ...Option) (*Runner, error) {
	cache, err := lru.New[string, []linter.Diagnostic](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create result cache: %w", err)
	}

	if projectDir == "" {
		projectDir = "."
	}
	abs, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("invalid project dir: %w", err)
	}

	r := &Runner{
		registry:    registry,
		projectDir:  abs,
		resolve:     settings.Resolve,
		cache:       cache,
		concurrency: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(r)
	}

	return r, nil
}

// ProjectDir returns the absolute project directory.
func (r *Runner) ProjectDir() string {
	return r.projectDir
}

// LintSource lints src as if it were the contents of filename.
// filename may be empty for unsaved buffers.
func (r *Runner) LintSource(ctx context.Context, filename string, src []byte) ([]linter.Diagnostic, error) {
	scope := defaultScope
	dir := r.projectDir
	if filename != "" {
		scope = settings.ScopeForFile(filename)
		dir = filepath.Dir(r.abs(filename))
	}

	diagnostics := make([]linter.Diagnostic, 0)
	for _, l := range r.registry.StdinLinters() {
		configured, ok, err := r.prepare(l, scope, dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		key := cacheKey(l.Name(), filename, src, configured, r.toolConfig(l.Name(), dir))
		if cached, hit := r.cache.Get(key); hit {
			r.logf("cache hit: %s %s", l.Name(), filename)
			diagnostics = append(diagnostics, cached...)
			continue
		}

		output, err := configured.ExecuteStdin(ctx, filename, src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Name(), err)
		}
		r.logf("%s %s: exit %d in %s", l.Name(), filename, output.ExitCode, output.Duration)

		found, err := configured.ParseOutput(output)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Name(), err)
		}

		r.cache.Add(key, found)
		diagnostics = append(diagnostics, found...)
	}

	return diagnostics, nil
}

// lintFile lints one file from disk.
func (r *Runner) lintFile(ctx context.Context, path string) ([]linter.Diagnostic, error) {
	if !r.fileMode {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return r.LintSource(ctx, path, src)
	}

	scope := settings.ScopeForFile(path)
	dir := filepath.Dir(r.abs(path))

	diagnostics := make([]linter.Diagnostic, 0)
	for _, l := range r.registry.StdinLinters() {
		configured, ok, err := r.prepare(l, scope, dir)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		output, err := configured.Execute(ctx, nil, []string{r.abs(path)})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Name(), err)
		}
		output.Filename = path

		found, err := configured.ParseOutput(output)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", l.Name(), err)
		}
		diagnostics = append(diagnostics, found...)
	}

	return diagnostics, nil
}

// LintFiles expands targets (files, directories, globs) and lints every
// JavaScript file found, in parallel. Results are in sorted path order.
func (r *Runner) LintFiles(ctx context.Context, targets []string) ([]linter.Diagnostic, error) {
	files, err := ExpandTargets(targets)
	if err != nil {
		return nil, err
	}

	results := make([][]linter.Diagnostic, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, file := range files {
		g.Go(func() error {
			found, err := r.lintFile(gctx, file)
			if err != nil {
				return err
			}
			results[i] = found
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	diagnostics := make([]linter.Diagnostic, 0)
	for _, found := range results {
		diagnostics = append(diagnostics, found...)
	}
	return diagnostics, nil
}

// prepare resolves settings for l, applies the selector and dependency
// gate, and returns a configured linter. ok is false when l does not apply.
func (r *Runner) prepare(l linter.StdinLinter, scope, dir string) (linter.StdinLinter, bool, error) {
	resolved, err := r.resolve(l.Descriptor().Defaults(), r.projectDir)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", l.Name(), err)
	}

	selector := settings.ParseSelector(resolved.String(settings.KeySelector))
	if !selector.Matches(scope) {
		r.logf("%s: skipped, scope %q not in selector %q", l.Name(), scope, selector)
		return nil, false, nil
	}

	act, err := settings.Activate(resolved, dir, l.Name())
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", l.Name(), err)
	}
	if !act.Enabled {
		r.logf("%s: skipped, %s", l.Name(), act.Reason)
		return nil, false, nil
	}

	root := act.ProjectRoot
	if !act.Local {
		root = ""
	}
	if c, ok := l.(linter.Configurable); ok {
		return c.Configure(resolved, root), true, nil
	}
	return l, true, nil
}

func (r *Runner) abs(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(r.projectDir, path)
}

func (r *Runner) logf(format string, args ...any) {
	if r.verbose {
		fmt.Fprintf(os.Stderr, "[lunte-lint] "+format+"\n", args...)
	}
}

// toolConfig returns the contents of the linter's own config file nearest
// to dir, or nil when there is none.
func (r *Runner) toolConfig(name, dir string) []byte {
	path := linter.FindConfigFile(dir, r.registry.ConfigFiles(name))
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	return data
}

// cacheKey identifies a lint result by linter, file, content, the
// configured linter state and the tool's config file contents.
func cacheKey(name, filename string, src []byte, configured linter.StdinLinter, toolConfig []byte) string {
	h := sha256.New()
	h.Write([]byte(name))
	h.Write([]byte{0})
	h.Write([]byte(filename))
	h.Write([]byte{0})
	h.Write(src)
	h.Write([]byte{0})
	if state, err := json.Marshal(configured); err == nil {
		h.Write(state)
	}
	h.Write([]byte{0})
	h.Write(toolConfig)
	return hex.EncodeToString(h.Sum(nil))
}
