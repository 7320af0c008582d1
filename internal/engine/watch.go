package engine

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/settings"
)

// DefaultDebounce is how long a file must stay quiet before it is re-linted.
const DefaultDebounce = 100 * time.Millisecond

// ResultHandler receives the outcome of linting one changed file.
// It is called from a single goroutine.
type ResultHandler func(file string, diagnostics []linter.Diagnostic, err error)

// Watch re-lints the files named by targets as they are written, until ctx
// is canceled. Targets take the same forms as LintFiles: directories are
// watched recursively, a file through its parent directory and a glob
// through its static base. Bursts of events for the same file are debounced.
func (r *Runner) Watch(ctx context.Context, targets []string, debounce time.Duration, handle ResultHandler) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if len(targets) == 0 {
		return fmt.Errorf("nothing to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	set, err := newWatchSet(watcher, targets)
	if err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]*time.Timer)
		ready   = make(chan string, 64)
	)
	defer func() {
		mu.Lock()
		for _, t := range pending {
			t.Stop()
		}
		mu.Unlock()
	}()

	schedule := func(path string) {
		mu.Lock()
		defer mu.Unlock()
		if t, ok := pending[path]; ok {
			t.Reset(debounce)
			return
		}
		pending[path] = time.AfterFunc(debounce, func() {
			mu.Lock()
			delete(pending, path)
			mu.Unlock()
			select {
			case ready <- path:
			case <-ctx.Done():
			}
		})
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if event.Has(fsnotify.Create) && isDir(path) {
				if set.recurseInto(path) {
					if err := addRecursive(watcher, path); err != nil {
						r.logf("watch: %v", err)
					}
				}
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if set.covers(path) {
				schedule(path)
			}

		case path := <-ready:
			found, err := r.LintFiles(ctx, []string{path})
			handle(path, found, err)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logf("watch error: %v", err)
		}
	}
}

// watchSet records what each target asked to be watched, so events from a
// shared parent directory can be filtered back to the targets.
type watchSet struct {
	roots []string
	files map[string]bool
	globs []string
}

func newWatchSet(watcher *fsnotify.Watcher, targets []string) (*watchSet, error) {
	set := &watchSet{files: make(map[string]bool)}

	for _, target := range targets {
		if hasMeta(target) {
			pattern := filepath.Clean(target)
			if !doublestar.ValidatePathPattern(pattern) {
				return nil, fmt.Errorf("invalid pattern %q", target)
			}
			base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
			if err := addRecursive(watcher, filepath.FromSlash(base)); err != nil {
				return nil, err
			}
			set.globs = append(set.globs, pattern)
			continue
		}

		path := filepath.Clean(target)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("cannot watch %s: %w", target, err)
		}
		if info.IsDir() {
			if err := addRecursive(watcher, path); err != nil {
				return nil, err
			}
			set.roots = append(set.roots, path)
			continue
		}
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return nil, fmt.Errorf("failed to watch %s: %w", target, err)
		}
		set.files[path] = true
	}

	if len(watcher.WatchList()) == 0 {
		return nil, fmt.Errorf("nothing to watch in %s", strings.Join(targets, ", "))
	}
	return set, nil
}

// covers reports whether a change to path should trigger a lint.
// Explicitly named files are linted whatever their extension.
func (s *watchSet) covers(path string) bool {
	if s.files[path] {
		return true
	}
	if settings.ScopeForFile(path) == "" {
		return false
	}
	for _, root := range s.roots {
		if within(root, path) {
			return true
		}
	}
	for _, pattern := range s.globs {
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
	}
	return false
}

// recurseInto reports whether a newly created directory belongs to a
// recursively watched target.
func (s *watchSet) recurseInto(dir string) bool {
	if skipDirs[filepath.Base(dir)] {
		return false
	}
	for _, root := range s.roots {
		if within(root, dir) {
			return true
		}
	}
	for _, pattern := range s.globs {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		if within(filepath.FromSlash(base), dir) {
			return true
		}
	}
	return false
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// addRecursive watches dir and every subdirectory not in skipDirs.
func addRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
