package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/holepunchto/lunte/internal/settings"
)

// skipDirs are never descended into when expanding directories.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
}

// ExpandTargets turns files, directories and glob patterns into a sorted,
// de-duplicated list of files with a known content scope. Explicitly named
// files are kept even when their extension is unknown.
func ExpandTargets(targets []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, target := range targets {
		if hasMeta(target) {
			matches, err := doublestar.FilepathGlob(target)
			if err != nil {
				return nil, fmt.Errorf("invalid pattern %q: %w", target, err)
			}
			for _, m := range matches {
				if isLintable(m) {
					add(m)
				}
			}
			continue
		}

		info, err := os.Stat(target)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", target, err)
		}
		if !info.IsDir() {
			add(target)
			continue
		}

		err = filepath.WalkDir(target, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != target && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if settings.ScopeForFile(path) != "" {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", target, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

func isLintable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return settings.ScopeForFile(path) != ""
}
