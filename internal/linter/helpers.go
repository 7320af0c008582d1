package linter

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// DefaultToolsDir returns ~/.lunte-lint/tools, where Install puts tools
// that a project does not provide itself.
func DefaultToolsDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lunte-lint", "tools")
}

// EnsureDir creates path and its parents.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// FindTool returns localPath when it exists, else globalName resolved on
// PATH, else "".
func FindTool(localPath, globalName string) string {
	if localPath != "" {
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}
	if path, err := exec.LookPath(globalName); err == nil {
		return path
	}
	return ""
}

// FindNodeBinary returns node_modules/.bin/<name> from dir or its nearest
// ancestor that has one, or "".
func FindNodeBinary(dir, name string) string {
	return findUp(dir, filepath.Join("node_modules", ".bin", name))
}

// FindConfigFile returns the first of names found in dir or its nearest
// ancestor holding any of them, or "". Within one directory names are
// tried in order.
func FindConfigFile(dir string, names []string) string {
	if len(names) == 0 {
		return ""
	}
	return findUp(dir, names...)
}

// findUp walks from dir to the filesystem root and returns the first
// regular file matching one of rels.
func findUp(dir string, rels ...string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, rel := range rels {
			candidate := filepath.Join(dir, rel)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// MapSeverity normalizes a tool's severity label to "error", "warning"
// or "info".
func MapSeverity(s string) string {
	switch strings.ToLower(s) {
	case "error", "err", "fatal", "critical":
		return "error"
	case "warning", "warn":
		return "warning"
	default:
		return "info"
	}
}

// HasErrors reports whether any diagnostic has error severity.
func HasErrors(diagnostics []Diagnostic) bool {
	for _, d := range diagnostics {
		if d.Severity == "error" {
			return true
		}
	}
	return false
}
