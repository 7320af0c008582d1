package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// FindPackageJSON walks up from dir and returns the nearest package.json,
// or "" when none exists.
func FindPackageJSON(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, "package.json")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// HasDependency reports whether the package.json at path lists pkg under
// dependencies or devDependencies.
func HasDependency(path, pkg string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest packageJSON
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false, fmt.Errorf("invalid package.json %s: %w", path, err)
	}

	if _, ok := manifest.Dependencies[pkg]; ok {
		return true, nil
	}
	_, ok := manifest.DevDependencies[pkg]
	return ok, nil
}

// Activation is the outcome of the dependency gate.
type Activation struct {
	Enabled bool `json:"enabled"`
	// Local is set when the project declares the package, so the project's
	// node_modules copy should be preferred over a global install.
	Local bool `json:"local"`
	// ProjectRoot is the directory holding the package.json that was consulted.
	ProjectRoot string `json:"projectRoot,omitempty"`
	Reason      string `json:"reason"`
}

// Activate applies the disable, enable_if_dependency and
// disable_if_not_dependency options for package pkg, starting the
// package.json lookup at dir.
func Activate(s Settings, dir, pkg string) (Activation, error) {
	if s.Bool(KeyDisable) {
		return Activation{Reason: "disabled by settings"}, nil
	}

	manifest := FindPackageJSON(dir)
	declared := false
	root := ""
	if manifest != "" {
		root = filepath.Dir(manifest)
		ok, err := HasDependency(manifest, pkg)
		if err != nil {
			return Activation{}, err
		}
		declared = ok
	}

	switch {
	case declared && s.Bool(KeyEnableIfDependency):
		return Activation{Enabled: true, Local: true, ProjectRoot: root,
			Reason: fmt.Sprintf("%s is a project dependency", pkg)}, nil
	case !declared && s.Bool(KeyDisableIfNotDependency):
		return Activation{ProjectRoot: root,
			Reason: fmt.Sprintf("%s is not a project dependency", pkg)}, nil
	default:
		return Activation{Enabled: true, Local: declared, ProjectRoot: root,
			Reason: "enabled"}, nil
	}
}
