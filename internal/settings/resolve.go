package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// ProjectFile is the per-project settings file, looked up in the project dir.
	ProjectFile = ".lunte-lint.json"

	// EnvPrefix prefixes environment overrides, e.g. LUNTE_LINT_SELECTOR.
	EnvPrefix = "LUNTE_LINT_"
)

// UserSettingsPath returns ~/.config/lunte-lint/settings.json.
func UserSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return filepath.Join(home, ".config", "lunte-lint", "settings.json")
}

// ProjectSettingsPath returns the project settings file inside dir.
func ProjectSettingsPath(dir string) string {
	return filepath.Join(dir, ProjectFile)
}

// Resolve merges defaults with user, project and environment overrides, in
// that order. A .env file in projectDir is loaded before the environment is
// read; variables already set in the process win over it.
func Resolve(defaults Settings, projectDir string) (Settings, error) {
	if err := loadDotEnv(filepath.Join(projectDir, ".env")); err != nil {
		return nil, err
	}

	resolved := defaults.Clone()

	user, err := Load(UserSettingsPath())
	if err != nil {
		return nil, err
	}
	resolved = resolved.Merge(user)

	project, err := Load(ProjectSettingsPath(projectDir))
	if err != nil {
		return nil, err
	}
	resolved = resolved.Merge(project)

	env, err := FromEnv(os.Environ())
	if err != nil {
		return nil, err
	}
	return resolved.Merge(env), nil
}

// FromEnv extracts LUNTE_LINT_* overrides from an environment list.
// Unknown keys are ignored; malformed booleans are an error.
func FromEnv(environ []string) (Settings, error) {
	out := Settings{}
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
		kind, known := knownKeys[key]
		if !known {
			continue
		}
		if kind == "bool" {
			b, err := strconv.ParseBool(value)
			if err != nil {
				return nil, fmt.Errorf("invalid boolean for %s: %q", name, value)
			}
			out[key] = b
			continue
		}
		out[key] = value
	}
	return out, nil
}

// loadDotEnv loads path into the process environment. A missing file is
// not an error.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
