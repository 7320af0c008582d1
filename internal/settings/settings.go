package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Recognized option keys.
const (
	KeyEnableIfDependency     = "enable_if_dependency"
	KeyDisableIfNotDependency = "disable_if_not_dependency"
	KeySelector               = "selector"
	KeyExecutable             = "executable"
	KeyWorkingDir             = "working_dir"
	KeyDisable                = "disable"
	KeyArgs                   = "args"
)

// knownKeys maps every recognized option to its value kind ("bool" or "string").
var knownKeys = map[string]string{
	KeyEnableIfDependency:     "bool",
	KeyDisableIfNotDependency: "bool",
	KeySelector:               "string",
	KeyExecutable:             "string",
	KeyWorkingDir:             "string",
	KeyDisable:                "bool",
	KeyArgs:                   "string",
}

// Settings is a flat option map as presented to, and merged by, the host.
// Values are bool or string.
type Settings map[string]any

// IsKnown reports whether key is part of the recognized option set.
func IsKnown(key string) bool {
	_, ok := knownKeys[key]
	return ok
}

// Bool returns the boolean value for key, false when unset or not a bool.
func (s Settings) Bool(key string) bool {
	b, _ := s[key].(bool)
	return b
}

// String returns the string value for key, "" when unset or not a string.
func (s Settings) String(key string) string {
	v, _ := s[key].(string)
	return v
}

// Clone returns a shallow copy.
func (s Settings) Clone() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Merge returns a copy of s with every key of over applied on top.
func (s Settings) Merge(over Settings) Settings {
	out := s.Clone()
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Keys returns the option keys in sorted order.
func (s Settings) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every key is recognized and carries the right kind of value.
func (s Settings) Validate() error {
	for _, k := range s.Keys() {
		kind, ok := knownKeys[k]
		if !ok {
			return fmt.Errorf("unknown setting %q", k)
		}
		switch kind {
		case "bool":
			if _, ok := s[k].(bool); !ok {
				return fmt.Errorf("setting %q must be a boolean, got %T", k, s[k])
			}
		case "string":
			if _, ok := s[k].(string); !ok {
				return fmt.Errorf("setting %q must be a string, got %T", k, s[k])
			}
		}
	}
	return nil
}

// Load reads a settings file. A missing file yields empty settings.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}
	if s == nil {
		s = Settings{}
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	return s, nil
}

// Save writes settings as indented JSON, creating the parent directory.
func Save(path string, s Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}

	return nil
}
