package linter

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"sync"
)

// ErrNotFound is wrapped by lookups of unregistered linters.
var ErrNotFound = errors.New("linter not found")

var errNilLinter = errors.New("cannot register nil linter")

// IsNotFound reports whether err came from a failed registry lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

type registration struct {
	linter Linter

	// configFiles are the tool's own config file names, most preferred first.
	configFiles []string
}

// Registry maps linter names to linters. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]registration
}

var (
	global     *Registry
	globalOnce sync.Once
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]registration)}
}

// Global returns the process-wide registry linters add themselves to from init.
func Global() *Registry {
	globalOnce.Do(func() { global = NewRegistry() })
	return global
}

// RegisterTool adds l under its name together with the config file names
// the tool reads. A second registration under the same name is ignored.
func (r *Registry) RegisterTool(l Linter, configFiles ...string) error {
	if l == nil {
		return errNilLinter
	}
	name := l.Name()

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[name]; exists {
		log.Printf("warning: linter already registered: %s (ignoring duplicate)", name)
		return nil
	}
	r.byName[name] = registration{linter: l, configFiles: slices.Clone(configFiles)}
	return nil
}

// GetLinter returns the linter registered as name.
func (r *Registry) GetLinter(name string) (Linter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return reg.linter, nil
}

// ConfigFiles returns the config file names registered for name.
func (r *Registry) ConfigFiles(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.byName[name].configFiles)
}

// GetAllToolNames returns all registered names, sorted.
func (r *Registry) GetAllToolNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// StdinLinters returns the registered linters that read from stdin,
// ordered by name.
func (r *Registry) StdinLinters() []StdinLinter {
	var out []StdinLinter
	for _, name := range r.GetAllToolNames() {
		l, err := r.GetLinter(name)
		if err != nil {
			continue
		}
		if sl, ok := l.(StdinLinter); ok {
			out = append(out, sl)
		}
	}
	return out
}

// ForScope returns the stdin linters whose default selector matches scope.
func (r *Registry) ForScope(scope string) []StdinLinter {
	var out []StdinLinter
	for _, sl := range r.StdinLinters() {
		if sl.Descriptor().Selector().Matches(scope) {
			out = append(out, sl)
		}
	}
	return out
}
