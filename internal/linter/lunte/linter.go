package lunte

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/settings"
)

// Compile-time interface checks
var (
	_ linter.StdinLinter  = (*Linter)(nil)
	_ linter.Configurable = (*Linter)(nil)
)

// Linter runs the lunte CLI.
//
// Note: Linter is goroutine-safe. Every execution builds its own
// subprocess executor; Configure returns a copy.
type Linter struct {
	// ToolsDir is where lunte is installed by Install.
	// Default: ~/.lunte-lint/tools
	ToolsDir string

	// WorkDir is the directory lunte runs in and where the
	// node_modules lookup starts. Empty means the current directory.
	WorkDir string

	// Executable overrides lunte lookup when set.
	Executable string

	// ExtraArgs are appended to the descriptor command.
	ExtraArgs []string

	// Timeout bounds a single lunte run.
	Timeout time.Duration
}

// New creates a new lunte linter.
func New(toolsDir string) *Linter {
	if toolsDir == "" {
		toolsDir = linter.DefaultToolsDir()
	}

	return &Linter{
		ToolsDir: toolsDir,
		Timeout:  linter.DefaultTimeout,
	}
}

// Name returns the linter name.
func (l *Linter) Name() string {
	return "lunte"
}

// Descriptor returns the lunte integration record.
func (l *Linter) Descriptor() *linter.Descriptor {
	return Descriptor
}

// GetCapabilities returns the lunte linter capabilities.
func (l *Linter) GetCapabilities() linter.Capabilities {
	return linter.Capabilities{
		Name:               "lunte",
		SupportedLanguages: []string{"javascript", "jsx"},
		ReadsStdin:         true,
		Version:            "latest",
	}
}

// Configure applies executable, working_dir and args settings.
// projectRoot is used as the working dir when working_dir is unset.
func (l *Linter) Configure(s settings.Settings, projectRoot string) linter.StdinLinter {
	c := *l
	c.ExtraArgs = append([]string(nil), l.ExtraArgs...)

	if exe := s.String(settings.KeyExecutable); exe != "" {
		c.Executable = exe
	}
	switch {
	case s.String(settings.KeyWorkingDir) != "":
		c.WorkDir = s.String(settings.KeyWorkingDir)
	case projectRoot != "":
		c.WorkDir = projectRoot
	}
	if extra := s.String(settings.KeyArgs); extra != "" {
		args, err := linter.SplitCommand(extra)
		if err != nil {
			log.Printf("warning: ignoring %s setting: %v", settings.KeyArgs, err)
		} else {
			c.ExtraArgs = append(c.ExtraArgs, args...)
		}
	}

	return &c
}

// CheckAvailability checks if lunte is installed.
func (l *Linter) CheckAvailability(ctx context.Context) error {
	if l.resolveExecutable() != "" {
		return nil
	}
	return fmt.Errorf("lunte not found (checked: node_modules/.bin from %s, %s and global PATH)",
		l.workDir(), l.getLuntePath())
}

// Install installs lunte via npm into ToolsDir.
func (l *Linter) Install(ctx context.Context, config linter.InstallConfig) error {
	toolsDir := l.ToolsDir
	if config.ToolsDir != "" {
		toolsDir = config.ToolsDir
	}

	if !config.Force {
		if _, err := os.Stat(filepath.Join(toolsDir, "node_modules", ".bin", "lunte")); err == nil {
			return nil
		}
	}

	if err := linter.EnsureDir(toolsDir); err != nil {
		return fmt.Errorf("failed to create tools dir: %w", err)
	}

	if _, err := exec.LookPath("npm"); err != nil {
		return fmt.Errorf("npm not found: please install Node.js first")
	}

	version := config.Version
	if version == "" {
		version = "latest"
	}

	packageJSON := filepath.Join(toolsDir, "package.json")
	if _, err := os.Stat(packageJSON); os.IsNotExist(err) {
		if err := initPackageJSON(toolsDir); err != nil {
			return fmt.Errorf("failed to init package.json: %w", err)
		}
	}

	executor := linter.NewSubprocessExecutor()
	executor.WorkDir = toolsDir
	output, err := executor.Execute(ctx, "npm", "install", fmt.Sprintf("%s@%s", Package, version))
	if err != nil {
		return fmt.Errorf("npm install failed: %w", err)
	}
	if output.ExitCode != 0 {
		return fmt.Errorf("npm install failed (exit %d): %s", output.ExitCode, output.Stderr)
	}

	return nil
}

// Execute runs lunte in file mode against files on disk.
// lunte has no config flag; config is ignored.
func (l *Linter) Execute(ctx context.Context, _ []byte, files []string) (*linter.ToolOutput, error) {
	if len(files) == 0 {
		return &linter.ToolOutput{}, nil
	}

	exe := l.resolveExecutable()
	if exe == "" {
		return nil, l.CheckAvailability(ctx)
	}

	args := append(append([]string(nil), l.ExtraArgs...), files...)
	output, err := l.executor().Execute(ctx, exe, args...)
	if err != nil {
		return nil, err
	}
	if len(files) == 1 {
		output.Filename = files[0]
	}
	return output, nil
}

// ExecuteStdin runs the descriptor command with source on stdin.
func (l *Linter) ExecuteStdin(ctx context.Context, filename string, source []byte) (*linter.ToolOutput, error) {
	return l.executeStdin(ctx, filename, source)
}

// ParseOutput converts lunte output to diagnostics.
func (l *Linter) ParseOutput(output *linter.ToolOutput) ([]linter.Diagnostic, error) {
	return parseOutput(output)
}

func (l *Linter) executor() *linter.SubprocessExecutor {
	e := linter.NewSubprocessExecutor()
	if l.Timeout > 0 {
		e.Timeout = l.Timeout
	}
	e.WorkDir = l.WorkDir
	return e
}

func (l *Linter) workDir() string {
	if l.WorkDir != "" {
		return l.WorkDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// getLuntePath returns the path to the lunte binary in ToolsDir.
func (l *Linter) getLuntePath() string {
	return filepath.Join(l.ToolsDir, "node_modules", ".bin", "lunte")
}

// resolveExecutable finds lunte: explicit executable, project
// node_modules, tools dir, then PATH.
func (l *Linter) resolveExecutable() string {
	if l.Executable != "" {
		if filepath.IsAbs(l.Executable) || filepath.Base(l.Executable) != l.Executable {
			if _, err := os.Stat(l.Executable); err == nil {
				return l.Executable
			}
			return ""
		}
		if path, err := exec.LookPath(l.Executable); err == nil {
			return path
		}
		return ""
	}

	if local := linter.FindNodeBinary(l.workDir(), "lunte"); local != "" {
		return local
	}

	return linter.FindTool(l.getLuntePath(), "lunte")
}

// initPackageJSON creates a minimal package.json.
func initPackageJSON(dir string) error {
	pkg := map[string]interface{}{
		"name":        "lunte-lint-tools",
		"version":     "1.0.0",
		"description": "lunte-lint managed tools",
		"private":     true,
	}

	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, "package.json"), data, 0644)
}
