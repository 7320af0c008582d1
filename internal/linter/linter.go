package linter

import (
	"context"

	"github.com/holepunchto/lunte/internal/settings"
)

// Linter is an external linting tool driven as a subprocess.
type Linter interface {
	Name() string
	GetCapabilities() Capabilities

	// CheckAvailability returns nil when the tool can be run, else an
	// error naming the places that were searched.
	CheckAvailability(ctx context.Context) error

	// Install fetches the tool into the tools dir.
	Install(ctx context.Context, config InstallConfig) error

	// Execute runs the tool against files on disk. config is tool
	// specific and may be nil.
	Execute(ctx context.Context, config []byte, files []string) (*ToolOutput, error)

	// ParseOutput converts raw output to diagnostics. Output lines it does
	// not recognize are dropped.
	ParseOutput(output *ToolOutput) ([]Diagnostic, error)
}

// StdinLinter is a Linter that can read source text from standard input.
type StdinLinter interface {
	Linter

	// ExecuteStdin runs the tool with source on stdin. filename is the
	// path the source belongs to; it may be empty for unsaved buffers.
	ExecuteStdin(ctx context.Context, filename string, source []byte) (*ToolOutput, error)

	// Descriptor returns the static integration record for the tool.
	Descriptor() *Descriptor
}

// Configurable is implemented by linters that take resolved settings
// (executable, working_dir, args) before a run. Configure returns a
// configured copy and leaves the receiver untouched.
type Configurable interface {
	Configure(s settings.Settings, projectRoot string) StdinLinter
}

// Capabilities describes a linter for listings and tool discovery.
type Capabilities struct {
	Name               string
	SupportedLanguages []string
	ReadsStdin         bool   // implements StdinLinter
	Version            string // version constraint, e.g. "latest"
}

// InstallConfig controls Install. Zero values mean the linter's tools
// dir and the latest version.
type InstallConfig struct {
	ToolsDir string
	Version  string
	Force    bool // reinstall even when present
}

// ToolOutput is what one run of a tool produced.
type ToolOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration string

	// Filename is the file the output refers to, when known. Parsers use
	// it in place of the path the tool printed (e.g. "<stdin>").
	Filename string
}

// Diagnostic is one issue reported by a tool.
type Diagnostic struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"` // "error", "warning", "info"
	RuleID   string `json:"ruleId,omitempty"`
	Linter   string `json:"linter,omitempty"`
}
