package mcp

import (
	"context"
	"fmt"
	"os"

	"github.com/holepunchto/lunte/internal/engine"
	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/report"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server is a MCP (Model Context Protocol) server exposing the registered
// linters. It communicates via JSON-RPC over stdio.
type Server struct {
	runner   *engine.Runner
	registry *linter.Registry
	version  string
}

// NewServer creates a new MCP server instance.
func NewServer(runner *engine.Runner, registry *linter.Registry, version string) *Server {
	return &Server{
		runner:   runner,
		registry: registry,
		version:  version,
	}
}

// LintCodeInput represents the input schema for the lint_code tool.
type LintCodeInput struct {
	Filename string `json:"filename,omitempty" jsonschema:"Path the source belongs to (optional, used for selector matching and reporting)"`
	Source   string `json:"source" jsonschema:"JavaScript source text to lint"`
}

// LintFilesInput represents the input schema for the lint_files tool.
type LintFilesInput struct {
	Paths []string `json:"paths" jsonschema:"Files, directories or glob patterns to lint"`
}

// DescribeInput represents the input schema for the describe_linter tool.
type DescribeInput struct {
	Scope string `json:"scope,omitempty" jsonschema:"Only describe linters whose selector matches this content scope, e.g. source.js"`
}

// LintResult is the structured output of the lint tools.
type LintResult struct {
	Diagnostics []linter.Diagnostic `json:"diagnostics"`
	Summary     string              `json:"summary"`
	HasErrors   bool                `json:"hasErrors"`
}

// DescribeResult is the structured output of describe_linter.
type DescribeResult struct {
	Linters []linter.DescriptorInfo `json:"linters"`
}

// Start runs the server over stdio until the client disconnects.
func (s *Server) Start(ctx context.Context) error {
	fmt.Fprintf(os.Stderr, "lunte-lint MCP server listening on stdio (project: %s)\n", s.runner.ProjectDir())
	return s.newSDKServer().Run(ctx, &sdkmcp.StdioTransport{})
}

// newSDKServer builds the go-sdk server with all tools registered.
func (s *Server) newSDKServer() *sdkmcp.Server {
	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "lunte-lint",
		Version: s.version,
	}, nil)

	// Tool: lint_code
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lint_code",
		Description: "Lint JavaScript source text with lunte and return diagnostics (line, column, message, severity).",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input LintCodeInput) (*sdkmcp.CallToolResult, LintResult, error) {
		return s.handleLintCode(ctx, input)
	})

	// Tool: lint_files
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "lint_files",
		Description: "Lint JavaScript files, directories or glob patterns with lunte.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input LintFilesInput) (*sdkmcp.CallToolResult, LintResult, error) {
		return s.handleLintFiles(ctx, input)
	})

	// Tool: describe_linter
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "describe_linter",
		Description: "Describe the registered linters: command, output pattern and default settings.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, input DescribeInput) (*sdkmcp.CallToolResult, DescribeResult, error) {
		return nil, s.handleDescribe(input), nil
	})

	return server
}

func (s *Server) handleLintCode(ctx context.Context, input LintCodeInput) (*sdkmcp.CallToolResult, LintResult, error) {
	diagnostics, err := s.runner.LintSource(ctx, input.Filename, []byte(input.Source))
	if err != nil {
		return nil, LintResult{}, err
	}
	return textResult(diagnostics), newLintResult(diagnostics), nil
}

func (s *Server) handleLintFiles(ctx context.Context, input LintFilesInput) (*sdkmcp.CallToolResult, LintResult, error) {
	if len(input.Paths) == 0 {
		return nil, LintResult{}, fmt.Errorf("paths must not be empty")
	}
	diagnostics, err := s.runner.LintFiles(ctx, input.Paths)
	if err != nil {
		return nil, LintResult{}, err
	}
	return textResult(diagnostics), newLintResult(diagnostics), nil
}

func (s *Server) handleDescribe(input DescribeInput) DescribeResult {
	var linters []linter.StdinLinter
	if input.Scope != "" {
		linters = s.registry.ForScope(input.Scope)
	} else {
		linters = s.registry.StdinLinters()
	}

	result := DescribeResult{Linters: make([]linter.DescriptorInfo, 0, len(linters))}
	for _, l := range linters {
		result.Linters = append(result.Linters, l.Descriptor().Info())
	}
	return result
}

func newLintResult(diagnostics []linter.Diagnostic) LintResult {
	return LintResult{
		Diagnostics: diagnostics,
		Summary:     report.Summary(diagnostics),
		HasErrors:   linter.HasErrors(diagnostics),
	}
}

func textResult(diagnostics []linter.Diagnostic) *sdkmcp.CallToolResult {
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: report.Text(diagnostics, false)},
		},
	}
}
