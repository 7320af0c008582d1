package cmd

import (
	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server to integrate with editors and LLM tools",
	Long: `Start Model Context Protocol (MCP) server.
Editors and LLM-based coding tools can lint code through stdio.

Tools provided by MCP server:
- lint_code: Lint JavaScript source text
- lint_files: Lint files, directories or glob patterns
- describe_linter: Show the linter command, output pattern and defaults

Communicates via stdio for integration with Claude Desktop, Claude Code, Cursor, and other MCP clients.`,
	Example: `  lunte-lint mcp`,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		server := mcp.NewServer(runner, linter.Global(), GetVersion())
		return server.Start(cmd.Context())
	},
}

var mcpRegisterCmd = &cobra.Command{
	Use:   "register [app]",
	Short: "Register lunte-lint as an MCP server for an editor or AI tool",
	Long: `Register lunte-lint in an MCP client's config.

Apps: claude-code, cursor, vscode. Without an app, a prompt is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			promptMCPRegistration(cmd.OutOrStdout())
			return nil
		}
		return registerMCP(cmd.OutOrStdout(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.AddCommand(mcpRegisterCmd)
}
