package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/manifoldco/promptui"
)

// mcpServerName is the key lunte-lint is registered under.
const mcpServerName = "lunte-lint"

// MCPRegistrationConfig represents the MCP configuration structure
// Used for Claude Code, Cursor
type MCPRegistrationConfig struct {
	MCPServers map[string]MCPServerConfig `json:"mcpServers"`
}

// VSCodeMCPConfig represents the VS Code MCP configuration structure
type VSCodeMCPConfig struct {
	Servers map[string]MCPServerConfig `json:"servers"`
	Inputs  []interface{}              `json:"inputs,omitempty"`
}

// MCPServerConfig represents a single MCP server configuration
type MCPServerConfig struct {
	Type    string            `json:"type,omitempty"`
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

var mcpApps = []string{"claude-code", "cursor", "vscode"}

// promptMCPRegistration prompts user to register lunte-lint as MCP server
func promptMCPRegistration(out io.Writer) {
	items := []string{
		"Claude Code (project)",
		"Cursor (project)",
		"VS Code (project)",
		"All",
		"Skip",
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . }}",
		Selected: "✓ {{ . | green }}",
	}

	prompt := promptui.Select{
		Label:     "Register lunte-lint as an MCP server",
		Items:     items,
		Templates: templates,
		Size:      5,
	}

	index, _, err := prompt.Run()
	if err != nil || index == len(items)-1 {
		fmt.Fprintln(out, "Skipped MCP registration")
		fmt.Fprintln(out, "Tip: run 'lunte-lint mcp register' later")
		return
	}

	apps := mcpApps
	if index < len(mcpApps) {
		apps = []string{mcpApps[index]}
	}
	for _, app := range apps {
		if err := registerMCP(out, app); err != nil {
			fmt.Fprintln(os.Stderr, formatError(fmt.Sprintf("failed to register %s: %v", app, err)))
		}
	}
}

// getMCPConfigPath returns the project config file an app reads MCP servers from.
func getMCPConfigPath(app string) string {
	switch app {
	case "claude-code":
		return ".mcp.json"
	case "cursor":
		return filepath.Join(".cursor", "mcp.json")
	case "vscode":
		return filepath.Join(".vscode", "mcp.json")
	default:
		return ""
	}
}

// registerMCP adds lunte-lint to the app's MCP config, keeping other servers.
func registerMCP(out io.Writer, app string) error {
	configPath := getMCPConfigPath(app)
	if configPath == "" {
		return fmt.Errorf("unknown app %q (want one of %v)", app, mcpApps)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	existing, err := os.ReadFile(configPath)
	fileExists := err == nil
	if fileExists {
		backupPath := configPath + ".bak"
		if err := os.WriteFile(backupPath, existing, 0644); err != nil {
			printWarn(out, fmt.Sprintf("failed to create backup: %v", err))
		}
	}

	server := MCPServerConfig{
		Command: mcpCommand(),
		Args:    []string{"mcp"},
	}

	var data []byte
	if app == "vscode" {
		var cfg VSCodeMCPConfig
		if fileExists {
			if err := json.Unmarshal(existing, &cfg); err != nil {
				printWarn(out, fmt.Sprintf("invalid JSON in %s, replacing it (backup kept)", configPath))
				cfg = VSCodeMCPConfig{}
			}
		}
		if cfg.Servers == nil {
			cfg.Servers = make(map[string]MCPServerConfig)
		}
		server.Type = "stdio"
		cfg.Servers[mcpServerName] = server
		data, err = json.MarshalIndent(cfg, "", "  ")
	} else {
		var cfg MCPRegistrationConfig
		if fileExists {
			if err := json.Unmarshal(existing, &cfg); err != nil {
				printWarn(out, fmt.Sprintf("invalid JSON in %s, replacing it (backup kept)", configPath))
				cfg = MCPRegistrationConfig{}
			}
		}
		if cfg.MCPServers == nil {
			cfg.MCPServers = make(map[string]MCPServerConfig)
		}
		if app == "cursor" {
			server.Type = "stdio"
		}
		cfg.MCPServers[mcpServerName] = server
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printOK(out, fmt.Sprintf("Registered %s in %s", mcpServerName, configPath))
	return nil
}

// mcpCommand returns the command MCP clients should launch: the installed
// binary if it is on PATH, else this executable.
func mcpCommand() string {
	if path, err := exec.LookPath("lunte-lint"); err == nil {
		return path
	}
	if exe, err := os.Executable(); err == nil {
		return exe
	}
	return "lunte-lint"
}
