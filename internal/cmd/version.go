package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/linter"
)

// version is overridden from cmd/lunte-lint via -ldflags.
var version = "dev"

var versionTools bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long: `Print the version number of lunte-lint.

With --tools, also report whether each registered linter can be found.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "lunte-lint version %s\n", version)
		if !versionTools {
			return
		}
		for _, name := range linter.Global().GetAllToolNames() {
			l, err := linter.Global().GetLinter(name)
			if err != nil {
				continue
			}
			if err := l.CheckAvailability(cmd.Context()); err != nil {
				printWarn(out, fmt.Sprintf("%s: %v", name, err))
				continue
			}
			printOK(out, fmt.Sprintf("%s: available", name))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionTools, "tools", false, "report linter availability")
}

// SetVersion sets the version reported by the version command and the MCP server.
func SetVersion(v string) {
	version = v
}

// GetVersion returns the version set by SetVersion.
func GetVersion() string {
	return version
}
