package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/linter"
)

var describeScope string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Print the registered linter descriptors as JSON",
	Long: `Print each linter's command, display name, output pattern and
default settings, exactly as they are handed to the runner.`,
	Example: `  lunte-lint describe
  lunte-lint describe --scope source.jsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var linters []linter.StdinLinter
		if describeScope != "" {
			linters = linter.Global().ForScope(describeScope)
		} else {
			linters = linter.Global().StdinLinters()
		}

		infos := make([]linter.DescriptorInfo, 0, len(linters))
		for _, l := range linters {
			infos = append(infos, l.Descriptor().Info())
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().StringVar(&describeScope, "scope", "", "only linters whose selector matches this content scope")
}
