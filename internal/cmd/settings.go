package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the resolved settings for the current directory",
	Long: `Show each linter's settings after merging, in order:
  1. descriptor defaults
  2. ~/.config/lunte-lint/settings.json
  3. .lunte-lint.json in the current directory
  4. LUNTE_LINT_* environment variables (.env is loaded first)

The dependency gate result and the nearest lunte config file (.lunterc)
for the current directory are included.`,
	RunE: runSettings,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}

type resolvedSettings struct {
	Linter     string              `json:"linter"`
	Settings   settings.Settings   `json:"settings"`
	Activation settings.Activation `json:"activation"`
	ConfigFile string              `json:"configFile,omitempty"`
}

func runSettings(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	var out []resolvedSettings
	for _, l := range linter.Global().StdinLinters() {
		resolved, err := settings.Resolve(l.Descriptor().Defaults(), wd)
		if err != nil {
			return fmt.Errorf("%s: %w", l.Name(), err)
		}
		act, err := settings.Activate(resolved, wd, l.Name())
		if err != nil {
			return fmt.Errorf("%s: %w", l.Name(), err)
		}
		out = append(out, resolvedSettings{
			Linter:     l.Name(),
			Settings:   resolved,
			Activation: act,
			ConfigFile: linter.FindConfigFile(wd, linter.Global().ConfigFiles(l.Name())),
		})
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
