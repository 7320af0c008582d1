package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/linter"
)

var (
	installVersion  string
	installForce    bool
	installToolsDir string
)

var installCmd = &cobra.Command{
	Use:   "install [linter]",
	Short: "Install a linter into the lunte-lint tools directory",
	Long: `Install a linter with npm into ~/.lunte-lint/tools (or --tools-dir).
Installed tools are used when the project has no local copy.`,
	Example: `  lunte-lint install
  lunte-lint install lunte --version 1.2.0`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		name := "lunte"
		if len(args) > 0 {
			name = args[0]
		}

		l, err := linter.Global().GetLinter(name)
		if err != nil {
			return err
		}

		if !installForce {
			if err := l.CheckAvailability(cmd.Context()); err == nil {
				printOK(out, fmt.Sprintf("%s is already available", name))
				return nil
			}
		}

		printTitle(out, "INSTALL", fmt.Sprintf("Installing %s", name))
		err = l.Install(cmd.Context(), linter.InstallConfig{
			ToolsDir: installToolsDir,
			Version:  installVersion,
			Force:    installForce,
		})
		if err != nil {
			return err
		}

		printOK(out, fmt.Sprintf("%s installed", name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().StringVar(&installVersion, "version", "", "version to install (default: latest)")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "reinstall even if available")
	installCmd.Flags().StringVar(&installToolsDir, "tools-dir", "", "install directory (default: ~/.lunte-lint/tools)")
}
