package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/holepunchto/lunte/internal/linter/lunte"
	"github.com/holepunchto/lunte/internal/settings"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .lunte-lint.json for the current directory",
	Long: `Create a .lunte-lint.json project settings file.

This command asks:
  1. Whether lunte should only run when it is a project dependency
  2. Which content scopes to lint (selector)
  3. An optional lunte executable path
  4. Optionally, which MCP clients to register lunte-lint with

Use --yes to write the defaults without prompting.`,
	RunE: runInit,
}

var (
	initForce bool
	initYes   bool
	skipMCP   bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing .lunte-lint.json")
	initCmd.Flags().BoolVarP(&initYes, "yes", "y", false, "Write defaults without prompting")
	initCmd.Flags().BoolVar(&skipMCP, "skip-mcp", false, "Skip MCP client registration prompt")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	path := settings.ProjectSettingsPath(wd)
	if _, err := os.Stat(path); err == nil && !initForce {
		printWarn(out, fmt.Sprintf("%s already exists", settings.ProjectFile))
		fmt.Fprintln(out, "Use --force flag to overwrite")
		return &exitError{code: 1}
	}

	s := lunte.DefaultSettings()
	if !initYes {
		if err := promptSettings(out, s); err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				printWarn(out, "Aborted")
				return nil
			}
			return err
		}
	}

	if err := s.Validate(); err != nil {
		return err
	}
	if err := settings.Save(path, s); err != nil {
		return err
	}
	printOK(out, fmt.Sprintf("Created %s", settings.ProjectFile))

	if !initYes && !skipMCP {
		promptMCPRegistration(out)
	}
	return nil
}

// promptSettings asks for the project options and stores the answers in s.
func promptSettings(out io.Writer, s settings.Settings) error {
	printTitle(out, "SETUP", "Configuring lunte for this project")

	gate := promptui.Select{
		Label: "When should lunte run",
		Items: []string{
			"Always (prefer the project's node_modules copy)",
			"Only when lunte is a project dependency",
		},
	}
	index, _, err := gate.Run()
	if err != nil {
		return err
	}
	s[settings.KeyDisableIfNotDependency] = index == 1

	selector := promptui.Prompt{
		Label:   "Selector",
		Default: s.String(settings.KeySelector),
		Validate: func(input string) error {
			if len(settings.ParseSelector(input)) == 0 {
				return fmt.Errorf("selector must name at least one scope")
			}
			return nil
		},
	}
	result, err := selector.Run()
	if err != nil {
		return err
	}
	s[settings.KeySelector] = settings.ParseSelector(result).String()

	executable := promptui.Prompt{
		Label: "lunte executable (empty for automatic lookup)",
	}
	result, err = executable.Run()
	if err != nil {
		return err
	}
	if exe := strings.TrimSpace(result); exe != "" {
		s[settings.KeyExecutable] = exe
	}

	return nil
}
