package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/linter/lunte"
	"github.com/holepunchto/lunte/internal/settings"
)

// runCLI executes the root command with args and returns what it wrote to stdout.
func runCLI(t *testing.T, stdin io.Reader, args ...string) (string, error) {
	t.Helper()

	lintFormat = "text"
	lintStdinFilename = ""
	lintWatch = false
	lintFileMode = false
	lintConcurrency = 0
	describeScope = ""
	versionTools = false
	initForce = false
	initYes = false
	skipMCP = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

// isolate runs the test in an empty project dir with an empty home.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestVersionCommand(t *testing.T) {
	old := GetVersion()
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion(old) })

	out, err := runCLI(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "lunte-lint version 1.2.3\n", out)
}

func TestVersionCommand_Tools(t *testing.T) {
	dir := isolate(t)
	t.Setenv("PATH", dir)

	out, err := runCLI(t, nil, "version", "--tools")
	require.NoError(t, err)
	assert.Contains(t, out, "[WARN] lunte: lunte not found")
}

func TestDescribeCommand(t *testing.T) {
	out, err := runCLI(t, nil, "describe")
	require.NoError(t, err)

	var infos []linter.DescriptorInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, 1)
	assert.Equal(t, "Lunte", infos[0].Name)
	assert.Equal(t, "lunte --stdin", infos[0].Cmd)
	assert.Equal(t, lunte.Pattern, infos[0].Regex)
	assert.Equal(t, lunte.DefaultSettings(), infos[0].Defaults)
}

func TestDescribeCommand_Scope(t *testing.T) {
	out, err := runCLI(t, nil, "describe", "--scope", "source.jsx")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Lunte"`)

	out, err = runCLI(t, nil, "describe", "--scope", "source.ts")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestSettingsCommand(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, settings.Save(filepath.Join(dir, settings.ProjectFile), settings.Settings{
		settings.KeySelector: "source.jsx",
	}))
	t.Setenv("LUNTE_LINT_DISABLE_IF_NOT_DEPENDENCY", "true")

	out, err := runCLI(t, nil, "settings")
	require.NoError(t, err)

	var got []resolvedSettings
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "lunte", got[0].Linter)
	assert.Equal(t, "source.jsx", got[0].Settings.String(settings.KeySelector))
	assert.True(t, got[0].Settings.Bool(settings.KeyEnableIfDependency))
	assert.True(t, got[0].Settings.Bool(settings.KeyDisableIfNotDependency))
	assert.False(t, got[0].Activation.Enabled, "no package.json declares lunte")
	assert.Empty(t, got[0].ConfigFile)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".lunterc"), []byte("{}"), 0644))
	out, err = runCLI(t, nil, "settings")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, filepath.Join(dir, ".lunterc"), got[0].ConfigFile)
}

func TestInitCommand(t *testing.T) {
	dir := isolate(t)

	out, err := runCLI(t, nil, "init", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Created .lunte-lint.json")

	saved, err := settings.Load(filepath.Join(dir, settings.ProjectFile))
	require.NoError(t, err)
	assert.Equal(t, lunte.DefaultSettings(), saved)

	_, err = runCLI(t, nil, "init", "--yes")
	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr), "existing file without --force fails")
	assert.Equal(t, 1, exitErr.code)

	_, err = runCLI(t, nil, "init", "--yes", "--force")
	assert.NoError(t, err)
}

// writeLunteShim installs a fake lunte that reports one error per run.
func writeLunteShim(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell shims are not supported on windows")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	path := filepath.Join(dir, "fake-lunte")
	script := "#!/bin/sh\ncat > /dev/null\necho \"<stdin>:12:5  ERROR  Unexpected token\"\necho \"1 error\"\nexit 1\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestLintCommand_Stdin(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LUNTE_LINT_EXECUTABLE", writeLunteShim(t, dir))

	out, err := runCLI(t, strings.NewReader("let = 1\n"), "lint", "--stdin-filename", "src/app.js")
	assert.ErrorIs(t, err, errLintFailed)
	assert.Equal(t, "src/app.js:12:5  ERROR  Unexpected token\n1 error\n", out)
}

func TestLintCommand_JSON(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LUNTE_LINT_EXECUTABLE", writeLunteShim(t, dir))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("let = 1\n"), 0644))

	out, err := runCLI(t, nil, "lint", "--format", "json", "app.js")
	assert.ErrorIs(t, err, errLintFailed)

	var diagnostics []linter.Diagnostic
	require.NoError(t, json.Unmarshal([]byte(out), &diagnostics))
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "app.js", diagnostics[0].File)
	assert.Equal(t, 12, diagnostics[0].Line)
	assert.Equal(t, 5, diagnostics[0].Column)
}

func TestLintCommand_OutOfScope(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LUNTE_LINT_EXECUTABLE", writeLunteShim(t, dir))

	out, err := runCLI(t, strings.NewReader("body {}"), "lint", "--stdin-filename", "style.css")
	require.NoError(t, err)
	assert.Equal(t, "✓ No issues found\n", out)
}

func TestLintCommand_ToolMissing(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LUNTE_LINT_EXECUTABLE", filepath.Join(dir, "missing", "lunte"))

	_, err := runCLI(t, strings.NewReader("x"), "lint")
	var exitErr *exitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.code)
}

func TestExitError(t *testing.T) {
	assert.Equal(t, "exit status 1", errLintFailed.Error())

	cause := errors.New("boom")
	err := &exitError{code: 2, err: cause}
	assert.Equal(t, "boom", err.Error())
	assert.ErrorIs(t, err, cause)
}
