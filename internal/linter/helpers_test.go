package linter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "packages", "app", "src")
	require.NoError(t, os.MkdirAll(nested, 0755))
	names := []string{".lunterc", ".lunterc.json"}

	assert.Empty(t, FindConfigFile(nested, names))
	assert.Empty(t, FindConfigFile(nested, nil))

	touch(t, filepath.Join(root, ".lunterc.json"))
	assert.Equal(t, filepath.Join(root, ".lunterc.json"), FindConfigFile(nested, names))

	touch(t, filepath.Join(root, ".lunterc"))
	assert.Equal(t, filepath.Join(root, ".lunterc"), FindConfigFile(nested, names), "earlier name wins in one dir")

	touch(t, filepath.Join(root, "packages", "app", ".lunterc.json"))
	assert.Equal(t, filepath.Join(root, "packages", "app", ".lunterc.json"), FindConfigFile(nested, names), "nearest dir wins")
}

func TestFindNodeBinary(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Empty(t, FindNodeBinary(nested, "lunte"))

	bin := filepath.Join(root, "node_modules", ".bin", "lunte")
	touch(t, bin)
	assert.Equal(t, bin, FindNodeBinary(nested, "lunte"))

	// A directory with the binary's name is not a binary.
	require.NoError(t, os.MkdirAll(filepath.Join(nested, "node_modules", ".bin", "lunte"), 0755))
	assert.Equal(t, bin, FindNodeBinary(nested, "lunte"))
}

func TestFindTool(t *testing.T) {
	local := filepath.Join(t.TempDir(), "tool")
	assert.Empty(t, FindTool(local, "definitely-not-a-real-binary-lunte"))

	touch(t, local)
	assert.Equal(t, local, FindTool(local, "definitely-not-a-real-binary-lunte"))
}
