package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePackageJSON(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(content), 0644))
}

func TestFindPackageJSON_WalksUp(t *testing.T) {
	root := t.TempDir()
	writePackageJSON(t, root, `{}`)
	nested := filepath.Join(root, "src", "lib")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, filepath.Join(root, "package.json"), FindPackageJSON(nested))
}

func TestHasDependency(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"dependency", `{"dependencies": {"lunte": "^1.0.0"}}`, true},
		{"dev dependency", `{"devDependencies": {"lunte": "^1.0.0"}}`, true},
		{"absent", `{"dependencies": {"standard": "^17.0.0"}}`, false},
		{"empty", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writePackageJSON(t, dir, tt.content)
			got, err := HasDependency(filepath.Join(dir, "package.json"), "lunte")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHasDependency_Invalid(t *testing.T) {
	dir := t.TempDir()
	writePackageJSON(t, dir, `{`)

	_, err := HasDependency(filepath.Join(dir, "package.json"), "lunte")
	assert.Error(t, err)
}

func TestActivate(t *testing.T) {
	withDep := t.TempDir()
	writePackageJSON(t, withDep, `{"devDependencies": {"lunte": "*"}}`)
	withoutDep := t.TempDir()
	writePackageJSON(t, withoutDep, `{"dependencies": {}}`)

	tests := []struct {
		name      string
		settings  Settings
		dir       string
		wantOn    bool
		wantLocal bool
	}{
		{"defaults with dependency", sampleDefaults(), withDep, true, true},
		{"defaults without dependency", sampleDefaults(), withoutDep, true, false},
		{"required dependency missing",
			sampleDefaults().Merge(Settings{KeyDisableIfNotDependency: true}), withoutDep, false, false},
		{"required dependency present",
			sampleDefaults().Merge(Settings{KeyDisableIfNotDependency: true}), withDep, true, true},
		{"disabled", sampleDefaults().Merge(Settings{KeyDisable: true}), withDep, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := Activate(tt.settings, tt.dir, "lunte")
			require.NoError(t, err)
			assert.Equal(t, tt.wantOn, act.Enabled, act.Reason)
			assert.Equal(t, tt.wantLocal, act.Local)
			assert.NotEmpty(t, act.Reason)
		})
	}
}

func TestActivate_ProjectRoot(t *testing.T) {
	root := t.TempDir()
	writePackageJSON(t, root, `{"dependencies": {"lunte": "*"}}`)
	src := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(src, 0755))

	act, err := Activate(sampleDefaults(), src, "lunte")
	require.NoError(t, err)

	want, err := filepath.Abs(root)
	require.NoError(t, err)
	assert.Equal(t, want, act.ProjectRoot)
}
