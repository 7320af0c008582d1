package lunte

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holepunchto/lunte/internal/linter"
	"github.com/holepunchto/lunte/internal/settings"
)

func TestDescriptor_StaticAttributes(t *testing.T) {
	assert.Equal(t, "lunte --stdin", Descriptor.Cmd)
	assert.Equal(t, "Lunte", Descriptor.Name)
	assert.Equal(t, `^.+:(?P<line>\d+):(?P<col>\d+)\s\s(?P<message>.+)`, Descriptor.Regex.String())
	assert.Equal(t, []string{"lunte", "--stdin"}, Descriptor.Args())
}

func TestDescriptor_Defaults(t *testing.T) {
	assert.Equal(t, settings.Settings{
		"enable_if_dependency":      true,
		"disable_if_not_dependency": false,
		"selector":                  "source.js, source.jsx",
	}, Descriptor.Defaults())
	require.NoError(t, Descriptor.Defaults().Validate())
}

func TestDescriptor_DefaultsRoundTrip(t *testing.T) {
	defaults := Descriptor.Defaults()

	data, err := json.Marshal(defaults)
	require.NoError(t, err)

	var decoded settings.Settings
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, defaults, decoded, "no field added, removed or coerced")
}

func TestDescriptor_Pattern(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		wantMatch bool
		want      linter.Match
	}{
		{
			name:      "path with message",
			line:      "src/app.js:12:5  Unexpected token",
			wantMatch: true,
			want:      linter.Match{Line: 12, Col: 5, Message: "Unexpected token", Prefix: "src/app.js"},
		},
		{
			name:      "minimal",
			line:      "foo:1:1  x",
			wantMatch: true,
			want:      linter.Match{Line: 1, Col: 1, Message: "x", Prefix: "foo"},
		},
		{
			name:      "trailing whitespace preserved",
			line:      "src/app.js:3:7  Missing semicolon   ",
			wantMatch: true,
			want:      linter.Match{Line: 3, Col: 7, Message: "Missing semicolon   ", Prefix: "src/app.js"},
		},
		{
			name:      "reporter severity kept in message",
			line:      "src/app.js:2:9  ERROR  'x' is not defined.",
			wantMatch: true,
			want:      linter.Match{Line: 2, Col: 9, Message: "ERROR  'x' is not defined.", Prefix: "src/app.js"},
		},
		{
			name: "space separated line and column",
			line: "src/app.js:12 5 bad",
		},
		{
			name: "single space before message",
			line: "src/app.js:12:5 bad",
		},
		{
			name: "no path",
			line: ":12:5  bad",
		},
		{
			name: "summary line",
			line: "1 error",
		},
		{
			name: "clean run",
			line: "✓ No issues found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Descriptor.Match(tt.line)
			assert.Equal(t, tt.wantMatch, ok)
			if tt.wantMatch {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDescriptor_Selector(t *testing.T) {
	sel := Descriptor.Selector()
	assert.True(t, sel.Matches("source.js"))
	assert.True(t, sel.Matches("source.jsx"))
	assert.False(t, sel.Matches("source.ts"))
}
