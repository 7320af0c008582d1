package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holepunchto/lunte/internal/linter"
)

var sample = []linter.Diagnostic{
	{File: "src/app.js", Line: 12, Column: 5, Message: "ERROR  Unexpected token", Severity: "error", Linter: "lunte"},
	{File: "", Line: 3, Column: 1, Message: "WARNING  'x' is unused", Severity: "warning", Linter: "lunte"},
}

func TestText(t *testing.T) {
	got := Text(sample, false)
	assert.Equal(t, strings.Join([]string{
		"src/app.js:12:5  ERROR  Unexpected token",
		"<stdin>:3:1  WARNING  'x' is unused",
		"1 error, 1 warning",
	}, "\n"), got)
}

func TestText_RuleSuffix(t *testing.T) {
	got := Text([]linter.Diagnostic{
		{File: "a.js", Line: 2, Column: 3, Message: "WARNING (no-var)  Unexpected var", Severity: "warning", RuleID: "no-var"},
	}, false)
	assert.Equal(t, "a.js:2:3  WARNING (no-var)  Unexpected var\n1 warning", got)
}

func TestText_Empty(t *testing.T) {
	assert.Equal(t, "✓ No issues found", Text(nil, false))
}

func TestText_Color(t *testing.T) {
	got := Text(sample, true)
	assert.Contains(t, got, red+"ERROR"+reset)
	assert.Contains(t, got, yellow+"WARNING"+reset)
	assert.Contains(t, Text(nil, true), green)
}

func TestSummary(t *testing.T) {
	tests := []struct {
		name  string
		diags []linter.Diagnostic
		want  string
	}{
		{"none", nil, "0 issues"},
		{"errors", []linter.Diagnostic{{Severity: "error"}, {Severity: "error"}}, "2 errors"},
		{"warnings", []linter.Diagnostic{{Severity: "warning"}}, "1 warning"},
		{"info only", []linter.Diagnostic{{Severity: "info"}}, "1 issue"},
		{"mixed", sample, "1 error, 1 warning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summary(tt.diags))
		})
	}
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sample, Options{Format: FormatJSON}))

	var decoded []linter.Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, sample, decoded)
	assert.Contains(t, buf.String(), `"message": "ERROR  Unexpected token"`, "message is written as captured")
}

func TestWrite_JSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, Options{Format: FormatJSON}))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, Options{}))
	assert.Equal(t, "✓ No issues found\n", buf.String())
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, nil, Options{Format: "xml"})
	assert.ErrorContains(t, err, "unknown format")
}
