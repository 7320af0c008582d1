package lunte

import (
	"fmt"
	"strings"

	"github.com/holepunchto/lunte/internal/linter"
)

// parseOutput parses lunte output and converts it to diagnostics.
// lunte output format:
//
//	src/app.js:12:5  ERROR  Unexpected token
//	src/app.js:14:1  WARNING (no-var)  Unexpected var, use let or const instead.
//	1 error, 1 warning
//
// Summary and "No issues found" lines never match the pattern and are dropped.
func parseOutput(output *linter.ToolOutput) ([]linter.Diagnostic, error) {
	if output == nil {
		return []linter.Diagnostic{}, nil
	}

	diagnostics := Descriptor.Parse(output)

	// A failing run that printed nothing we understand is a tool failure,
	// not a clean file.
	if len(diagnostics) == 0 && output.ExitCode != 0 && strings.TrimSpace(output.Stderr) != "" {
		return nil, fmt.Errorf("lunte exited with code %d: %s", output.ExitCode, strings.TrimSpace(output.Stderr))
	}

	return diagnostics, nil
}
