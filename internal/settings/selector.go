package settings

import (
	"path/filepath"
	"strings"
)

// Selector is a parsed list of editor content scopes, e.g. "source.js, source.jsx".
type Selector []string

// ParseSelector splits a comma-separated selector string. Empty entries are dropped.
func ParseSelector(s string) Selector {
	var sel Selector
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			sel = append(sel, part)
		}
	}
	return sel
}

// Matches reports whether scope falls under any selector entry.
// Matching is by whole dot-separated segments: "source.js" matches
// "source.js" and "source.js.embedded" but not "source.json".
func (sel Selector) Matches(scope string) bool {
	for _, s := range sel {
		if scope == s || strings.HasPrefix(scope, s+".") {
			return true
		}
	}
	return false
}

// String joins the selector back into its settings form.
func (sel Selector) String() string {
	return strings.Join(sel, ", ")
}

var extScopes = map[string]string{
	".js":  "source.js",
	".mjs": "source.js",
	".cjs": "source.js",
	".jsx": "source.jsx",
	".ts":  "source.ts",
	".tsx": "source.tsx",
}

// ScopeForFile returns the content scope an editor would assign to path,
// or "" when the extension is unknown.
func ScopeForFile(path string) string {
	return extScopes[strings.ToLower(filepath.Ext(path))]
}
