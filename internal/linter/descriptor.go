package linter

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/holepunchto/lunte/internal/settings"
	"github.com/kballard/go-shellquote"
)

// Capture group names every descriptor pattern must define.
const (
	GroupLine    = "line"
	GroupCol     = "col"
	GroupMessage = "message"
)

// Descriptor is the static integration record for an external linter:
// how to invoke it, how to read its output and which settings it ships
// with. It is built once and never mutated.
type Descriptor struct {
	// Cmd is the shell-style invocation, e.g. "lunte --stdin".
	Cmd string

	// Name is the display label.
	Name string

	// Regex matches one line of tool output.
	Regex *regexp.Regexp

	defaults settings.Settings

	lineIdx, colIdx, msgIdx int
}

// Match is the set of captures taken from one output line.
type Match struct {
	Line    int
	Col     int
	Message string

	// Prefix is the text before the line group with its trailing ':'
	// removed. For path:line:col output it is the path.
	Prefix string
}

// NewDescriptor compiles pattern and checks that it carries the line, col
// and message groups.
func NewDescriptor(name, cmd, pattern string, defaults settings.Settings) (*Descriptor, error) {
	if name == "" {
		return nil, fmt.Errorf("descriptor name must not be empty")
	}
	if _, err := SplitCommand(cmd); err != nil {
		return nil, err
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex for %q: %w", name, err)
	}

	d := &Descriptor{
		Cmd:      cmd,
		Name:     name,
		Regex:    re,
		defaults: defaults.Clone(),
		lineIdx:  re.SubexpIndex(GroupLine),
		colIdx:   re.SubexpIndex(GroupCol),
		msgIdx:   re.SubexpIndex(GroupMessage),
	}
	for group, idx := range map[string]int{GroupLine: d.lineIdx, GroupCol: d.colIdx, GroupMessage: d.msgIdx} {
		if idx < 0 {
			return nil, fmt.Errorf("regex for %q is missing the %q group", name, group)
		}
	}

	return d, nil
}

// MustDescriptor is like NewDescriptor but panics on error.
// It is meant for package-level descriptor literals.
func MustDescriptor(name, cmd, pattern string, defaults settings.Settings) *Descriptor {
	d, err := NewDescriptor(name, cmd, pattern, defaults)
	if err != nil {
		panic(err)
	}
	return d
}

// Defaults returns a copy of the descriptor's default settings.
func (d *Descriptor) Defaults() settings.Settings {
	return d.defaults.Clone()
}

// Selector returns the parsed default selector.
func (d *Descriptor) Selector() settings.Selector {
	return settings.ParseSelector(d.defaults.String(settings.KeySelector))
}

// Args splits Cmd into executable and arguments.
func (d *Descriptor) Args() []string {
	args, _ := SplitCommand(d.Cmd)
	return args
}

// Match applies the pattern to a single output line.
func (d *Descriptor) Match(line string) (Match, bool) {
	loc := d.Regex.FindStringSubmatchIndex(line)
	if loc == nil {
		return Match{}, false
	}
	group := func(idx int) string {
		start, end := loc[2*idx], loc[2*idx+1]
		if start < 0 {
			return ""
		}
		return line[start:end]
	}

	lineNum, err := strconv.Atoi(group(d.lineIdx))
	if err != nil {
		return Match{}, false
	}
	col, err := strconv.Atoi(group(d.colIdx))
	if err != nil {
		return Match{}, false
	}

	prefix := ""
	if start := loc[2*d.lineIdx]; start > loc[0] {
		prefix = strings.TrimSuffix(line[loc[0]:start], ":")
	}

	return Match{Line: lineNum, Col: col, Message: group(d.msgIdx), Prefix: prefix}, true
}

// Parse converts tool output to diagnostics, one per matching line.
// Lines that do not match are dropped.
func (d *Descriptor) Parse(output *ToolOutput) []Diagnostic {
	diagnostics := make([]Diagnostic, 0)
	if output == nil {
		return diagnostics
	}

	for _, line := range strings.Split(output.Stdout, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}

		m, ok := d.Match(line)
		if !ok {
			continue
		}

		file := output.Filename
		if file == "" {
			file = m.Prefix
		}

		diagnostics = append(diagnostics, Diagnostic{
			File:     file,
			Line:     m.Line,
			Column:   m.Col,
			Message:  m.Message,
			Severity: severityOf(m.Message),
			RuleID:   ruleOf(m.Message),
			Linter:   strings.ToLower(d.Name),
		})
	}

	return diagnostics
}

// labelPattern matches the reporter's leading "LABEL (rule)  " token.
var labelPattern = regexp.MustCompile(`^(?i:(ERROR|WARNING|WARN|INFO))(?: \(([^)]+)\))?  +`)

// splitLabel separates a leading reporter label from message. ok is false
// when message has no label.
func splitLabel(message string) (severity, ruleID, rest string, ok bool) {
	loc := labelPattern.FindStringSubmatchIndex(message)
	if loc == nil {
		return "", "", message, false
	}
	severity = MapSeverity(message[loc[2]:loc[3]])
	if loc[4] >= 0 {
		ruleID = message[loc[4]:loc[5]]
	}
	return severity, ruleID, message[loc[1]:], true
}

// severityOf reads a leading reporter severity token ("ERROR  ...",
// "WARNING (no-var)  ...") from a message. Messages without one are errors.
func severityOf(message string) string {
	if severity, _, _, ok := splitLabel(message); ok {
		return severity
	}
	return "error"
}

// ruleOf returns the rule named in a leading "LABEL (rule)" token, or "".
func ruleOf(message string) string {
	_, ruleID, _, _ := splitLabel(message)
	return ruleID
}

// DisplayMessage drops a leading reporter label, rule suffix included, from
// message, for output formats that print severity separately.
func DisplayMessage(message string) string {
	_, _, rest, _ := splitLabel(message)
	return rest
}

// DescriptorInfo is the serializable form of a Descriptor.
type DescriptorInfo struct {
	Name     string            `json:"name"`
	Cmd      string            `json:"cmd"`
	Regex    string            `json:"regex"`
	Defaults settings.Settings `json:"defaults"`
}

// Info returns the descriptor with its pattern as source text.
func (d *Descriptor) Info() DescriptorInfo {
	return DescriptorInfo{
		Name:     d.Name,
		Cmd:      d.Cmd,
		Regex:    d.Regex.String(),
		Defaults: d.Defaults(),
	}
}

// MarshalJSON renders the descriptor as its DescriptorInfo.
func (d *Descriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Info())
}

// SplitCommand splits a shell-style command line into words.
func SplitCommand(cmd string) ([]string, error) {
	args, err := shellquote.Split(cmd)
	if err != nil {
		return nil, fmt.Errorf("invalid command %q: %w", cmd, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("empty command")
	}
	return args, nil
}
