package lunte

import (
	"bytes"
	"context"

	"github.com/holepunchto/lunte/internal/linter"
)

// executeStdin runs "lunte --stdin" (plus any extra args) with source piped
// to standard input.
func (l *Linter) executeStdin(ctx context.Context, filename string, source []byte) (*linter.ToolOutput, error) {
	exe := l.resolveExecutable()
	if exe == "" {
		return nil, l.CheckAvailability(ctx)
	}

	args := Descriptor.Args()[1:]
	args = append(append([]string(nil), args...), l.ExtraArgs...)

	output, err := l.executor().ExecuteWithStdin(ctx, bytes.NewReader(source), exe, args...)
	if err != nil {
		return nil, err
	}
	output.Filename = filename
	return output, nil
}
