package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"os/exec"
	"slices"
	"time"
)

// DefaultTimeout bounds a single tool run.
const DefaultTimeout = 2 * time.Minute

// SubprocessExecutor runs an external tool and captures its output.
type SubprocessExecutor struct {
	// Timeout bounds each run; zero means no limit beyond ctx.
	Timeout time.Duration

	// WorkDir is the child's working directory; empty inherits ours.
	WorkDir string

	// Env is added on top of the current environment.
	Env map[string]string
}

// NewSubprocessExecutor returns an executor with DefaultTimeout.
func NewSubprocessExecutor() *SubprocessExecutor {
	return &SubprocessExecutor{
		Timeout: DefaultTimeout,
		Env:     make(map[string]string),
	}
}

// Execute runs name with args and no standard input.
func (e *SubprocessExecutor) Execute(ctx context.Context, name string, args ...string) (*ToolOutput, error) {
	return e.ExecuteWithStdin(ctx, nil, name, args...)
}

// ExecuteWithStdin runs name with args, feeding stdin to the child.
//
// Linters exit non-zero when they find problems, so an exit status is
// reported through ToolOutput.ExitCode rather than as an error. Errors are
// returned only when the process could not be started or was stopped by
// ctx or the timeout.
func (e *SubprocessExecutor) ExecuteWithStdin(ctx context.Context, stdin io.Reader, name string, args ...string) (*ToolOutput, error) {
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = e.WorkDir
	cmd.Stdin = stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Grandchildren holding the pipes open must not outlive a cancel.
	cmd.WaitDelay = time.Second
	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.envSlice()...)
	}

	start := time.Now()
	runErr := cmd.Run()
	output := &ToolOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start).String(),
	}

	switch {
	case runErr == nil:
		return output, nil
	case ctx.Err() != nil:
		return nil, fmt.Errorf("%s: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		output.ExitCode = exitErr.ExitCode()
		return output, nil
	}
	return nil, fmt.Errorf("failed to execute %s: %w", name, runErr)
}

// envSlice renders Env as sorted KEY=value pairs.
func (e *SubprocessExecutor) envSlice() []string {
	out := make([]string, 0, len(e.Env))
	for _, k := range slices.Sorted(maps.Keys(e.Env)) {
		out = append(out, k+"="+e.Env[k])
	}
	return out
}
