package executor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

type implExecutor struct{}

// New creates a new Executor instance
func New() Executor {
	return &implExecutor{}
}

// Execute runs an external command with the given arguments
func (e *implExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// Include stderr in error message for debugging
		return "", commandError(name, err, stderr.String())
	}

	return stdout.String(), nil
}

// ExecuteGraceful runs an external command and, on context cancellation,
// sends an interrupt instead of killing the process outright. Cancellation
// is treated as a normal stop, not an error.
func (e *implExecutor) ExecuteGraceful(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("command '%s' failed to start: %w", name, err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case <-ctx.Done():
		// The process may have already died on its own; that failure is
		// real, not a requested stop.
		select {
		case err := <-done:
			if err != nil {
				return "", commandError(name, err, stderr.String())
			}
			return stdout.String(), nil
		default:
		}

		sigErr := cmd.Process.Signal(os.Interrupt)
		var waitErr error
		select {
		case waitErr = <-done:
		case <-time.After(5 * time.Second):
			_ = cmd.Process.Kill()
			waitErr = <-done
		}
		// Signal delivery failing means the process was already gone, so
		// its exit error predates the cancellation.
		if sigErr != nil && waitErr != nil {
			return "", commandError(name, waitErr, stderr.String())
		}
		return stdout.String(), nil

	case err := <-done:
		if err != nil {
			return "", commandError(name, err, stderr.String())
		}
		return stdout.String(), nil
	}
}

func commandError(name string, err error, stderrOut string) error {
	stderrStr := strings.TrimSpace(stderrOut)
	if stderrStr != "" {
		return fmt.Errorf("command '%s' failed: %w\nstderr: %s", name, err, stderrStr)
	}
	return fmt.Errorf("command '%s' failed: %w", name, err)
}
