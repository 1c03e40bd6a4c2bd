package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// ExecuteGraceful runs a command that is stopped with an interrupt signal
	// when the context is cancelled, giving the process a chance to finalize
	// its output (ffmpeg needs this to write a valid WAV header).
	ExecuteGraceful(ctx context.Context, name string, args ...string) (string, error)
}
