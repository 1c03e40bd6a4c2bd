package processor

import "context"

// Processor defines the interface for audio processing operations
type Processor interface {
	// Process runs one audio file through the full pipeline: convert,
	// recognize, export, summarize, archive.
	Process(ctx context.Context, audioPath string) error

	// ProcessBatch converts a list of files into one combined transcript
	// with per-file section headers and cumulative time offsets.
	ProcessBatch(ctx context.Context, files []string) (BatchResult, error)
}

// BatchResult counts the outcome of a batch run.
type BatchResult struct {
	Succeeded int
	Failed    int
}
