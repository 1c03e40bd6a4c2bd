package audio

import (
	"context"
	"time"
)

// Audio wraps the ffmpeg/ffprobe operations the pipeline needs.
type Audio interface {
	// Convert normalizes any supported input to 16kHz mono PCM WAV in destDir.
	Convert(ctx context.Context, srcPath, destDir string) (string, error)

	// EncodeFLAC re-encodes a WAV file as FLAC (the Google speech endpoint
	// wants FLAC payloads).
	EncodeFLAC(ctx context.Context, wavPath, destDir string) (string, error)

	// Duration returns the length of an audio file in seconds.
	Duration(ctx context.Context, path string) (float64, error)

	// Merge concatenates WAV segments with a short silence gap between them.
	Merge(ctx context.Context, segments []string, destDir string) (string, error)

	// Record captures audio from the microphone into a WAV file in destDir.
	Record(ctx context.Context, destDir string, opts RecordOptions) (string, error)
}

// RecordOptions controls a microphone capture.
type RecordOptions struct {
	// MaxDuration bounds the capture. In continuous mode it is a safety
	// ceiling; in single mode it is the recording length.
	MaxDuration time.Duration

	// Continuous keeps recording until the context is cancelled instead of
	// stopping after MaxDuration.
	Continuous bool
}
