package recognizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/internal/transcript"
	"github.com/minhtri0502/speech-flow/pkg/executor"
)

type implWhisper struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// Recognize transcribes the WAV file with the whisper.cpp CLI and parses the
// SRT output into timed segments.
func (w *implWhisper) Recognize(ctx context.Context, wavPath string) (transcript.Transcript, error) {
	outputPrefix := strings.TrimSuffix(wavPath, filepath.Ext(wavPath))

	w.logger.Info(ctx, "Transcribing with whisper (%d threads): %s",
		w.cfg.Recognition.Whisper.Threads, wavPath)

	args := w.buildArgs(wavPath, outputPrefix)

	if _, err := w.executor.Execute(ctx, w.cfg.Recognition.Whisper.BinaryPath, args...); err != nil {
		return transcript.Transcript{}, fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	defer os.Remove(srtPath)

	content, err := os.ReadFile(srtPath)
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("read whisper output: %w", err)
	}

	segments, err := transcript.ParseSRT(string(content))
	if err != nil {
		return transcript.Transcript{}, fmt.Errorf("parse whisper output: %w", err)
	}
	if len(segments) == 0 {
		return transcript.Transcript{}, ErrNoSpeech
	}

	tr := transcript.Transcript{
		Language: w.cfg.Recognition.Language,
		Segments: segments,
		Duration: segments[len(segments)-1].End,
		Timed:    true,
	}

	w.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return tr, nil
}

// buildArgs assembles the whisper.cpp command line
// -m: model path
// -f: input audio file
// -osrt: output SRT format (keeps segment timing)
// -l: language (auto lets whisper detect)
// -t: number of threads
// -ml/-mc 0: no segment length or context limit, better for long audio
// -bo 5: best-of 5 for better accuracy
// --prompt: domain keywords to improve accuracy
func (w *implWhisper) buildArgs(wavPath, outputPrefix string) []string {
	args := []string{
		"-m", w.cfg.Recognition.Whisper.ModelPath,
		"-f", wavPath,
		"-osrt",
		"-l", langCode(w.cfg.Recognition.Language),
		"-t", strconv.Itoa(w.cfg.Recognition.Whisper.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}

	if w.cfg.Recognition.Whisper.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Recognition.Whisper.Prompt)
	}

	return args
}
