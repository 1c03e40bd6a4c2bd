package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// segmentGap is the silence inserted between merged recording segments.
const segmentGap = "0.2"

// Merge concatenates WAV segments into one file, separated by short silence
// gaps so sentence boundaries survive recognition.
func (a *implAudio) Merge(ctx context.Context, segments []string, destDir string) (string, error) {
	if len(segments) == 0 {
		return "", fmt.Errorf("no segments to merge")
	}
	if len(segments) == 1 {
		return segments[0], nil
	}

	a.logger.Info(ctx, "Merging %d audio segments", len(segments))

	// Generate the silence gap once, matching the segment format.
	silencePath := filepath.Join(destDir, uuid.NewString()+"_silence.wav")
	silenceArgs := []string{
		"-f", "lavfi",
		"-i", "anullsrc=channel_layout=mono:sample_rate=16000",
		"-t", segmentGap,
		"-c:a", "pcm_s16le",
		"-y",
		silencePath,
	}
	if _, err := a.executor.Execute(ctx, a.cfg.FFmpeg.BinaryPath, silenceArgs...); err != nil {
		return "", fmt.Errorf("ffmpeg generate silence: %w", err)
	}
	defer os.Remove(silencePath)

	// Concat demuxer list: segment, silence, segment, ...
	var list strings.Builder
	for i, seg := range segments {
		abs, err := filepath.Abs(seg)
		if err != nil {
			return "", fmt.Errorf("resolve segment path: %w", err)
		}
		fmt.Fprintf(&list, "file '%s'\n", abs)
		if i < len(segments)-1 {
			absSilence, _ := filepath.Abs(silencePath)
			fmt.Fprintf(&list, "file '%s'\n", absSilence)
		}
	}

	listPath := filepath.Join(destDir, uuid.NewString()+"_concat.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return "", fmt.Errorf("write concat list: %w", err)
	}
	defer os.Remove(listPath)

	mergedPath := filepath.Join(destDir, uuid.NewString()+"_merged.wav")
	args := []string{
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		mergedPath,
	}

	if _, err := a.executor.Execute(ctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg concat: %w", err)
	}

	a.logger.Info(ctx, "Merged %d segments: %s", len(segments), mergedPath)
	return mergedPath, nil
}
