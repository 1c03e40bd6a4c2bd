package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// supportedExtensions are the input containers the pipeline accepts.
// Everything is normalized through ffmpeg before recognition.
var supportedExtensions = []string{".wav", ".mp3", ".mp4", ".m4a", ".flac", ".aac", ".ogg"}

// SupportedExtensions returns the accepted input extensions.
func SupportedExtensions() []string {
	return append([]string(nil), supportedExtensions...)
}

// IsSupportedFile reports whether the file has a supported audio extension.
func IsSupportedFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, s := range supportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}

// Convert normalizes the input to 16kHz mono PCM WAV
// This format is what both recognition engines expect
func (a *implAudio) Convert(ctx context.Context, srcPath, destDir string) (string, error) {
	wavPath := filepath.Join(destDir, uuid.NewString()+".wav")

	a.logger.Info(ctx, "Converting audio: %s", srcPath)

	// FFmpeg arguments for audio normalization
	// -vn: drop any video stream (mp4/m4a inputs)
	// -ar 16000: 16kHz sample rate
	// -ac 1: mono channel
	// -c:a pcm_s16le: PCM 16-bit little-endian
	// -threads 0: use all available CPU threads
	// -y: overwrite output file if exists
	args := []string{
		"-i", srcPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		wavPath,
	}

	if _, err := a.executor.Execute(ctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg convert: %w", err)
	}

	a.logger.Debug(ctx, "Audio converted: %s", wavPath)
	return wavPath, nil
}

// EncodeFLAC re-encodes a WAV file as FLAC, keeping the 16kHz mono layout.
func (a *implAudio) EncodeFLAC(ctx context.Context, wavPath, destDir string) (string, error) {
	flacPath := filepath.Join(destDir, uuid.NewString()+".flac")

	args := []string{
		"-i", wavPath,
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "flac",
		"-y",
		flacPath,
	}

	if _, err := a.executor.Execute(ctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg encode flac: %w", err)
	}

	return flacPath, nil
}

// Duration returns the audio length in seconds using ffprobe
func (a *implAudio) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	out, err := a.executor.Execute(ctx, a.cfg.FFmpeg.ProbePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", strings.TrimSpace(out), err)
	}

	return seconds, nil
}
