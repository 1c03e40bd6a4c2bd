package audio

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"time"

	"github.com/google/uuid"
)

// Record captures microphone audio through ffmpeg's platform capture device.
// Single mode records for MaxDuration; continuous mode records until the
// context is cancelled (MaxDuration acts as a safety ceiling).
func (a *implAudio) Record(ctx context.Context, destDir string, opts RecordOptions) (string, error) {
	format, device, err := a.captureDevice()
	if err != nil {
		return "", err
	}

	if opts.MaxDuration <= 0 {
		if opts.Continuous {
			opts.MaxDuration = time.Hour
		} else {
			opts.MaxDuration = 10 * time.Second
		}
	}

	wavPath := filepath.Join(destDir, uuid.NewString()+"_recording.wav")

	args := []string{
		"-f", format,
		"-i", device,
		"-t", fmt.Sprintf("%.0f", opts.MaxDuration.Seconds()),
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		wavPath,
	}

	if opts.Continuous {
		a.logger.Info(ctx, "Recording (continuous, stop with Ctrl+C)...")
		// Graceful interrupt lets ffmpeg finalize the WAV header on stop.
		if _, err := a.executor.ExecuteGraceful(ctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
			return "", fmt.Errorf("ffmpeg record: %w", err)
		}
	} else {
		a.logger.Info(ctx, "Recording for %s...", opts.MaxDuration)
		if _, err := a.executor.Execute(ctx, a.cfg.FFmpeg.BinaryPath, args...); err != nil {
			return "", fmt.Errorf("ffmpeg record: %w", err)
		}
	}

	a.logger.Info(ctx, "Recording saved: %s", wavPath)
	return wavPath, nil
}

// captureDevice resolves the ffmpeg capture format and device, falling back
// to per-platform defaults when not configured.
func (a *implAudio) captureDevice() (format, device string, err error) {
	format = a.cfg.FFmpeg.CaptureFormat
	device = a.cfg.FFmpeg.CaptureDevice

	if format == "" {
		switch runtime.GOOS {
		case "darwin":
			format = "avfoundation"
		case "linux":
			format = "alsa"
		case "windows":
			format = "dshow"
		default:
			return "", "", fmt.Errorf("no capture format configured for %s", runtime.GOOS)
		}
	}

	if device == "" {
		switch format {
		case "avfoundation":
			device = ":0"
		case "alsa":
			device = "default"
		default:
			return "", "", fmt.Errorf("ffmpeg.capture_device is required for format %q", format)
		}
	}

	return format, device, nil
}
