package setup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/minhtri0502/speech-flow/internal/config"
)

func writeFakeBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunWhisperEngine(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Recognition: config.RecognitionConfig{
			Engine: "whisper",
			Whisper: config.WhisperConfig{
				BinaryPath: writeFakeBinary(t, dir, "whisper-cli"),
				ModelPath:  writeFakeBinary(t, dir, "ggml-base.bin"),
			},
		},
		FFmpeg: config.FFmpegConfig{
			BinaryPath: writeFakeBinary(t, dir, "ffmpeg"),
			ProbePath:  writeFakeBinary(t, dir, "ffprobe"),
		},
	}

	report := Run(cfg)
	if !report.OK() {
		t.Errorf("report should pass:\n%s", report)
	}
	if len(report) != 4 {
		t.Errorf("expected 4 checks, got %d", len(report))
	}
}

func TestRunMissingModel(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Recognition: config.RecognitionConfig{
			Engine: "whisper",
			Whisper: config.WhisperConfig{
				BinaryPath: writeFakeBinary(t, dir, "whisper-cli"),
				ModelPath:  filepath.Join(dir, "missing.bin"),
			},
		},
		FFmpeg: config.FFmpegConfig{
			BinaryPath: writeFakeBinary(t, dir, "ffmpeg"),
			ProbePath:  writeFakeBinary(t, dir, "ffprobe"),
		},
	}

	report := Run(cfg)
	if report.OK() {
		t.Error("report should fail with a missing model file")
	}
	if !strings.Contains(report.String(), "MISSING") {
		t.Errorf("report should mark the model as missing:\n%s", report)
	}
}

func TestRunGoogleEngineNeedsKey(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Recognition: config.RecognitionConfig{
			Engine: "google",
		},
		FFmpeg: config.FFmpegConfig{
			BinaryPath: writeFakeBinary(t, dir, "ffmpeg"),
			ProbePath:  writeFakeBinary(t, dir, "ffprobe"),
		},
	}

	if report := Run(cfg); report.OK() {
		t.Error("report should fail without GOOGLE_SPEECH_API_KEY")
	}

	cfg.Recognition.Google.APIKey = "secret"
	if report := Run(cfg); !report.OK() {
		t.Errorf("report should pass with the key set:\n%s", Run(cfg))
	}
}

func TestRunSummaryProviderChecks(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		Recognition: config.RecognitionConfig{Engine: "google", Google: config.GoogleConfig{APIKey: "k"}},
		FFmpeg: config.FFmpegConfig{
			BinaryPath: writeFakeBinary(t, dir, "ffmpeg"),
			ProbePath:  writeFakeBinary(t, dir, "ffprobe"),
		},
		Summary: config.SummaryConfig{Enabled: true, Provider: "claude"},
	}

	if report := Run(cfg); report.OK() {
		t.Error("claude provider should require ANTHROPIC_API_KEY")
	}

	cfg.Summary.AnthropicAPIKey = "sk-test"
	if report := Run(cfg); !report.OK() {
		t.Errorf("report should pass with the anthropic key set:\n%s", Run(cfg))
	}
}

func TestCheckBinaryOnPath(t *testing.T) {
	c := checkBinary("shell", "sh", true)
	if !c.OK {
		t.Skip("sh not on PATH")
	}
	if c.Detail == "" {
		t.Error("resolved path missing from detail")
	}
}
