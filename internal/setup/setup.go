package setup

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/recognizer"
	"github.com/minhtri0502/speech-flow/internal/summarizer"
)

// Check is the result of one environment probe.
type Check struct {
	Name     string
	OK       bool
	Detail   string
	Required bool
}

// Report holds all preflight checks for the configured pipeline.
type Report []Check

// OK reports whether every required check passed.
func (r Report) OK() bool {
	for _, c := range r {
		if c.Required && !c.OK {
			return false
		}
	}
	return true
}

// String renders the report, one check per line.
func (r Report) String() string {
	var b strings.Builder
	for _, c := range r {
		status := "OK"
		if !c.OK {
			status = "MISSING"
			if !c.Required {
				status = "SKIPPED"
			}
		}
		fmt.Fprintf(&b, "[%-7s] %-24s %s\n", status, c.Name, c.Detail)
	}
	return b.String()
}

// Run probes the external dependencies the configuration needs: ffmpeg,
// ffprobe, the recognition engine's binary/model or API key, and the
// summarization provider's credentials.
func Run(cfg *config.Config) Report {
	var report Report

	report = append(report, checkBinary("ffmpeg", cfg.FFmpeg.BinaryPath, true))
	report = append(report, checkBinary("ffprobe", cfg.FFmpeg.ProbePath, true))

	switch cfg.Recognition.Engine {
	case recognizer.EngineWhisper:
		report = append(report, checkBinary("whisper binary", cfg.Recognition.Whisper.BinaryPath, true))
		report = append(report, checkFile("whisper model", cfg.Recognition.Whisper.ModelPath, true))
	case recognizer.EngineGoogle:
		report = append(report, checkSecret("google api key", "GOOGLE_SPEECH_API_KEY", cfg.Recognition.Google.APIKey != "", true))
	}

	if cfg.Summary.Enabled {
		switch cfg.Summary.Provider {
		case summarizer.ProviderGemini:
			report = append(report, checkSecret("gemini api keys", "GEMINI_API_KEYS", len(cfg.Summary.GeminiAPIKeys) > 0, true))
		case summarizer.ProviderClaude:
			report = append(report, checkSecret("anthropic api key", "ANTHROPIC_API_KEY", cfg.Summary.AnthropicAPIKey != "", true))
		}
	}

	return report
}

func checkBinary(name, path string, required bool) Check {
	// A bare command name is resolved on PATH; anything with a separator
	// is checked on disk.
	if filepath.Base(path) == path {
		resolved, err := exec.LookPath(path)
		if err != nil {
			return Check{Name: name, OK: false, Detail: fmt.Sprintf("%q not found on PATH", path), Required: required}
		}
		return Check{Name: name, OK: true, Detail: resolved, Required: required}
	}
	return checkFile(name, path, required)
}

func checkFile(name, path string, required bool) Check {
	info, err := os.Stat(path)
	if err != nil {
		return Check{Name: name, OK: false, Detail: fmt.Sprintf("%s: %v", path, err), Required: required}
	}
	if info.IsDir() {
		return Check{Name: name, OK: false, Detail: fmt.Sprintf("%s is a directory", path), Required: required}
	}
	return Check{Name: name, OK: true, Detail: path, Required: required}
}

func checkSecret(name, envVar string, present, required bool) Check {
	if !present {
		return Check{Name: name, OK: false, Detail: envVar + " is not set", Required: required}
	}
	return Check{Name: name, OK: true, Detail: envVar, Required: required}
}
