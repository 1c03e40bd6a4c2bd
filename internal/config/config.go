package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Recognition RecognitionConfig `yaml:"recognition"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Export      ExportConfig      `yaml:"export"`
	Summary     SummaryConfig     `yaml:"summary"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
}

type RecognitionConfig struct {
	Engine   string        `yaml:"engine"`   // "whisper" or "google"
	Language string        `yaml:"language"` // "zh-TW", "en-US", "auto", ...
	Whisper  WhisperConfig `yaml:"whisper"`
	Google   GoogleConfig  `yaml:"google"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Prompt     string `yaml:"prompt"`
	Threads    int    `yaml:"threads"`
}

type GoogleConfig struct {
	Endpoint string `yaml:"endpoint"`
	// APIKey comes from the GOOGLE_SPEECH_API_KEY environment variable,
	// never from the config file.
	APIKey string `yaml:"-"`
}

type FFmpegConfig struct {
	BinaryPath    string `yaml:"binary_path"`
	ProbePath     string `yaml:"probe_path"`
	CaptureFormat string `yaml:"capture_format"` // e.g. alsa, avfoundation, dshow
	CaptureDevice string `yaml:"capture_device"`
}

type PathsConfig struct {
	Input     string `yaml:"input"`
	Output    string `yaml:"output"`
	Archived  string `yaml:"archived"`
	Temp      string `yaml:"temp"`
	Summaries string `yaml:"summaries"`
}

type ExportConfig struct {
	Formats    []string `yaml:"formats"` // "txt", "docx"
	Timestamps bool     `yaml:"timestamps"`
	Font       string   `yaml:"font"`
}

type SummaryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Provider    string `yaml:"provider"` // "gemini" or "claude"
	GeminiModel string `yaml:"gemini_model"`
	ClaudeModel string `yaml:"claude_model"`

	// API keys come from the environment (GEMINI_API_KEYS, ANTHROPIC_API_KEY).
	GeminiAPIKeys   []string `yaml:"-"`
	AnthropicAPIKey string   `yaml:"-"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads the YAML config file, overlays secrets from the environment
// (a .env file is honored when present) and applies defaults.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.loadEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) loadEnv() {
	if keys := os.Getenv("GEMINI_API_KEYS"); keys != "" {
		for _, k := range strings.Split(keys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				c.Summary.GeminiAPIKeys = append(c.Summary.GeminiAPIKeys, k)
			}
		}
	}
	c.Summary.AnthropicAPIKey = os.Getenv("ANTHROPIC_API_KEY")
	c.Recognition.Google.APIKey = os.Getenv("GOOGLE_SPEECH_API_KEY")
}

func (c *Config) Validate() error {
	switch c.Recognition.Engine {
	case "":
		c.Recognition.Engine = "whisper"
	case "whisper", "google":
	default:
		return fmt.Errorf("recognition.engine must be \"whisper\" or \"google\", got %q", c.Recognition.Engine)
	}

	if c.Recognition.Engine == "whisper" {
		if c.Recognition.Whisper.ModelPath == "" {
			return fmt.Errorf("recognition.whisper.model_path is required")
		}
		if c.Recognition.Whisper.BinaryPath == "" {
			return fmt.Errorf("recognition.whisper.binary_path is required")
		}
	}

	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Summary.Enabled {
		switch c.Summary.Provider {
		case "":
			c.Summary.Provider = "gemini"
		case "gemini", "claude":
		default:
			return fmt.Errorf("summary.provider must be \"gemini\" or \"claude\", got %q", c.Summary.Provider)
		}
	}

	if c.Recognition.Language == "" {
		c.Recognition.Language = "auto"
	}
	if c.Recognition.Whisper.Threads == 0 {
		c.Recognition.Whisper.Threads = 8
	}
	if c.Recognition.Google.Endpoint == "" {
		c.Recognition.Google.Endpoint = "http://www.google.com/speech-api/v2/recognize"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.ProbePath == "" {
		c.FFmpeg.ProbePath = "ffprobe"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Summaries == "" {
		c.Paths.Summaries = "data/summaries"
	}
	if len(c.Export.Formats) == 0 {
		c.Export.Formats = []string{"txt", "docx"}
	}
	for _, f := range c.Export.Formats {
		if f != "txt" && f != "docx" {
			return fmt.Errorf("export.formats entries must be \"txt\" or \"docx\", got %q", f)
		}
	}
	if c.Export.Font == "" {
		c.Export.Font = "Times New Roman"
	}
	if c.Summary.GeminiModel == "" {
		c.Summary.GeminiModel = "gemini-2.5-flash"
	}
	if c.Summary.ClaudeModel == "" {
		c.Summary.ClaudeModel = "claude-sonnet-4-20250514"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}
