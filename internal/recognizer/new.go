package recognizer

import (
	"fmt"
	"net/http"
	"time"

	"github.com/minhtri0502/speech-flow/internal/audio"
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/pkg/executor"
)

// New creates the Recognizer selected by recognition.engine.
func New(cfg *config.Config, exec executor.Executor, aud audio.Audio, log logger.Logger) (Recognizer, error) {
	switch cfg.Recognition.Engine {
	case EngineWhisper:
		return &implWhisper{
			cfg:      cfg,
			executor: exec,
			logger:   log,
		}, nil
	case EngineGoogle:
		return &implGoogle{
			cfg:    cfg,
			audio:  aud,
			logger: log,
			client: &http.Client{Timeout: 60 * time.Second},
		}, nil
	default:
		return nil, fmt.Errorf("unknown recognition engine: %q", cfg.Recognition.Engine)
	}
}

// langCode maps the configured BCP-47 language to an engine code.
// "auto" means let the engine detect the language.
func langCode(language string) string {
	switch language {
	case "zh-TW", "zh-CN":
		return "zh"
	case "en-US", "en-GB":
		return "en"
	case "ja-JP":
		return "ja"
	case "ko-KR":
		return "ko"
	default:
		return language
	}
}
