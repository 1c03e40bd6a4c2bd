package summarizer

import (
	"fmt"

	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/logger"
)

// New creates the Summarizer selected by summary.provider.
func New(cfg *config.Config, log logger.Logger) (Summarizer, error) {
	switch cfg.Summary.Provider {
	case ProviderGemini:
		if len(cfg.Summary.GeminiAPIKeys) == 0 {
			return nil, fmt.Errorf("gemini summarizer requires GEMINI_API_KEYS")
		}
		return &implGemini{
			apiKeys: cfg.Summary.GeminiAPIKeys,
			model:   cfg.Summary.GeminiModel,
			logger:  log,
		}, nil
	case ProviderClaude:
		if cfg.Summary.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("claude summarizer requires ANTHROPIC_API_KEY")
		}
		return &implClaude{
			apiKey: cfg.Summary.AnthropicAPIKey,
			model:  cfg.Summary.ClaudeModel,
			logger: log,
		}, nil
	default:
		return nil, fmt.Errorf("unknown summary provider: %q", cfg.Summary.Provider)
	}
}
