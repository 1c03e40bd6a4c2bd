package summarizer

import "context"

const (
	// ProviderGemini uses the Google Gemini API.
	ProviderGemini = "gemini"
	// ProviderClaude uses the Anthropic API.
	ProviderClaude = "claude"
)

// Summarizer turns a transcript into an LLM-generated markdown summary.
type Summarizer interface {
	Summarize(ctx context.Context, transcriptText string) (string, error)
}
