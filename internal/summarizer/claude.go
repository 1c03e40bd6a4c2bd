package summarizer

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/minhtri0502/speech-flow/internal/logger"
)

type implClaude struct {
	apiKey string
	model  string
	logger logger.Logger
}

// Summarize sends the transcript to the Anthropic API and returns the
// markdown summary.
func (s *implClaude) Summarize(ctx context.Context, transcriptText string) (string, error) {
	client := anthropic.NewClient(option.WithAPIKey(s.apiKey))

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(s.model),
		MaxTokens: 4096,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(transcriptText))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("create message: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}

	if text == "" {
		return "", fmt.Errorf("empty response from Claude")
	}

	return text, nil
}
