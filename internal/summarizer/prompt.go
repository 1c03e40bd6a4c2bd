package summarizer

import "fmt"

const summaryPrompt = `You are an expert at analyzing spoken-content transcripts. Based on the transcript below, write a DETAILED summary.

Requirements:
- Start with a one-sentence title describing the overall topic
- List ALL main points in their order of appearance
- Explain each point in detail, including important caveats, tips and warnings
- Keep domain-specific terminology unchanged
- Use markdown formatting: headings, bullet points, bold for key terms
- End with an "Important notes" section when something needs emphasis

Transcript:
---
%s
---`

func buildPrompt(transcriptText string) string {
	return fmt.Sprintf(summaryPrompt, transcriptText)
}
