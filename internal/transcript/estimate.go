package transcript

import (
	"strings"
	"unicode"
)

// Speaking-rate assumptions for the estimation fallback: roughly 200 CJK
// characters or 150 Latin words per minute.
const (
	cjkCharsPerMinute   = 200
	latinWordsPerMinute = 150
	minEstimateSeconds  = 10
)

var sentenceEnders = map[rune]bool{
	'。': true, '！': true, '？': true, '；': true,
	'.': true, '!': true, '?': true, ';': true,
}

// SplitSentences splits text into sentences on CJK and Latin terminators.
func SplitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range text {
		if sentenceEnders[r] {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
			continue
		}
		current.WriteRune(r)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

// EstimateDuration guesses how long the text takes to speak, in seconds,
// from CJK character and Latin word counts. Never below 10 seconds.
func EstimateDuration(text string) float64 {
	cjkChars := 0
	for _, r := range text {
		if unicode.Is(unicode.Han, r) {
			cjkChars++
		}
	}

	latinWords := 0
	for _, w := range strings.Fields(text) {
		if isLetterWord(w) {
			latinWords++
		}
	}

	seconds := float64(cjkChars)/cjkCharsPerMinute*60 + float64(latinWords)/latinWordsPerMinute*60
	if seconds < minEstimateSeconds {
		return minEstimateSeconds
	}
	return seconds
}

func isLetterWord(w string) bool {
	for _, r := range w {
		if !unicode.IsLetter(r) || unicode.Is(unicode.Han, r) {
			return false
		}
	}
	return len(w) > 0
}

// EstimateSegments spreads sentence timestamps evenly over the estimated
// speech duration. Used when an engine returns text without timing.
func EstimateSegments(text string) []Segment {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return nil
	}

	total := EstimateDuration(text)
	perSentence := total / float64(len(sentences))

	segments := make([]Segment, 0, len(sentences))
	current := 0.0
	for _, sentence := range sentences {
		segments = append(segments, Segment{
			Start: current,
			End:   current + perSentence,
			Text:  sentence,
		})
		current += perSentence
	}

	return segments
}
