package transcript

import (
	"fmt"
	"strings"
)

// Segment is one recognized span with timing in seconds.
type Segment struct {
	Start float64
	End   float64
	Text  string
}

// Transcript is the output of a recognition engine.
type Transcript struct {
	Language string
	Segments []Segment
	Duration float64

	// Timed is true when segment times come from the engine rather than
	// from the text-length estimation fallback.
	Timed bool
}

// PlainText joins the segment texts, one per line.
func (t Transcript) PlainText() string {
	lines := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

// FormatTimestamp renders seconds as [MM:SS], or [HH:MM:SS] from one hour up.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if hours > 0 {
		return fmt.Sprintf("[%02d:%02d:%02d]", hours, minutes, secs)
	}
	return fmt.Sprintf("[%02d:%02d]", minutes, secs)
}

// Render returns the transcript as text. With timestamps enabled every
// segment line is prefixed with its start time shifted by offset seconds
// (cumulative time of preceding files in a batch).
func (t Transcript) Render(withTimestamps bool, offset float64) string {
	if !withTimestamps {
		return t.PlainText()
	}

	lines := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		lines = append(lines, FormatTimestamp(offset+seg.Start)+" "+text)
	}
	return strings.Join(lines, "\n")
}
