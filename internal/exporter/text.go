package exporter

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// WriteText writes the transcript with a header and conversion time,
// matching the layout of the docx export.
func (e *implExporter) WriteText(path, title, content string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Converted at: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	b.WriteString(strings.Repeat("-", 50) + "\n")
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write text file: %w", err)
	}
	return nil
}
