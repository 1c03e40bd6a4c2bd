package exporter

// Exporter writes transcripts and summaries to disk.
type Exporter interface {
	// WriteText writes a plain-text document with a title header and the
	// conversion time.
	WriteText(path, title, content string) error

	// WriteDocx writes a transcript as a styled Word document.
	WriteDocx(path, title, content string) error

	// WriteMarkdownDocx converts markdown (a summary) into a styled Word
	// document with headings, bullets and bold runs.
	WriteMarkdownDocx(path, title, markdown string) error
}
