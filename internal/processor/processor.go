package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/minhtri0502/speech-flow/internal/transcript"
)

const exportTitle = "Speech-to-Text Result"

// Process orchestrates the entire audio processing pipeline
func (p *implProcessor) Process(ctx context.Context, audioPath string) error {
	startTime := time.Now()
	name := baseName(audioPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting audio processing: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	tempDir, err := p.makeTempDir()
	if err != nil {
		return err
	}
	defer p.cleanupTempDir(ctx, tempDir)

	// Step 1: Normalize to 16kHz mono WAV
	wavPath, err := p.audio.Convert(ctx, audioPath, tempDir)
	if err != nil {
		return fmt.Errorf("convert audio: %w", err)
	}

	// Step 2: Recognize speech
	tr, err := p.recognizer.Recognize(ctx, wavPath)
	if err != nil {
		return fmt.Errorf("recognize: %w", err)
	}
	tr = p.withTimestamps(tr)

	// Step 3: Export transcript
	rendered := tr.Render(p.cfg.Export.Timestamps, 0)
	outputs, err := p.export(ctx, name, rendered)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	// Step 4: Summarize (non-fatal)
	if err := p.summarize(ctx, name, tr.PlainText()); err != nil {
		p.logger.Warn(ctx, "Failed to summarize %s: %v", name, err)
	}

	// Step 5: Move original to archived folder
	if err := p.moveToArchived(ctx, audioPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	duration := time.Since(startTime)
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	for _, out := range outputs {
		p.logger.Info(ctx, "Output: %s", out)
	}
	p.logger.Info(ctx, "Processing time: %s", duration)
	p.logger.Info(ctx, "========================================")

	return nil
}

// withTimestamps applies the estimation fallback when the engine returned
// text without timing and the export wants timestamps.
func (p *implProcessor) withTimestamps(tr transcript.Transcript) transcript.Transcript {
	if tr.Timed || !p.cfg.Export.Timestamps {
		return tr
	}

	segments := transcript.EstimateSegments(tr.PlainText())
	if len(segments) == 0 {
		return tr
	}

	tr.Segments = segments
	if tr.Duration == 0 {
		tr.Duration = segments[len(segments)-1].End
	}
	return tr
}

// export writes the transcript in every configured format and returns the
// paths written.
func (p *implProcessor) export(ctx context.Context, name, content string) ([]string, error) {
	var outputs []string

	for _, format := range p.cfg.Export.Formats {
		path := filepath.Join(p.cfg.Paths.Output, name+"."+format)

		var err error
		switch format {
		case "txt":
			err = p.exporter.WriteText(path, exportTitle, content)
		case "docx":
			err = p.exporter.WriteDocx(path, exportTitle, content)
		}
		if err != nil {
			return nil, fmt.Errorf("write %s: %w", format, err)
		}

		p.logger.Debug(ctx, "Wrote %s", path)
		outputs = append(outputs, path)
	}

	return outputs, nil
}

// summarize generates an AI summary and writes it as markdown and docx.
func (p *implProcessor) summarize(ctx context.Context, name, text string) error {
	if p.summarizer == nil || !p.cfg.Summary.Enabled {
		return nil
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	p.logger.Info(ctx, "Summarizing transcript: %s", name)

	summary, err := p.summarizer.Summarize(ctx, text)
	if err != nil {
		return err
	}

	mdPath := filepath.Join(p.cfg.Paths.Summaries, name+".md")
	if err := os.WriteFile(mdPath, []byte(summary), 0644); err != nil {
		return fmt.Errorf("write summary markdown: %w", err)
	}

	docxPath := filepath.Join(p.cfg.Paths.Summaries, name+".docx")
	if err := p.exporter.WriteMarkdownDocx(docxPath, "Summary: "+name, summary); err != nil {
		return fmt.Errorf("write summary docx: %w", err)
	}

	p.logger.Info(ctx, "Summary written: %s", mdPath)
	return nil
}

// moveToArchived moves a processed file out of the input folder
func (p *implProcessor) moveToArchived(ctx context.Context, audioPath string) error {
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(audioPath))

	p.logger.Info(ctx, "Moving to archived folder: %s -> %s", audioPath, destPath)

	if err := os.Rename(audioPath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

func (p *implProcessor) makeTempDir() (string, error) {
	tempDir := filepath.Join(p.cfg.Paths.Temp, uuid.NewString())
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	return tempDir, nil
}

// cleanupTempDir removes a job's temp directory, logs warning if fails
func (p *implProcessor) cleanupTempDir(ctx context.Context, tempDir string) {
	if err := os.RemoveAll(tempDir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", tempDir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", tempDir)
	}
}

func baseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
