package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/minhtri0502/speech-flow/internal/transcript"
)

// ProcessBatch converts files in name order into a single combined
// transcript. Each file gets a section header; when timestamps are on the
// header carries the file's start time within the batch and segment times
// are shifted by the running offset. A failed file is marked in place and
// does not stop the batch.
func (p *implProcessor) ProcessBatch(ctx context.Context, files []string) (BatchResult, error) {
	var result BatchResult
	if len(files) == 0 {
		return result, fmt.Errorf("no input files")
	}

	startTime := time.Now()
	sorted := append([]string(nil), files...)
	sort.Strings(sorted)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting batch processing: %d files", len(sorted))
	p.logger.Info(ctx, "========================================")

	tempDir, err := p.makeTempDir()
	if err != nil {
		return result, err
	}
	defer p.cleanupTempDir(ctx, tempDir)

	var combined strings.Builder
	offset := 0.0

	for i, file := range sorted {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		header := fmt.Sprintf("=== File %d: %s", i+1, filepath.Base(file))
		if p.cfg.Export.Timestamps {
			header += " (starts at " + transcript.FormatTimestamp(offset) + ")"
		}
		combined.WriteString(header + "\n")

		p.logger.Info(ctx, "[%d/%d] Processing %s", i+1, len(sorted), file)

		rendered, duration, err := p.processOne(ctx, file, tempDir, offset)
		if err != nil {
			p.logger.Warn(ctx, "Failed to process %s: %v", file, err)
			combined.WriteString("[conversion failed]\n\n")
			result.Failed++
			// The failed file still occupies its slot in the sequence, so
			// later files keep their real positions.
			offset += p.sourceDuration(ctx, file)
			continue
		}

		combined.WriteString(rendered + "\n\n")
		offset += duration
		result.Succeeded++
	}

	name := "transcript-" + time.Now().Format("20060102-150405")
	content := strings.TrimRight(combined.String(), "\n")

	outputs, err := p.export(ctx, name, content)
	if err != nil {
		return result, fmt.Errorf("export: %w", err)
	}

	if result.Succeeded > 0 {
		if err := p.summarize(ctx, name, content); err != nil {
			p.logger.Warn(ctx, "Failed to summarize batch: %v", err)
		}
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Batch completed: %d succeeded, %d failed", result.Succeeded, result.Failed)
	for _, out := range outputs {
		p.logger.Info(ctx, "Output: %s", out)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return result, nil
}

// sourceDuration probes the original file's length for the batch offset.
// Zero when probing fails too.
func (p *implProcessor) sourceDuration(ctx context.Context, file string) float64 {
	duration, err := p.audio.Duration(ctx, file)
	if err != nil {
		p.logger.Warn(ctx, "Failed to probe duration of %s: %v", file, err)
		return 0
	}
	return duration
}

// processOne converts and recognizes one batch file, returning its rendered
// transcript and real audio duration for the running offset.
func (p *implProcessor) processOne(ctx context.Context, file, tempDir string, offset float64) (string, float64, error) {
	wavPath, err := p.audio.Convert(ctx, file, tempDir)
	if err != nil {
		return "", 0, fmt.Errorf("convert audio: %w", err)
	}

	tr, err := p.recognizer.Recognize(ctx, wavPath)
	if err != nil {
		return "", 0, fmt.Errorf("recognize: %w", err)
	}
	tr = p.withTimestamps(tr)

	duration, err := p.audio.Duration(ctx, wavPath)
	if err != nil {
		p.logger.Warn(ctx, "Failed to probe duration of %s, using transcript length: %v", wavPath, err)
		duration = tr.Duration
	}

	return tr.Render(p.cfg.Export.Timestamps, offset), duration, nil
}
