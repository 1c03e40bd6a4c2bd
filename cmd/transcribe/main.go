package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/minhtri0502/speech-flow/internal/audio"
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/exporter"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/internal/processor"
	"github.com/minhtri0502/speech-flow/internal/recognizer"
	"github.com/minhtri0502/speech-flow/internal/setup"
	"github.com/minhtri0502/speech-flow/internal/summarizer"
	"github.com/minhtri0502/speech-flow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	checkOnly := flag.Bool("check", false, "run environment checks and exit")
	record := flag.Bool("record", false, "record from the microphone instead of reading files")
	continuous := flag.Bool("continuous", false, "with -record, keep recording until Ctrl+C")
	duration := flag.Duration("duration", 0, "with -record, recording length (default 10s)")
	merge := flag.Bool("merge", false, "merge all input files into one recording before transcribing")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	report := setup.Run(cfg)
	if *checkOnly {
		fmt.Print(report)
		if !report.OK() {
			os.Exit(1)
		}
		return
	}
	if !report.OK() {
		fmt.Fprintf(os.Stderr, "Environment check failed:\n%s", report)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	exec := executor.New()
	aud := audio.New(cfg, exec, log)

	rec, err := recognizer.New(cfg, exec, aud, log)
	if err != nil {
		log.Error(ctx, "Failed to create recognizer: %v", err)
		os.Exit(1)
	}

	var sum summarizer.Summarizer
	if cfg.Summary.Enabled {
		if sum, err = summarizer.New(cfg, log); err != nil {
			log.Error(ctx, "Failed to create summarizer: %v", err)
			os.Exit(1)
		}
	}

	proc := processor.New(cfg, aud, rec, sum, exporter.New(cfg), log)

	if *record {
		if err := recordAndProcess(ctx, cfg, aud, proc, log, *continuous, *duration); err != nil {
			log.Error(ctx, "Recording failed: %v", err)
			os.Exit(1)
		}
		return
	}

	files, err := collectFiles(flag.Args())
	if err != nil {
		log.Error(ctx, "%v", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: transcribe [flags] <audio files or directories>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if *merge && len(files) > 1 {
		if err := mergeAndProcess(ctx, cfg, aud, proc, log, files); err != nil {
			log.Error(ctx, "Processing failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if len(files) == 1 {
		if err := proc.Process(ctx, files[0]); err != nil {
			log.Error(ctx, "Processing failed: %v", err)
			os.Exit(1)
		}
		return
	}

	result, err := proc.ProcessBatch(ctx, files)
	if err != nil {
		log.Error(ctx, "Batch failed: %v", err)
		os.Exit(1)
	}
	if result.Succeeded == 0 {
		log.Error(ctx, "All %d files failed", result.Failed)
		os.Exit(1)
	}
}

// recordAndProcess captures from the microphone and runs the recording
// through the pipeline. In continuous mode Ctrl+C stops the capture and the
// recording is still processed.
func recordAndProcess(ctx context.Context, cfg *config.Config, aud audio.Audio, proc processor.Processor, log logger.Logger, continuous bool, duration time.Duration) error {
	recordCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		log.Info(ctx, "Stopping recording...")
		cancel()
	}()

	if continuous {
		log.Info(ctx, "Recording... press Ctrl+C to stop")
	} else {
		log.Info(ctx, "Recording...")
	}

	wavPath, err := aud.Record(recordCtx, cfg.Paths.Input, audio.RecordOptions{
		MaxDuration: duration,
		Continuous:  continuous,
	})
	if err != nil {
		return err
	}
	log.Info(ctx, "Recording saved: %s", wavPath)

	// Process with the original context so Ctrl+C during recording does
	// not abort transcription of what was captured.
	return proc.Process(ctx, wavPath)
}

// mergeAndProcess joins the inputs into one recording (short silence gaps
// between them) and transcribes the result as a single file.
func mergeAndProcess(ctx context.Context, cfg *config.Config, aud audio.Audio, proc processor.Processor, log logger.Logger, files []string) error {
	tempDir := filepath.Join(cfg.Paths.Temp, fmt.Sprintf("merge-%d", os.Getpid()))
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	segments := make([]string, 0, len(files))
	for _, file := range files {
		wavPath, err := aud.Convert(ctx, file, tempDir)
		if err != nil {
			return fmt.Errorf("convert %s: %w", file, err)
		}
		segments = append(segments, wavPath)
	}

	mergedPath, err := aud.Merge(ctx, segments, cfg.Paths.Input)
	if err != nil {
		return fmt.Errorf("merge segments: %w", err)
	}
	log.Info(ctx, "Merged %d files: %s", len(files), mergedPath)

	return proc.Process(ctx, mergedPath)
}

// collectFiles expands arguments into a list of supported audio files.
// Directory arguments contribute every supported file they contain.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}

		if !info.IsDir() {
			if !audio.IsSupportedFile(arg) {
				return nil, fmt.Errorf("unsupported file type: %s", arg)
			}
			files = append(files, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", arg, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			path := filepath.Join(arg, entry.Name())
			if audio.IsSupportedFile(path) {
				files = append(files, path)
			}
		}
	}

	return files, nil
}

func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
		cfg.Paths.Summaries,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
