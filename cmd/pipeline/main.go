package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/minhtri0502/speech-flow/internal/audio"
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/exporter"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/internal/processor"
	"github.com/minhtri0502/speech-flow/internal/recognizer"
	"github.com/minhtri0502/speech-flow/internal/setup"
	"github.com/minhtri0502/speech-flow/internal/summarizer"
	"github.com/minhtri0502/speech-flow/internal/watcher"
	"github.com/minhtri0502/speech-flow/pkg/executor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	checkOnly := flag.Bool("check", false, "run environment checks and exit")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Preflight: verify ffmpeg, the recognition engine and API keys
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

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Speech-to-Text Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "CPU Cores: %d", runtime.NumCPU())
	log.Info(ctx, "Recognition engine: %s (%s)", cfg.Recognition.Engine, cfg.Recognition.Language)
	log.Info(ctx, "Max Concurrent Processing: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
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

	exp := exporter.New(cfg)
	proc := processor.New(cfg, aud, rec, sum, exp, log)

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start watcher in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Speech Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s", cfg.Paths.Output)
	log.Info(ctx, "")
	log.Info(ctx, "Settings:")
	log.Info(ctx, "  - Engine: %s, language %s", cfg.Recognition.Engine, cfg.Recognition.Language)
	if cfg.Recognition.Engine == recognizer.EngineWhisper {
		log.Info(ctx, "  - Whisper: %d threads, model %s", cfg.Recognition.Whisper.Threads, cfg.Recognition.Whisper.ModelPath)
	}
	log.Info(ctx, "  - Export: %v (timestamps: %t)", cfg.Export.Formats, cfg.Export.Timestamps)
	if cfg.Summary.Enabled {
		log.Info(ctx, "  - Summary: %s", cfg.Summary.Provider)
	}
	log.Info(ctx, "  - Concurrent: %d files at once", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Speech Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
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
