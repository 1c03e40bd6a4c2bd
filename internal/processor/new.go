package processor

import (
	"github.com/minhtri0502/speech-flow/internal/audio"
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/exporter"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/internal/recognizer"
	"github.com/minhtri0502/speech-flow/internal/summarizer"
)

type implProcessor struct {
	cfg        *config.Config
	audio      audio.Audio
	recognizer recognizer.Recognizer
	summarizer summarizer.Summarizer // nil when summarization is disabled
	exporter   exporter.Exporter
	logger     logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, aud audio.Audio, rec recognizer.Recognizer, sum summarizer.Summarizer, exp exporter.Exporter, log logger.Logger) Processor {
	return &implProcessor{
		cfg:        cfg,
		audio:      aud,
		recognizer: rec,
		summarizer: sum,
		exporter:   exp,
		logger:     log,
	}
}
