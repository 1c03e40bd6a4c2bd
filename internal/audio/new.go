package audio

import (
	"github.com/minhtri0502/speech-flow/internal/config"
	"github.com/minhtri0502/speech-flow/internal/logger"
	"github.com/minhtri0502/speech-flow/pkg/executor"
)

type implAudio struct {
	cfg      *config.Config
	executor executor.Executor
	logger   logger.Logger
}

// New creates a new Audio instance
func New(cfg *config.Config, exec executor.Executor, log logger.Logger) Audio {
	return &implAudio{
		cfg:      cfg,
		executor: exec,
		logger:   log,
	}
}
