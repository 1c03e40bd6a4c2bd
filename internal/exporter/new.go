package exporter

import (
	"github.com/minhtri0502/speech-flow/internal/config"
)

type implExporter struct {
	font string
}

// New creates a new Exporter instance
func New(cfg *config.Config) Exporter {
	return &implExporter{
		font: cfg.Export.Font,
	}
}
