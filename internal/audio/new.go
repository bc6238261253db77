package audio

import (
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/pkg/executor"
)

type implPreparer struct {
	cfg      config.AudioConfig
	executor executor.Executor
	logger   logger.Logger
	now      func() time.Time
}

// New creates a Preparer
func New(cfg config.AudioConfig, exec executor.Executor, log logger.Logger) Preparer {
	return &implPreparer{
		cfg:      cfg,
		executor: exec,
		logger:   log,
		now:      time.Now,
	}
}
