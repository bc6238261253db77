package artifact

import (
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type implStore struct {
	baseDir string
	docx    bool
	logger  logger.Logger
	now     func() time.Time
}

// New creates a Store. An empty cfg.Dir uses the OS temp directory.
func New(cfg config.OutputConfig, log logger.Logger) Store {
	return &implStore{
		baseDir: cfg.Dir,
		docx:    cfg.Docx,
		logger:  log,
		now:     time.Now,
	}
}
