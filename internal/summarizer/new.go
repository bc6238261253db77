package summarizer

import (
	"github.com/nguyentantai21042004/meeting-minutes/internal/llm"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

type implSummarizer struct {
	generator   llm.Generator
	logger      logger.Logger
	parallelism int
}

// New creates a Summarizer. A parallelism above 1 generates up to that many
// sections at once; the result does not depend on it.
func New(gen llm.Generator, log logger.Logger, parallelism int) Summarizer {
	return &implSummarizer{
		generator:   gen,
		logger:      log,
		parallelism: parallelism,
	}
}
