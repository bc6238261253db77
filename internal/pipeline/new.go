package pipeline

import (
	"errors"
	"io"
	"os"

	"github.com/nguyentantai21042004/meeting-minutes/internal/artifact"
	"github.com/nguyentantai21042004/meeting-minutes/internal/audio"
	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
	"github.com/nguyentantai21042004/meeting-minutes/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-minutes/internal/transcriber"
)

// Deps are the stages a Pipeline runs. Out receives the printed sections
// and defaults to stdout.
type Deps struct {
	Preparer    audio.Preparer
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Store       artifact.Store
	Logger      logger.Logger
	Out         io.Writer
}

type implPipeline struct {
	abortOnTranscriptionError bool
	preparer                  audio.Preparer
	transcriber               transcriber.Transcriber
	summarizer                summarizer.Summarizer
	store                     artifact.Store
	logger                    logger.Logger
	out                       io.Writer
}

// New validates cfg and creates a Pipeline. A *config.ConfigurationError is
// returned before any stage is called.
func New(cfg *config.Config, deps Deps) (Pipeline, error) {
	if cfg == nil {
		return nil, &config.ConfigurationError{Key: "config", Reason: "no configuration provided"}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if deps.Preparer == nil || deps.Transcriber == nil || deps.Summarizer == nil || deps.Store == nil {
		return nil, errors.New("pipeline: missing stage dependency")
	}

	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Out == nil {
		deps.Out = os.Stdout
	}

	return &implPipeline{
		abortOnTranscriptionError: cfg.Pipeline.AbortOnTranscriptionError,
		preparer:                  deps.Preparer,
		transcriber:               deps.Transcriber,
		summarizer:                deps.Summarizer,
		store:                     deps.Store,
		logger:                    deps.Logger,
		out:                       deps.Out,
	}, nil
}
