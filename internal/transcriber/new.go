package transcriber

import (
	"net/http"

	"github.com/nguyentantai21042004/meeting-minutes/internal/config"
	"github.com/nguyentantai21042004/meeting-minutes/internal/logger"
)

const speechToTextPath = "/v1/speech-to-text"

type implTranscriber struct {
	apiKey      string
	modelID     string
	baseURL     string
	contentType string
	httpClient  *http.Client
	logger      logger.Logger
}

// Option customizes a Transcriber
type Option func(*implTranscriber)

// WithHTTPClient replaces http.DefaultClient
func WithHTTPClient(c *http.Client) Option {
	return func(t *implTranscriber) {
		t.httpClient = c
	}
}

// WithBaseURL points the client at another host, e.g. a test server
func WithBaseURL(url string) Option {
	return func(t *implTranscriber) {
		t.baseURL = url
	}
}

// New creates an ElevenLabs speech-to-text Transcriber
func New(cfg config.SpeechConfig, log logger.Logger, opts ...Option) Transcriber {
	t := &implTranscriber{
		apiKey:      cfg.APIKey,
		modelID:     cfg.ModelID,
		baseURL:     cfg.BaseURL,
		contentType: cfg.ContentType,
		logger:      log,
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.httpClient == nil {
		t.httpClient = http.DefaultClient
	}
	if t.baseURL == "" {
		t.baseURL = config.DefaultSpeechBaseURL
	}
	if t.modelID == "" {
		t.modelID = config.DefaultSpeechModelID
	}

	return t
}
