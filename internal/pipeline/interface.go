package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

// Pipeline turns one recording into meeting minutes
type Pipeline interface {
	// Run transcribes audioPath, summarizes the transcript, stores the
	// artifact and prints the four sections.
	Run(ctx context.Context, audioPath string) (*Report, error)
	// Process is Run for callers that only need the error, e.g. the watcher.
	Process(ctx context.Context, audioPath string) error
}

// Report describes one completed run
type Report struct {
	AudioPath      string
	Transcript     string
	TranscriptErr  error
	Minutes        models.MeetingSummary
	FailedSections []models.Section
	ArtifactPath   string
}
