package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

// Run executes size check, transcription, summarization and storage in order
func (p *implPipeline) Run(ctx context.Context, audioPath string) (*Report, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting minutes: %s", audioPath)
	p.logger.Info(ctx, "========================================")

	// Step 1: Check size, trim when enabled
	upload, err := p.preparer.Prepare(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("prepare audio: %w", err)
	}
	if upload.TempDir != "" {
		defer p.cleanupTempDir(ctx, upload.TempDir)
	}

	report := &Report{AudioPath: audioPath}

	// Step 2: Transcribe
	transcript, err := p.transcriber.Transcribe(ctx, upload.Path)
	if err != nil {
		if p.abortOnTranscriptionError {
			return nil, fmt.Errorf("transcribe: %w", err)
		}
		p.logger.Warn(ctx, "Transcription failed, summarizing an empty transcript: %v", err)
		report.TranscriptErr = err
		transcript = ""
	}
	report.Transcript = transcript

	// Step 3: Summarize
	result := p.summarizer.MeetingMinutes(ctx, transcript)
	report.Minutes = result.Summary
	report.FailedSections = result.Failed()
	if err := result.Err(); err != nil {
		p.logger.Warn(ctx, "Some sections failed: %v", err)
	}

	// Step 4: Persist
	artifactPath, err := p.store.Save(ctx, result.Summary)
	if err != nil {
		return nil, fmt.Errorf("save artifact: %w", err)
	}
	report.ArtifactPath = artifactPath

	// Step 5: Print
	if err := p.print(result.Summary); err != nil {
		return nil, fmt.Errorf("print minutes: %w", err)
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Meeting minutes completed")
	p.logger.Info(ctx, "Artifact: %s", artifactPath)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return report, nil
}

func (p *implPipeline) Process(ctx context.Context, audioPath string) error {
	_, err := p.Run(ctx, audioPath)
	return err
}

func (p *implPipeline) print(summary models.MeetingSummary) error {
	for _, section := range models.Sections {
		if _, err := fmt.Fprintf(p.out, "%s: %s\n", section.Title(), summary.Get(section)); err != nil {
			return err
		}
	}
	return nil
}

// cleanupTempDir removes the trimmed upload copy, logs warning if fails
func (p *implPipeline) cleanupTempDir(ctx context.Context, dir string) {
	if err := os.RemoveAll(dir); err != nil {
		p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", dir, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp dir: %s", dir)
	}
}
