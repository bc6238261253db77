package summarizer

import "context"

// Summarizer derives a MeetingSummary from a transcript
type Summarizer interface {
	// MeetingMinutes runs one generation per section. It never fails as a
	// whole: per-section failures are reported in Result.Generations.
	MeetingMinutes(ctx context.Context, transcript string) Result
}
