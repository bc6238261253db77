package artifact

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

// Store persists a MeetingSummary as a JSON artifact
type Store interface {
	// Save writes the summary into a new temp directory and returns the
	// JSON file path. Artifacts are never cleaned up.
	Save(ctx context.Context, summary models.MeetingSummary) (string, error)
}
