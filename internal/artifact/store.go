package artifact

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

const timestampLayout = "20060102150405"

// FileName returns the artifact name for a timestamp
func FileName(timestamp string) string {
	return "meeting_data_" + timestamp + ".json"
}

func (s *implStore) Save(ctx context.Context, summary models.MeetingSummary) (string, error) {
	if s.baseDir != "" {
		if err := os.MkdirAll(s.baseDir, 0755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}

	dir, err := os.MkdirTemp(s.baseDir, "meeting-minutes-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	timestamp := s.now().Format(timestampLayout)
	path := filepath.Join(dir, FileName(timestamp))
	s.logger.Info(ctx, "JSON file path: %s", path)

	data, err := json.Marshal(summary)
	if err != nil {
		return "", fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	s.logger.Info(ctx, "JSON file created successfully")

	if s.docx {
		docxPath := filepath.Join(dir, "meeting_data_"+timestamp+".docx")
		if err := summaryToDocx("Meeting Minutes", summary, docxPath); err != nil {
			// The JSON artifact is already on disk.
			s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		} else {
			s.logger.Info(ctx, "DOCX file created: %s", docxPath)
		}
	}

	return path, nil
}
