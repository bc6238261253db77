package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

func (p *implPreparer) Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat audio file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("audio path %s is a directory", path)
	}
	return info.Size(), nil
}

// Duration probes the length of path in seconds with ffprobe
func (p *implPreparer) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-i", path,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0",
	}

	out, err := p.executor.Execute(ctx, p.cfg.FFprobePath, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(out), err)
	}
	return seconds, nil
}

func (p *implPreparer) Prepare(ctx context.Context, path string) (Upload, error) {
	size, err := p.Size(path)
	if err != nil {
		return Upload{}, err
	}

	if size <= p.cfg.MaxSizeBytes {
		p.logger.Debug(ctx, "Audio size %d bytes is within limit %d bytes", size, p.cfg.MaxSizeBytes)
		return Upload{Path: path}, nil
	}

	p.logger.Warn(ctx, "Audio (%d bytes) exceeds the configured limit of %d bytes", size, p.cfg.MaxSizeBytes)

	if !p.cfg.Resize {
		p.logger.Warn(ctx, "Resize is disabled, uploading %s unchanged", path)
		return Upload{Path: path}, nil
	}

	return p.resize(ctx, path, size)
}

// resize keeps the leading part of the recording whose share of the
// duration matches the share of the size limit.
func (p *implPreparer) resize(ctx context.Context, path string, size int64) (Upload, error) {
	duration, err := p.Duration(ctx, path)
	if err != nil {
		return Upload{}, err
	}

	target := duration * float64(p.cfg.MaxSizeBytes) / float64(size)

	tempDir, err := os.MkdirTemp("", "meeting-audio-*")
	if err != nil {
		return Upload{}, fmt.Errorf("create temp dir: %w", err)
	}
	p.logger.Info(ctx, "Compressed audio will be stored in %s", tempDir)

	outPath := filepath.Join(tempDir, fmt.Sprintf("compressed_audio_%s.wav", p.now().Format("20060102150405")))
	args := []string{
		"-i", path,
		"-ss", "0",
		"-t", strconv.FormatFloat(target, 'f', 3, 64),
		"-y",
		outPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpegPath, args...); err != nil {
		if rmErr := os.RemoveAll(tempDir); rmErr != nil {
			p.logger.Warn(ctx, "Failed to cleanup temp dir %s: %v", tempDir, rmErr)
		}
		return Upload{}, fmt.Errorf("ffmpeg resize: %w", err)
	}

	p.logger.Info(ctx, "Audio trimmed to %.3fs of %.3fs: %s", target, duration, outPath)
	return Upload{Path: outPath, TempDir: tempDir}, nil
}
