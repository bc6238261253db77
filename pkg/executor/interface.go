package executor

import "context"

// Executor runs external tools such as ffprobe and ffmpeg
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Available(name string) bool
}
