package watcher

import "context"

// Watcher defines the interface for directory monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler handles one new audio file
type EventHandler func(ctx context.Context, filePath string) error
