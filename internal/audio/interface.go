package audio

import "context"

// Preparer inspects an audio file before upload
type Preparer interface {
	// Prepare returns the file to upload. Oversized files are logged and,
	// when resizing is enabled, trimmed into a new temp directory.
	Prepare(ctx context.Context, path string) (Upload, error)
	Size(path string) (int64, error)
	Duration(ctx context.Context, path string) (float64, error)
}

// Upload is the file handed to the transcriber. TempDir is set only when
// Path is a trimmed copy; the caller removes it after the upload.
type Upload struct {
	Path    string
	TempDir string
}
