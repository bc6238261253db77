package transcriber

import "context"

// Transcriber converts an audio file into plain text
type Transcriber interface {
	// Transcribe returns the transcript of audioPath. A failed call returns
	// an empty transcript and a *Error; a response without text returns ""
	// and a nil error.
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
