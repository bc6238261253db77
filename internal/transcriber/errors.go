package transcriber

import "fmt"

// Error reports a failed transcription. StatusCode and Body are set when
// the provider answered with a non-2xx status.
type Error struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transcription %s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("transcription %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
