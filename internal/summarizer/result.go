package summarizer

import (
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

// ErrorTextPrefix starts the field text written in place of a failed section
const ErrorTextPrefix = "Error generating content: "

// GenerationError reports a failed generation for one section
type GenerationError struct {
	Section models.Section
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate %s: %v", e.Section, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Generation is the outcome of one section
type Generation struct {
	Section models.Section
	Text    string
	Err     *GenerationError
}

// Result holds the summary and the per-section outcomes in section order.
// Summary fields of failed sections carry ErrorTextPrefix plus the error.
type Result struct {
	Summary     models.MeetingSummary
	Generations []Generation
}

// Failed lists the sections whose generation failed
func (r Result) Failed() []models.Section {
	var failed []models.Section
	for _, g := range r.Generations {
		if g.Err != nil {
			failed = append(failed, g.Section)
		}
	}
	return failed
}

// Err joins every generation failure, or returns nil
func (r Result) Err() error {
	var errs []error
	for _, g := range r.Generations {
		if g.Err != nil {
			errs = append(errs, g.Err)
		}
	}
	return errors.Join(errs...)
}
