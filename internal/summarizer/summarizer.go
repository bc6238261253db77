package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/meeting-minutes/internal/models"
)

func (s *implSummarizer) MeetingMinutes(ctx context.Context, transcript string) Result {
	generations := make([]Generation, len(models.Sections))

	if s.parallelism > 1 {
		s.generateConcurrently(ctx, transcript, generations)
	} else {
		for i, section := range models.Sections {
			generations[i] = s.generate(ctx, section, transcript)
		}
	}

	result := Result{Generations: generations}
	for _, g := range generations {
		result.Summary.Set(g.Section, g.Text)
	}
	return result
}

// generateConcurrently fills generations in place; each goroutine owns one index.
func (s *implSummarizer) generateConcurrently(ctx context.Context, transcript string, generations []Generation) {
	group := newFanOut(s.parallelism)

	for i, section := range models.Sections {
		err := group.Go(ctx, func() {
			generations[i] = s.generate(ctx, section, transcript)
		})
		if err != nil {
			generations[i] = failed(section, err)
		}
	}

	group.Wait()
}

func (s *implSummarizer) generate(ctx context.Context, section models.Section, transcript string) Generation {
	text, err := s.generator.Generate(ctx, BuildPrompt(section, transcript))
	if err != nil {
		s.logger.Error(ctx, "Failed to generate %s: %v", section.Title(), err)
		return failed(section, err)
	}

	s.logger.Info(ctx, "%s: Done", section.Title())
	return Generation{Section: section, Text: text}
}

func failed(section models.Section, err error) Generation {
	return Generation{
		Section: section,
		Text:    ErrorTextPrefix + err.Error(),
		Err:     &GenerationError{Section: section, Err: err},
	}
}
