package llm

import "context"

// Generator sends a single-turn prompt to a language model and returns the
// generated text
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
