package generator

import "context"

// Generator is the external answer model: an opaque prompt-in, text-out
// collaborator. Timeouts and retries are its own concern.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
