package embedder

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput   = errors.New("embedder: input text is empty")
	ErrInputTooLong = errors.New("embedder: input text exceeds model limit")
)

// Embedder maps text to a fixed-length vector. Implementations must be
// deterministic: the same input yields the same vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Validate enforces the shared input contract before a provider calls out
// to its model.
func Validate(text string, maxInputLength int) error {
	if len(strings.TrimSpace(text)) == 0 {
		return ErrEmptyInput
	}

	if maxInputLength > 0 && len(text) > maxInputLength {
		return fmt.Errorf("%w: %d > %d", ErrInputTooLong, len(text), maxInputLength)
	}

	return nil
}
