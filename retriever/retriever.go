package retriever

import (
	"context"
	"errors"

	"github.com/w-h-a/rag/store"
)

var (
	ErrEmptyQuery = errors.New("retriever: query text is empty")
	ErrInvalidK   = errors.New("retriever: k must be positive")
)

// Retriever embeds a query and returns the k most relevant review records,
// scored and ranked descending. An empty corpus yields an empty result.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) ([]store.Result, error)
}
