package vector

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/w-h-a/rag/retriever"
	"github.com/w-h-a/rag/store"
)

type vectorRetriever struct {
	options retriever.Options
}

func (r *vectorRetriever) Retrieve(ctx context.Context, query string, k int) ([]store.Result, error) {
	if len(strings.TrimSpace(query)) == 0 {
		return nil, retriever.ErrEmptyQuery
	}

	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", retriever.ErrInvalidK, k)
	}

	vec, err := r.options.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, err
	}

	if r.options.Strategy == retriever.MMR {
		return r.diversified(ctx, vec, k)
	}

	results, err := r.options.Store.Nearest(ctx, vec, k)
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *vectorRetriever) diversified(ctx context.Context, vec []float32, k int) ([]store.Result, error) {
	fetch := k * r.options.FetchMultiplier
	if fetch < k {
		fetch = k
	}

	candidates, err := r.options.Store.Nearest(ctx, vec, fetch)
	if err != nil {
		return nil, err
	}

	return retriever.Select(candidates, k, r.options.Relevance), nil
}

func NewRetriever(opts ...retriever.Option) retriever.Retriever {
	options := retriever.NewOptions(opts...)

	if options.Embedder == nil || options.Store == nil {
		detail := "vector retriever requires an embedder and a store"
		slog.ErrorContext(context.Background(), detail)
		panic(detail)
	}

	r := &vectorRetriever{
		options: options,
	}

	return r
}
