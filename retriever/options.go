package retriever

import (
	"context"

	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/store"
)

type Strategy string

const (
	// Similarity returns the plain top-k by cosine score.
	Similarity Strategy = "similarity"
	// MMR fetches a wider candidate set and rebalances for diversity.
	MMR Strategy = "mmr"
)

type Option func(*Options)

type Options struct {
	Embedder        embedder.Embedder
	Store           store.Store
	Strategy        Strategy
	Relevance       float64
	FetchMultiplier int
	Context         context.Context
}

func WithEmbedder(embedder embedder.Embedder) Option {
	return func(o *Options) {
		o.Embedder = embedder
	}
}

func WithStore(store store.Store) Option {
	return func(o *Options) {
		o.Store = store
	}
}

func WithStrategy(strategy Strategy) Option {
	return func(o *Options) {
		o.Strategy = strategy
	}
}

func WithRelevance(relevance float64) Option {
	return func(o *Options) {
		o.Relevance = relevance
	}
}

func WithFetchMultiplier(multiplier int) Option {
	return func(o *Options) {
		o.FetchMultiplier = multiplier
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Strategy:        Similarity,
		Relevance:       0.7, // mild diversity
		FetchMultiplier: 4,   // fetch more, then diversify
		Context:         context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
