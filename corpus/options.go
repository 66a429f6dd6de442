package corpus

import (
	"context"

	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/store"
)

type Option func(*Options)

type Options struct {
	Embedder     embedder.Embedder
	Store        store.Store
	ChunkSize    int
	ChunkOverlap int
	Context      context.Context
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

func WithChunkSize(size int) Option {
	return func(o *Options) {
		o.ChunkSize = size
	}
}

func WithChunkOverlap(overlap int) Option {
	return func(o *Options) {
		o.ChunkOverlap = overlap
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		ChunkSize:    500,
		ChunkOverlap: 50,
		Context:      context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
