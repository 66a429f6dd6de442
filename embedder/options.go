package embedder

import "context"

type Option func(*Options)

type Options struct {
	ApiKey         string
	Model          string
	Dimension      int
	MaxInputLength int
	Context        context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithDimension(dimension int) Option {
	return func(o *Options) {
		o.Dimension = dimension
	}
}

func WithMaxInputLength(length int) Option {
	return func(o *Options) {
		o.MaxInputLength = length
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxInputLength: 8192,
		Context:        context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
