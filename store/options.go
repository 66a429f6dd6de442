package store

import "context"

type Option func(*Options)

type Options struct {
	Location   string
	Collection string
	ApiKey     string
	Dimension  int
	Context    context.Context
}

func WithApiKey(apiKey string) Option {
	return func(o *Options) {
		o.ApiKey = apiKey
	}
}

func WithLocation(loc string) Option {
	return func(o *Options) {
		o.Location = loc
	}
}

func WithCollection(collection string) Option {
	return func(o *Options) {
		o.Collection = collection
	}
}

func WithDimension(dimension int) Option {
	return func(o *Options) {
		o.Dimension = dimension
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Collection: "reviews",
		Context:    context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
