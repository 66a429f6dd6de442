package server

import "context"

type Server interface {
	Run() error
}

type Option func(*Options)

type Options struct {
	Address string
	Context context.Context
}

func WithAddress(address string) Option {
	return func(o *Options) {
		o.Address = address
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		Address: ":4000",
		Context: context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
