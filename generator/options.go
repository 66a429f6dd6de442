package generator

import "context"

type Option func(*Options)

type Options struct {
	ApiKey      string
	Model       string
	MaxTokens   int
	Temperature float32
	Context     context.Context
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

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithTemperature(temperature float32) Option {
	return func(o *Options) {
		o.Temperature = temperature
	}
}

func NewOptions(opts ...Option) Options {
	options := Options{
		MaxTokens:   1000,
		Temperature: 0.3,
		Context:     context.Background(),
	}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
