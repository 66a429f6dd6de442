package openai

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"
	"github.com/w-h-a/rag/generator"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       g.options.Model,
		MaxTokens:   g.options.MaxTokens,
		Temperature: g.options.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	}

	rsp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return rsp.Choices[0].Message.Content, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	g := &openAIGenerator{
		options: options,
	}

	config := openai.DefaultConfig(options.ApiKey)
	config.HTTPClient = &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	g.client = openai.NewClientWithConfig(config)

	return g
}
