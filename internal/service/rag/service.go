package rag

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/w-h-a/rag/generator"
	"github.com/w-h-a/rag/prompt"
	"github.com/w-h-a/rag/retriever"
	"github.com/w-h-a/rag/store"
)

// Service wires retrieval, prompt assembly, and generation into a single
// question-answering flow. Any retrieval error short-circuits before the
// generator is called so no external call is wasted on bad context.
type Service struct {
	store     store.Store
	retriever retriever.Retriever
	assembler *prompt.Assembler
	generator generator.Generator
}

type Answer struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

type Source struct {
	Index      int     `json:"index"`
	Restaurant string  `json:"restaurant"`
	Rating     float64 `json:"rating"`
	Cuisine    string  `json:"cuisine,omitempty"`
	PriceRange string  `json:"price_range,omitempty"`
	Author     string  `json:"author,omitempty"`
	Date       string  `json:"date,omitempty"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

func (s *Service) Answer(ctx context.Context, question string, k int) (*Answer, error) {
	results, err := s.retriever.Retrieve(ctx, question, k)
	if err != nil {
		return nil, fmt.Errorf("retrieval error: %w", err)
	}

	assembled := s.assembler.Assemble(question, results)

	text, err := s.generator.Generate(ctx, assembled)
	if err != nil {
		return nil, fmt.Errorf("generation error: %w", err)
	}

	slog.InfoContext(ctx, "answered question", "k", k, "retrieved", len(results))

	return &Answer{
		Answer:  text,
		Sources: formatSources(results),
	}, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func formatSources(results []store.Result) []Source {
	sources := make([]Source, 0, len(results))

	for i, res := range results {
		restaurant := res.Metadata.Restaurant
		if len(restaurant) == 0 {
			restaurant = "Unknown"
		}

		sources = append(sources, Source{
			Index:      i + 1,
			Restaurant: restaurant,
			Rating:     res.Metadata.Rating,
			Cuisine:    res.Metadata.Cuisine,
			PriceRange: res.Metadata.PriceRange,
			Author:     res.Metadata.Author,
			Date:       res.Metadata.Date,
			Text:       res.Text,
			Score:      res.Score,
		})
	}

	return sources
}

func New(
	st store.Store,
	re retriever.Retriever,
	as *prompt.Assembler,
	ge generator.Generator,
) *Service {
	return &Service{
		store:     st,
		retriever: re,
		assembler: as,
		generator: ge,
	}
}
