package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/w-h-a/rag/corpus"
	"github.com/w-h-a/rag/embedder"
	googleembedder "github.com/w-h-a/rag/embedder/google"
	openaiembedder "github.com/w-h-a/rag/embedder/openai"
	"github.com/w-h-a/rag/generator"
	anthropicgenerator "github.com/w-h-a/rag/generator/anthropic"
	googlegenerator "github.com/w-h-a/rag/generator/google"
	openaigenerator "github.com/w-h-a/rag/generator/openai"
	"github.com/w-h-a/rag/internal/service/rag"
	"github.com/w-h-a/rag/prompt"
	"github.com/w-h-a/rag/retriever"
	"github.com/w-h-a/rag/retriever/vector"
	"github.com/w-h-a/rag/store"
	memorystore "github.com/w-h-a/rag/store/memory"
)

var (
	cfg struct {
		// Corpus config
		Dataset string `help:"Path to the reviews dataset" default:"data/reviews.json"`

		// Embedder config
		Embedder      string `help:"Embedder provider (openai, google)" default:"openai" env:"EMBEDDER"`
		EmbedderKey   string `help:"API key for the embedder" default:"" env:"EMBEDDER_API_KEY"`
		EmbedderModel string `help:"Model identifier for the embedder" default:"text-embedding-3-small" env:"EMBEDDER_MODEL"`
		Dimension     int    `help:"Embedding dimensionality" default:"1536" env:"EMBEDDER_DIMENSION"`

		// Retriever config
		K        int    `help:"Number of reviews to retrieve" default:"4"`
		Strategy string `help:"Retrieval strategy (similarity, mmr)" default:"mmr"`

		// Generator config
		Generator    string `help:"Generator provider (openai, anthropic, google)" default:"openai" env:"GENERATOR"`
		GeneratorKey string `help:"API key for the generator" default:"" env:"GENERATOR_API_KEY"`
		Model        string `help:"Model identifier for the generator" default:"gpt-4o-mini" env:"GENERATOR_MODEL"`
	}
)

func main() {
	_ = godotenv.Load()
	_ = kong.Parse(&cfg)
	ctx := context.Background()

	emb := newEmbedder()
	st := memorystore.NewStore(store.WithDimension(cfg.Dimension))
	gen := newGenerator()

	dataset, err := corpus.Load(cfg.Dataset)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	indexer := corpus.NewIndexer(
		corpus.WithEmbedder(emb),
		corpus.WithStore(st),
	)

	indexed, err := indexer.Index(ctx, dataset)
	if err != nil {
		log.Fatalf("failed to index corpus: %v", err)
	}

	fmt.Printf("Indexed %d review records. Ask a question and press enter.\n", indexed)

	re := vector.NewRetriever(
		retriever.WithEmbedder(emb),
		retriever.WithStore(st),
		retriever.WithStrategy(retriever.Strategy(cfg.Strategy)),
	)

	service := rag.New(st, re, prompt.NewAssembler(), gen)

	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")

		if !scanner.Scan() {
			break
		}

		question := strings.TrimSpace(scanner.Text())
		if len(question) == 0 {
			continue
		}

		if question == "exit" || question == "quit" {
			break
		}

		answer, err := service.Answer(ctx, question, cfg.K)
		if err != nil {
			log.Printf("failed to answer: %v", err)
			continue
		}

		fmt.Printf("\n%s\n\nSources (%d):\n", answer.Answer, len(answer.Sources))
		for _, source := range answer.Sources {
			fmt.Printf("%d. %s (%.1f stars) %s\n", source.Index, source.Restaurant, source.Rating, snippet(source.Text))
		}
		fmt.Println()
	}
}

func snippet(text string) string {
	if len(text) > 100 {
		return text[:100] + "..."
	}
	return text
}

func newEmbedder() embedder.Embedder {
	opts := []embedder.Option{
		embedder.WithApiKey(cfg.EmbedderKey),
		embedder.WithModel(cfg.EmbedderModel),
		embedder.WithDimension(cfg.Dimension),
	}

	switch cfg.Embedder {
	case "google":
		return googleembedder.NewEmbedder(opts...)
	default:
		return openaiembedder.NewEmbedder(opts...)
	}
}

func newGenerator() generator.Generator {
	opts := []generator.Option{
		generator.WithApiKey(cfg.GeneratorKey),
		generator.WithModel(cfg.Model),
	}

	switch cfg.Generator {
	case "anthropic":
		return anthropicgenerator.NewGenerator(opts...)
	case "google":
		return googlegenerator.NewGenerator(opts...)
	default:
		return openaigenerator.NewGenerator(opts...)
	}
}
