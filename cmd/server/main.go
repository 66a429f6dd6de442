package main

import (
	"context"
	"log"

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
	"github.com/w-h-a/rag/server"
	httpserver "github.com/w-h-a/rag/server/http"
	"github.com/w-h-a/rag/store"
	memorystore "github.com/w-h-a/rag/store/memory"
	postgresstore "github.com/w-h-a/rag/store/postgres"
	qdrantstore "github.com/w-h-a/rag/store/qdrant"
)

var (
	cfg struct {
		// Server config
		Address string `help:"Address to serve on" default:":4000"`

		// Corpus config
		Dataset      string `help:"Path to the reviews dataset" default:"data/reviews.json"`
		ChunkSize    int    `help:"Max characters per indexed chunk" default:"500"`
		ChunkOverlap int    `help:"Character overlap between chunks" default:"50"`

		// Embedder config
		Embedder      string `help:"Embedder provider (openai, google)" default:"openai" env:"EMBEDDER"`
		EmbedderKey   string `help:"API key for the embedder" default:"" env:"EMBEDDER_API_KEY"`
		EmbedderModel string `help:"Model identifier for the embedder" default:"text-embedding-3-small" env:"EMBEDDER_MODEL"`
		Dimension     int    `help:"Embedding dimensionality" default:"1536" env:"EMBEDDER_DIMENSION"`

		// Store config
		Store      string `help:"Store provider (memory, postgres, qdrant)" default:"memory" env:"STORE"`
		Location   string `help:"Connection string or base URL for the store" default:"" env:"STORE_LOCATION"`
		Collection string `help:"Collection or table holding the reviews" default:"reviews" env:"STORE_COLLECTION"`
		StoreKey   string `help:"API key for the store" default:"" env:"STORE_API_KEY"`

		// Retriever config
		K         int     `help:"Default number of reviews to retrieve" default:"4"`
		Strategy  string  `help:"Retrieval strategy (similarity, mmr)" default:"mmr"`
		Relevance float64 `help:"MMR relevance weight between 0 and 1" default:"0.7"`

		// Prompt config
		MaxContextLength int `help:"Max characters for the assembled prompt" default:"4000"`

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
	st := newStore()
	gen := newGenerator()

	dataset, err := corpus.Load(cfg.Dataset)
	if err != nil {
		log.Fatalf("failed to load dataset: %v", err)
	}

	indexer := corpus.NewIndexer(
		corpus.WithEmbedder(emb),
		corpus.WithStore(st),
		corpus.WithChunkSize(cfg.ChunkSize),
		corpus.WithChunkOverlap(cfg.ChunkOverlap),
	)

	indexed, err := indexer.Index(ctx, dataset)
	if err != nil {
		log.Fatalf("failed to index corpus: %v", err)
	}

	log.Printf("indexed %d records from %d restaurants", indexed, len(dataset.Restaurants))

	re := vector.NewRetriever(
		retriever.WithEmbedder(emb),
		retriever.WithStore(st),
		retriever.WithStrategy(retriever.Strategy(cfg.Strategy)),
		retriever.WithRelevance(cfg.Relevance),
	)

	assembler := prompt.NewAssembler(
		prompt.WithMaxContextLength(cfg.MaxContextLength),
	)

	service := rag.New(st, re, assembler, gen)

	srv := httpserver.NewServer(
		service,
		cfg.K,
		server.WithAddress(cfg.Address),
	)

	log.Printf("serving on %s", cfg.Address)

	if err := srv.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
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

func newStore() store.Store {
	opts := []store.Option{
		store.WithLocation(cfg.Location),
		store.WithCollection(cfg.Collection),
		store.WithApiKey(cfg.StoreKey),
		store.WithDimension(cfg.Dimension),
	}

	switch cfg.Store {
	case "postgres":
		return postgresstore.NewStore(opts...)
	case "qdrant":
		return qdrantstore.NewStore(opts...)
	default:
		return memorystore.NewStore(opts...)
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
