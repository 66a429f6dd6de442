package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/w-h-a/rag/store"
)

// Indexer embeds a dataset and bulk-loads it into a store. The corpus is
// static: the whole index is rebuilt on startup rather than updated in
// place. Record ids are derived from the review, so re-indexing the same
// dataset overwrites rather than duplicates.
type Indexer struct {
	options Options
}

func (i *Indexer) Index(ctx context.Context, dataset *Dataset) (int, error) {
	indexed := 0

	for _, restaurant := range dataset.Restaurants {
		metadata := store.Metadata{
			Restaurant: restaurant.Name,
			Cuisine:    strings.Join(restaurant.Cuisine, ", "),
			PriceRange: restaurant.PriceRange,
		}

		for _, review := range restaurant.Reviews {
			chunks := Split(review.Text, i.options.ChunkSize, i.options.ChunkOverlap)

			for idx, chunk := range chunks {
				rec := store.Record{
					Id:       recordId(restaurant.Name, review, idx),
					Text:     chunk,
					Metadata: metadata,
				}
				rec.Metadata.Rating = review.Rating
				rec.Metadata.Author = review.Author
				rec.Metadata.Date = review.Date
				rec.Metadata.Source = review.Source

				vec, err := i.options.Embedder.Embed(ctx, chunk)
				if err != nil {
					return indexed, fmt.Errorf("failed to embed review for %s: %w", restaurant.Name, err)
				}

				rec.Embedding = vec

				if err := i.options.Store.Insert(ctx, rec); err != nil {
					return indexed, fmt.Errorf("failed to insert review for %s: %w", restaurant.Name, err)
				}

				indexed++
			}
		}
	}

	slog.InfoContext(ctx, "indexed corpus", "restaurants", len(dataset.Restaurants), "records", indexed)

	return indexed, nil
}

func recordId(restaurant string, review Review, chunk int) string {
	seed := fmt.Sprintf("%s|%s|%s|%s|%d", restaurant, review.Author, review.Date, review.Source, chunk)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(seed)).String()
}

func NewIndexer(opts ...Option) *Indexer {
	options := NewOptions(opts...)

	if options.Embedder == nil || options.Store == nil {
		detail := "indexer requires an embedder and a store"
		slog.ErrorContext(context.Background(), detail)
		panic(detail)
	}

	i := &Indexer{
		options: options,
	}

	return i
}
