package corpus

import (
	"context"
	"hash/fnv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/w-h-a/rag/store"
	memorystore "github.com/w-h-a/rag/store/memory"
)

// hashEmbedder derives a deterministic vector from the text itself.
type hashEmbedder struct{}

func (e *hashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, 4)
	for i := range vec {
		h := fnv.New32a()
		h.Write([]byte{byte(i)})
		h.Write([]byte(text))
		vec[i] = float32(h.Sum32()%1000) / 1000
	}
	return vec, nil
}

func dataset() *Dataset {
	return &Dataset{
		Restaurants: []Restaurant{
			{
				Name:       "Annapurna",
				Cuisine:    []string{"North Indian", "Rajasthani"},
				PriceRange: "$$",
				Rating:     4.4,
				Reviews: []Review{
					{Text: "Pure veg North Indian thali", Rating: 5, Author: "asha", Date: "2024-11-02", Source: "blog"},
					{Text: "Great veg options with paneer dishes", Rating: 4, Author: "ravi", Date: "2024-12-18", Source: "blog"},
				},
			},
			{
				Name:       "Desert Boy",
				Cuisine:    []string{"Multi-cuisine"},
				PriceRange: "$$$",
				Rating:     4.1,
				Reviews: []Review{
					{Text: "The fort view from rooftop is amazing", Rating: 4, Author: "li", Date: "2025-01-05", Source: "maps"},
				},
			},
		},
	}
}

func TestIndexBuildsRecords(t *testing.T) {
	s := memorystore.NewStore(store.WithDimension(4))

	indexer := NewIndexer(
		WithEmbedder(&hashEmbedder{}),
		WithStore(s),
	)

	indexed, err := indexer.Index(context.Background(), dataset())
	require.NoError(t, err)
	require.Equal(t, 3, indexed)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestIndexCarriesMetadata(t *testing.T) {
	s := memorystore.NewStore(store.WithDimension(4))
	emb := &hashEmbedder{}

	indexer := NewIndexer(
		WithEmbedder(emb),
		WithStore(s),
	)

	_, err := indexer.Index(context.Background(), dataset())
	require.NoError(t, err)

	vec, err := emb.Embed(context.Background(), "The fort view from rooftop is amazing")
	require.NoError(t, err)

	results, err := s.Nearest(context.Background(), vec, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)

	meta := results[0].Metadata
	require.Equal(t, "Desert Boy", meta.Restaurant)
	require.Equal(t, "Multi-cuisine", meta.Cuisine)
	require.Equal(t, "$$$", meta.PriceRange)
	require.Equal(t, 4.0, meta.Rating)
	require.Equal(t, "li", meta.Author)
}

func TestIndexIsIdempotent(t *testing.T) {
	s := memorystore.NewStore(store.WithDimension(4))

	indexer := NewIndexer(
		WithEmbedder(&hashEmbedder{}),
		WithStore(s),
	)

	_, err := indexer.Index(context.Background(), dataset())
	require.NoError(t, err)

	// re-indexing the same dataset overwrites rather than duplicates
	_, err = indexer.Index(context.Background(), dataset())
	require.NoError(t, err)

	count, err := s.Count(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestLoadDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.json")

	payload := `{
		"restaurants": [
			{
				"name": "Trio",
				"cuisine": ["Rajasthani"],
				"price_range": "$$",
				"rating": 4.6,
				"reviews": [
					{"text": "great lal maas", "rating": 5, "author": "sam", "date": "2025-02-01", "source": "maps"},
					{"text": "   ", "rating": 3, "author": "", "date": "", "source": ""}
				]
			}
		]
	}`

	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	dataset, err := Load(path)
	require.NoError(t, err)
	require.Len(t, dataset.Restaurants, 1)
	require.Equal(t, "Trio", dataset.Restaurants[0].Name)
	require.Equal(t, 1, dataset.ReviewCount())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}
