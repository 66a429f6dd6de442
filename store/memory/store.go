package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/w-h-a/rag/store"
)

type memoryStore struct {
	options   store.Options
	dimension int
	records   []store.Record
	index     map[string]int
	mtx       sync.RWMutex
}

func (s *memoryStore) Insert(ctx context.Context, record store.Record) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.dimension == 0 {
		s.dimension = len(record.Embedding)
	}

	if len(record.Embedding) != s.dimension {
		return fmt.Errorf("%w: got %d, store holds %d", store.ErrDimensionMismatch, len(record.Embedding), s.dimension)
	}

	cpy := record
	cpy.Embedding = make([]float32, len(record.Embedding))
	copy(cpy.Embedding, record.Embedding)

	// overwrite in place so re-indexing keeps the original position
	if pos, exists := s.index[record.Id]; exists {
		s.records[pos] = cpy
		return nil
	}

	s.index[record.Id] = len(s.records)
	s.records = append(s.records, cpy)

	return nil
}

func (s *memoryStore) Nearest(ctx context.Context, vector []float32, k int) ([]store.Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", store.ErrInvalidLimit, k)
	}

	s.mtx.RLock()
	defer s.mtx.RUnlock()

	candidates := make([]store.Result, 0, len(s.records))

	for _, rec := range s.records {
		candidates = append(candidates, store.Result{
			Record: rec,
			Score:  store.CosineSimilarity(vector, rec.Embedding),
		})
	}

	// stable: equal scores keep insertion order
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	if len(candidates) > k {
		candidates = candidates[:k]
	}

	return candidates, nil
}

func (s *memoryStore) Count(ctx context.Context) (int, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return len(s.records), nil
}

func NewStore(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	s := &memoryStore{
		options:   options,
		dimension: options.Dimension,
		records:   []store.Record{},
		index:     map[string]int{},
		mtx:       sync.RWMutex{},
	}

	return s
}
