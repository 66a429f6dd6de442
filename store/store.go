package store

import (
	"context"
	"errors"
)

var (
	ErrDimensionMismatch = errors.New("store: embedding dimension mismatch")
	ErrInvalidLimit      = errors.New("store: limit must be positive")
)

// Store holds review records and their embeddings. Records are immutable
// once inserted; inserting an existing id overwrites the old record.
type Store interface {
	Insert(ctx context.Context, record Record) error
	Nearest(ctx context.Context, vector []float32, k int) ([]Result, error)
	Count(ctx context.Context) (int, error)
}
