package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "zero vector",
			a:    []float32{0, 0},
			b:    []float32{1, 1},
			want: 0.0,
		},
		{
			name: "mismatched lengths",
			a:    []float32{1, 2},
			b:    []float32{1, 2, 3},
			want: 0.0,
		},
		{
			name: "empty vectors",
			a:    []float32{},
			b:    []float32{},
			want: 0.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, CosineSimilarity(tc.a, tc.b), 1e-9)
		})
	}
}

func TestCosineSimilarityScaleInvariant(t *testing.T) {
	a := []float32{0.2, 0.5, 0.8}
	b := []float32{0.4, 1.0, 1.6}

	require.InDelta(t, 1.0, CosineSimilarity(a, b), 1e-6)
}
