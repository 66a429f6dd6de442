package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/w-h-a/rag/prompt"
	"github.com/w-h-a/rag/retriever"
	"github.com/w-h-a/rag/store"
	memorystore "github.com/w-h-a/rag/store/memory"
)

type fakeRetriever struct {
	results []store.Result
	err     error
}

func (r *fakeRetriever) Retrieve(ctx context.Context, query string, k int) ([]store.Result, error) {
	if r.err != nil {
		return nil, r.err
	}
	if len(r.results) > k {
		return r.results[:k], nil
	}
	return r.results, nil
}

type fakeGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (g *fakeGenerator) Generate(ctx context.Context, p string) (string, error) {
	g.prompts = append(g.prompts, p)
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}

func results() []store.Result {
	return []store.Result{
		{
			Record: store.Record{
				Id:   "r1",
				Text: "Pure veg North Indian thali",
				Metadata: store.Metadata{
					Restaurant: "Annapurna",
					Rating:     4.5,
					Cuisine:    "North Indian",
				},
			},
			Score: 0.91,
		},
		{
			Record: store.Record{
				Id:   "r2",
				Text: "Great veg options with paneer dishes",
				Metadata: store.Metadata{
					Restaurant: "Trio",
					Rating:     4.2,
				},
			},
			Score: 0.87,
		},
	}
}

func TestAnswerGroundsGeneratorInRetrievedReviews(t *testing.T) {
	gen := &fakeGenerator{answer: "Try the thali at Annapurna."}

	service := New(
		memorystore.NewStore(),
		&fakeRetriever{results: results()},
		prompt.NewAssembler(),
		gen,
	)

	answer, err := service.Answer(context.Background(), "any veg food?", 2)
	require.NoError(t, err)
	require.Equal(t, "Try the thali at Annapurna.", answer.Answer)

	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "Pure veg North Indian thali")
	require.Contains(t, gen.prompts[0], "Question: any veg food?")
}

func TestAnswerFormatsSourcesInRankOrder(t *testing.T) {
	service := New(
		memorystore.NewStore(),
		&fakeRetriever{results: results()},
		prompt.NewAssembler(),
		&fakeGenerator{answer: "ok"},
	)

	answer, err := service.Answer(context.Background(), "any veg food?", 2)
	require.NoError(t, err)
	require.Len(t, answer.Sources, 2)

	require.Equal(t, 1, answer.Sources[0].Index)
	require.Equal(t, "Annapurna", answer.Sources[0].Restaurant)
	require.InDelta(t, 0.91, answer.Sources[0].Score, 1e-9)

	require.Equal(t, 2, answer.Sources[1].Index)
	require.Equal(t, "Trio", answer.Sources[1].Restaurant)
}

func TestAnswerShortCircuitsOnRetrievalError(t *testing.T) {
	gen := &fakeGenerator{answer: "should never be used"}

	service := New(
		memorystore.NewStore(),
		&fakeRetriever{err: retriever.ErrEmptyQuery},
		prompt.NewAssembler(),
		gen,
	)

	_, err := service.Answer(context.Background(), "", 2)
	require.ErrorIs(t, err, retriever.ErrEmptyQuery)

	// no external call is wasted on bad context
	require.Empty(t, gen.prompts)
}

func TestAnswerEmptyCorpusStillAnswers(t *testing.T) {
	gen := &fakeGenerator{answer: "I don't have enough information about that."}

	service := New(
		memorystore.NewStore(),
		&fakeRetriever{},
		prompt.NewAssembler(),
		gen,
	)

	answer, err := service.Answer(context.Background(), "any sushi places?", 3)
	require.NoError(t, err)
	require.Empty(t, answer.Sources)

	require.Len(t, gen.prompts, 1)
	require.Contains(t, gen.prompts[0], "(no reviews matched this question)")
}

func TestAnswerPropagatesGeneratorError(t *testing.T) {
	boom := errors.New("model unavailable")

	service := New(
		memorystore.NewStore(),
		&fakeRetriever{results: results()},
		prompt.NewAssembler(),
		&fakeGenerator{err: boom},
	)

	_, err := service.Answer(context.Background(), "any veg food?", 2)
	require.ErrorIs(t, err, boom)
}
