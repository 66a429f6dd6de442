package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/w-h-a/rag/internal/service/rag"
	"github.com/w-h-a/rag/prompt"
	"github.com/w-h-a/rag/retriever"
	vectorretriever "github.com/w-h-a/rag/retriever/vector"
	"github.com/w-h-a/rag/server"
	"github.com/w-h-a/rag/store"
	memorystore "github.com/w-h-a/rag/store/memory"
)

type fixedEmbedder struct {
	vec []float32
}

func (e *fixedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, nil
}

type cannedGenerator struct {
	answer string
}

func (g *cannedGenerator) Generate(ctx context.Context, p string) (string, error) {
	return g.answer, nil
}

func newTestServer(t *testing.T) *httpServer {
	t.Helper()

	st := memorystore.NewStore(store.WithDimension(2))

	err := st.Insert(context.Background(), store.Record{
		Id:        "r1",
		Text:      "Pure veg North Indian thali",
		Metadata:  store.Metadata{Restaurant: "Annapurna", Rating: 4.5},
		Embedding: []float32{1, 0},
	})
	require.NoError(t, err)

	re := vectorretriever.NewRetriever(
		retriever.WithEmbedder(&fixedEmbedder{vec: []float32{1, 0}}),
		retriever.WithStore(st),
	)

	service := rag.New(st, re, prompt.NewAssembler(), &cannedGenerator{answer: "Try Annapurna."})

	return &httpServer{
		options:  server.NewOptions(),
		service:  service,
		defaultK: 4,
	}
}

func TestHandleAsk(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question": "any veg food?", "k": 2}`))
	rec := httptest.NewRecorder()

	s.handleAsk(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body rag.Answer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Try Annapurna.", body.Answer)
	require.Len(t, body.Sources, 1)
	require.Equal(t, "Annapurna", body.Sources[0].Restaurant)
}

func TestHandleAskDefaultsK(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question": "any veg food?"}`))
	rec := httptest.NewRecorder()

	s.handleAsk(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleAskRejectsEmptyQuestion(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question": "  "}`))
	rec := httptest.NewRecorder()

	s.handleAsk(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAskRejectsInvalidK(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`{"question": "any veg food?", "k": -1}`))
	rec := httptest.NewRecorder()

	s.handleAsk(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAskRejectsBadBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/ask", strings.NewReader(`not json`))
	rec := httptest.NewRecorder()

	s.handleAsk(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	s.handleHealth(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, float64(1), body["records"])
}
