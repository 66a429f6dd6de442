package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/w-h-a/rag/store"
	getsafe "github.com/w-h-a/rag/util/get_safe"
)

type qdrantStore struct {
	options store.Options
	client  *http.Client
}

func (s *qdrantStore) Insert(ctx context.Context, record store.Record) error {
	if s.options.Dimension > 0 && len(record.Embedding) != s.options.Dimension {
		return fmt.Errorf("%w: got %d, store holds %d", store.ErrDimensionMismatch, len(record.Embedding), s.options.Dimension)
	}

	payload := map[string]any{
		"text":     record.Text,
		"metadata": record.Metadata,
	}

	point := map[string]any{
		"id":      record.Id,
		"vector":  record.Embedding,
		"payload": payload,
	}

	req := map[string]any{
		"points": []map[string]any{point},
	}

	var rsp qdrantEnvelope[json.RawMessage]

	// same point id upserts, so re-indexing is idempotent
	path := fmt.Sprintf("/collections/%s/points?wait=true", url.PathEscape(s.options.Collection))

	if err := s.do(ctx, http.MethodPut, path, req, &rsp); err != nil {
		return err
	}

	if !strings.EqualFold(rsp.Status.State, "ok") && len(rsp.Status.Error) > 0 {
		return errors.New(rsp.Status.Error)
	}

	return nil
}

func (s *qdrantStore) Nearest(ctx context.Context, vector []float32, k int) ([]store.Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: got %d", store.ErrInvalidLimit, k)
	}

	req := map[string]any{
		"vector":       vector,
		"limit":        k,
		"with_vector":  true,
		"with_payload": true,
	}

	var rsp qdrantEnvelope[[]qdrantPointResult]

	path := fmt.Sprintf("/collections/%s/points/search", url.PathEscape(s.options.Collection))

	if err := s.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return nil, err
	}

	results := make([]store.Result, 0, len(rsp.Result))

	for _, point := range rsp.Result {
		payload := point.Payload

		var metadata store.Metadata
		if raw := getsafe.Metadata(payload, "metadata"); raw != nil {
			bs, err := json.Marshal(raw)
			if err == nil {
				_ = json.Unmarshal(bs, &metadata)
			}
		}

		results = append(results, store.Result{
			Record: store.Record{
				Id:        point.Id,
				Text:      getsafe.String(payload, "text"),
				Metadata:  metadata,
				Embedding: point.Vector,
			},
			Score: point.Score,
		})
	}

	return results, nil
}

func (s *qdrantStore) Count(ctx context.Context) (int, error) {
	req := map[string]any{
		"exact": true,
	}

	var rsp qdrantEnvelope[qdrantCountResult]

	path := fmt.Sprintf("/collections/%s/points/count", url.PathEscape(s.options.Collection))

	if err := s.do(ctx, http.MethodPost, path, req, &rsp); err != nil {
		return 0, err
	}

	return rsp.Result.Count, nil
}

func (s *qdrantStore) do(ctx context.Context, method string, path string, req any, rsp any) error {
	u := s.options.Location + path
	var buf io.Reader
	if req != nil {
		data, err := json.Marshal(req)
		if err != nil {
			return err
		}
		buf = bytes.NewReader(data)
	}

	request, err := http.NewRequestWithContext(ctx, method, u, buf)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")

	if len(s.options.ApiKey) > 0 {
		request.Header.Set("api-key", s.options.ApiKey)
		request.Header.Set("Authorization", "Bearer "+s.options.ApiKey)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 400 {
		return fmt.Errorf("qdrant http %d: %s", response.StatusCode, string(payload))
	}

	if rsp != nil && len(payload) > 0 {
		if err := json.Unmarshal(payload, rsp); err != nil {
			return err
		}
	}

	return nil
}

func (s *qdrantStore) configure() error {
	exists, err := s.collectionExists()
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	return s.createCollection()
}

func (s *qdrantStore) collectionExists() (bool, error) {
	path := fmt.Sprintf("/collections/%s", url.PathEscape(s.options.Collection))

	var rsp qdrantEnvelope[json.RawMessage]

	err := s.do(context.Background(), http.MethodGet, path, nil, &rsp)
	if err != nil {
		if strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}

	return strings.EqualFold(rsp.Status.State, "ok"), nil
}

func (s *qdrantStore) createCollection() error {
	req := map[string]any{
		"vectors": map[string]any{
			"size":     s.options.Dimension,
			"distance": "Cosine",
		},
	}

	path := fmt.Sprintf("/collections/%s", url.PathEscape(s.options.Collection))

	var rsp qdrantEnvelope[json.RawMessage]

	if err := s.do(context.Background(), http.MethodPut, path, req, &rsp); err != nil {
		return err
	}

	if !strings.EqualFold(rsp.Status.State, "ok") {
		return errors.New(rsp.Status.Error)
	}

	return nil
}

func NewStore(opts ...store.Option) store.Store {
	options := store.NewOptions(opts...)

	if len(options.Location) == 0 || len(options.Collection) == 0 || options.Dimension < 1 {
		detail := "qdrant store requires a location, collection, and dimension"
		slog.ErrorContext(context.Background(), detail)
		panic(detail)
	}

	s := &qdrantStore{
		options: options,
		client:  &http.Client{Timeout: 30 * time.Second},
	}

	if err := s.configure(); err != nil {
		detail := "failed to configure collection for qdrant store"
		slog.ErrorContext(context.Background(), detail, "error", err)
		panic(detail)
	}

	return s
}
