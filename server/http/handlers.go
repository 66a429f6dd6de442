package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/w-h-a/rag/embedder"
	"github.com/w-h-a/rag/retriever"
	"github.com/w-h-a/rag/store"
)

type askRequest struct {
	Question string `json:"question"`
	K        int    `json:"k,omitempty"`
}

func (s *httpServer) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	k := req.K
	if k == 0 {
		k = s.defaultK
	}

	answer, err := s.service.Answer(r.Context(), req.Question, k)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to answer question", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJson(w, http.StatusOK, answer)
}

func (s *httpServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	count, err := s.service.Count(r.Context())
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}

	writeJson(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"records": count,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, retriever.ErrEmptyQuery),
		errors.Is(err, retriever.ErrInvalidK),
		errors.Is(err, store.ErrInvalidLimit),
		errors.Is(err, embedder.ErrEmptyInput),
		errors.Is(err, embedder.ErrInputTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJson(w, status, map[string]string{"error": detail})
}
