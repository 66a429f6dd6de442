package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/w-h-a/rag/internal/service/rag"
	"github.com/w-h-a/rag/server"
)

type httpServer struct {
	options  server.Options
	service  *rag.Service
	defaultK int
}

func (s *httpServer) Run() error {
	router := mux.NewRouter()

	router.HandleFunc("/api/v1/ask", s.handleAsk).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/health", s.handleHealth).Methods(http.MethodGet)

	var handler http.Handler = router

	if ms, ok := MiddlewareFrom(s.options.Context); ok {
		for i := len(ms) - 1; i >= 0; i-- {
			handler = ms[i](handler)
		}
	}

	return http.ListenAndServe(s.options.Address, handler)
}

func NewServer(service *rag.Service, defaultK int, opts ...server.Option) server.Server {
	options := server.NewOptions(opts...)

	s := &httpServer{
		options:  options,
		service:  service,
		defaultK: defaultK,
	}

	return s
}
