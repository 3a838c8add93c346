// Package rest serves the derived views over HTTP. Read-only: ingestion
// happens through the CLI, never through this API.
package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/prettygood/courtside/internal/store"
)

// Server is the REST API server.
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server over the blob store.
func NewServer(port string, st store.Store) *Server {
	handler := NewHandler(st)

	router := mux.NewRouter()

	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players/{number}", handler.GetPlayer).Methods("GET")

	api.HandleFunc("/games", handler.GetGamesIndex).Methods("GET")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")

	api.HandleFunc("/records", handler.GetRecords).Methods("GET")

	api.HandleFunc("/seasons", handler.GetSeasons).Methods("GET")
	api.HandleFunc("/seasons/{seasonKey}", handler.GetSeasonAggregate).Methods("GET")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
		},
	}
}

// Start starts the REST API server.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
