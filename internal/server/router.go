// Package server exposes the chunk generator over HTTP.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/tileset"
	"github.com/samdwyer/labyrinth/internal/world"
)

// NewRouter configures all routes and returns the handler.
func NewRouter(gen *world.Generator, tiles *tileset.Registry, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(Middlewares(log)...)

	chunks := NewChunkHandler(gen, log)
	worlds := NewWorldHandler(gen, tiles)

	r.Get("/chunk/{x}/{y}/{seed}", chunks.GetChunk)
	r.Get("/world", worlds.GetWorld)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}

// Middlewares returns the stack every route runs through, outermost first.
// Recovery sits inside Tracing and AccessLog so both see the 500 it writes.
func Middlewares(log *zap.Logger) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		RequestID,
		Tracing,
		AccessLog(log),
		Recovery(log),
		CORS,
	}
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		LoggerFrom(r.Context()).Warn("encoding response failed", zap.Error(err))
	}
}

// respondError writes an error JSON response.
func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, r, status, map[string]string{"error": message})
}
