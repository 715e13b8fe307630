package server

import (
	"encoding/binary"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/world"
)

// ChunkResponse is the body of GET /chunk/{x}/{y}/{seed}.
type ChunkResponse struct {
	Chunk []world.Tile `json:"chunk"`
}

// ChunkHandler serves generated chunks.
type ChunkHandler struct {
	gen *world.Generator
	log *zap.Logger
}

// NewChunkHandler creates a new ChunkHandler.
func NewChunkHandler(gen *world.Generator, log *zap.Logger) *ChunkHandler {
	return &ChunkHandler{gen: gen, log: log}
}

// GetChunk handles GET /chunk/{x}/{y}/{seed} and returns the flat tile array.
// Responses never change for a given path, so they carry a content ETag and a
// long-lived cache policy.
func (h *ChunkHandler) GetChunk(w http.ResponseWriter, r *http.Request) {
	x, err := strconv.Atoi(chi.URLParam(r, "x"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid x coordinate")
		return
	}

	y, err := strconv.Atoi(chi.URLParam(r, "y"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid y coordinate")
		return
	}

	// chi routes on the raw path when one is present, leaving escapes in place.
	seed := chi.URLParam(r, "seed")
	if r.URL.RawPath != "" {
		if seed, err = url.PathUnescape(seed); err != nil {
			respondError(w, r, http.StatusBadRequest, "invalid seed encoding")
			return
		}
	}
	if seed == "" {
		respondError(w, r, http.StatusBadRequest, "seed must not be empty")
		return
	}

	chunk := h.gen.Generate(r.Context(), seed, x, y)
	tiles := chunk.Flat()
	etag := chunkETag(tiles)

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.logger(r).Debug("chunk generated",
		zap.String("seed", seed),
		zap.Int("x", x),
		zap.Int("y", y),
		zap.String("etag", etag),
	)

	respondJSON(w, r, http.StatusOK, ChunkResponse{Chunk: tiles})
}

// logger prefers the request-scoped logger installed by AccessLog.
func (h *ChunkHandler) logger(r *http.Request) *zap.Logger {
	if log, ok := r.Context().Value(loggerKey).(*zap.Logger); ok {
		return log
	}
	return h.log
}

// chunkETag hashes the tile values into a strong entity tag.
func chunkETag(tiles []world.Tile) string {
	buf := make([]byte, 0, len(tiles))
	for _, t := range tiles {
		buf = append(buf, byte(t))
	}
	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], xxhash.Sum64(buf))
	return fmt.Sprintf(`"%x"`, sum)
}

// etagMatches reports whether an If-None-Match header value matches etag.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
