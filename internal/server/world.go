package server

import (
	"net/http"

	"github.com/samdwyer/labyrinth/internal/tileset"
	"github.com/samdwyer/labyrinth/internal/world"
)

// WorldResponse is the world manifest sent to clients.
type WorldResponse struct {
	ChunkSize int               `json:"chunkSize"`
	Extent    int               `json:"extent"`
	Tiles     []tileset.TileDef `json:"tiles"`
}

// WorldHandler serves the world manifest.
type WorldHandler struct {
	gen   *world.Generator
	tiles *tileset.Registry
}

// NewWorldHandler creates a new WorldHandler.
func NewWorldHandler(gen *world.Generator, tiles *tileset.Registry) *WorldHandler {
	return &WorldHandler{gen: gen, tiles: tiles}
}

// GetWorld handles GET /world.
func (h *WorldHandler) GetWorld(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, WorldResponse{
		ChunkSize: world.ChunkSize,
		Extent:    h.gen.Extent(),
		Tiles:     h.tiles.All(),
	})
}
