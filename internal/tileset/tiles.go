package tileset

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/labyrinth/internal/world"
)

// TileDef describes how a tile kind is presented to clients.
type TileDef struct {
	ID       world.Tile `json:"id"`       // Wire value of the tile kind
	Name     string     `json:"name"`     // Display name (e.g. "floor")
	Glyph    string     `json:"glyph"`    // Single character for terminal rendering
	Color    string     `json:"color"`    // Hex color code (e.g. "#A7C957")
	Passable bool       `json:"passable"` // Whether players can walk on it
}

// GlyphRune returns the glyph as a rune for rendering.
func (d *TileDef) GlyphRune() rune {
	for _, r := range d.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color, white if it cannot be parsed.
func (d *TileDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(d.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// TilesFile represents the structure of tiles.json.
type TilesFile struct {
	Tiles []TileDef `json:"tiles"`
}

// LoadTiles loads tile definitions from the embedded tiles.json file.
func LoadTiles() ([]TileDef, error) {
	file, err := Load[TilesFile]("tiles.json")
	if err != nil {
		return nil, err
	}
	return file.Tiles, nil
}
