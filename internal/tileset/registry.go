package tileset

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/labyrinth/internal/world"
)

// Registry holds the tile legend indexed by tile kind.
type Registry struct {
	byKind map[world.Tile]*TileDef
	all    []TileDef
}

// NewRegistry creates a registry from loaded tile definitions.
// Every tile kind must be defined exactly once and agree with the generator
// on passability.
func NewRegistry(defs []TileDef) (*Registry, error) {
	r := &Registry{
		byKind: make(map[world.Tile]*TileDef, len(defs)),
		all:    defs,
	}
	for i := range defs {
		def := &defs[i]
		if !def.ID.Valid() {
			return nil, fmt.Errorf("tile %q has unknown id %d", def.Name, def.ID)
		}
		if _, dup := r.byKind[def.ID]; dup {
			return nil, fmt.Errorf("tile id %d defined twice", def.ID)
		}
		if def.Passable != def.ID.IsPassable() {
			return nil, fmt.Errorf("tile %q passable=%t disagrees with generator", def.Name, def.Passable)
		}
		r.byKind[def.ID] = def
	}
	for t := world.TileFloor; t.Valid(); t++ {
		if _, ok := r.byKind[t]; !ok {
			return nil, fmt.Errorf("no definition for tile %v", t)
		}
	}
	return r, nil
}

// LoadRegistry loads and creates a registry from the embedded tiles.json.
func LoadRegistry() (*Registry, error) {
	defs, err := LoadTiles()
	if err != nil {
		return nil, err
	}
	return NewRegistry(defs)
}

// MustLoadRegistry loads a registry, panicking on error.
// The legend is embedded, so a failure here is a build defect.
func MustLoadRegistry() *Registry {
	registry, err := LoadRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// Get returns the definition for a tile kind, or nil if unknown.
func (r *Registry) Get(t world.Tile) *TileDef {
	return r.byKind[t]
}

// Style returns the glyph and tcell style used to draw a tile kind.
// Unknown kinds render as a white '?'.
func (r *Registry) Style(t world.Tile) (rune, tcell.Style) {
	def := r.Get(t)
	if def == nil {
		return '?', tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}
	style := tcell.StyleDefault.Foreground(def.TCellColor())
	if t == world.TileWall {
		style = style.Background(def.TCellColor())
	}
	return def.GlyphRune(), style
}

// All returns all tile definitions in file order.
func (r *Registry) All() []TileDef {
	return r.all
}

// Count returns the number of tile kinds in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}
