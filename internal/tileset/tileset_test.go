package tileset

import (
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/labyrinth/internal/world"
)

func TestLoadTiles(t *testing.T) {
	tiles, err := LoadTiles()
	if err != nil {
		t.Fatalf("Failed to load tiles: %v", err)
	}

	if len(tiles) != 6 {
		t.Errorf("Expected 6 tiles, got %d", len(tiles))
	}
}

func TestRegistry(t *testing.T) {
	registry, err := LoadRegistry()
	if err != nil {
		t.Fatalf("Failed to load registry: %v", err)
	}

	if registry.Count() != 6 {
		t.Errorf("Expected 6 tile kinds, got %d", registry.Count())
	}

	for tile := world.TileFloor; tile.Valid(); tile++ {
		def := registry.Get(tile)
		if def == nil {
			t.Errorf("no definition for %v", tile)
			continue
		}
		if def.Name != tile.String() {
			t.Errorf("tile %d named %q, want %q", tile, def.Name, tile.String())
		}
	}

	if registry.Get(world.Tile(42)) != nil {
		t.Error("Get(42) should return nil")
	}
}

func TestRegistryRejectsBadLegend(t *testing.T) {
	tests := []struct {
		name string
		defs []TileDef
	}{
		{"unknown id", []TileDef{{ID: 9, Name: "void"}}},
		{"duplicate", []TileDef{
			{ID: world.TileFloor, Name: "floor", Passable: true},
			{ID: world.TileFloor, Name: "floor", Passable: true},
		}},
		{"passability mismatch", []TileDef{{ID: world.TileWall, Name: "wall", Passable: true}}},
		{"missing kinds", []TileDef{{ID: world.TileFloor, Name: "floor", Passable: true}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewRegistry(tt.defs); err == nil {
				t.Error("NewRegistry() succeeded, want error")
			}
		})
	}
}

func TestStyle(t *testing.T) {
	registry := MustLoadRegistry()

	glyph, style := registry.Style(world.TileWall)
	if glyph != '#' {
		t.Errorf("wall glyph = %q, want '#'", glyph)
	}
	wallColor := tcell.NewHexColor(0x6A994E)
	if want := tcell.StyleDefault.Foreground(wallColor).Background(wallColor); style != want {
		t.Errorf("wall style = %v, want %v", style, want)
	}

	glyph, _ = registry.Style(world.Tile(-1))
	if glyph != '?' {
		t.Errorf("unknown glyph = %q, want '?'", glyph)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		want    tcell.Color
		wantErr bool
	}{
		{"#A7C957", tcell.NewHexColor(0xA7C957), false},
		{"f1c40f", tcell.NewHexColor(0xF1C40F), false},
		{"#FFF", tcell.ColorDefault, true},
		{"#GGGGGG", tcell.ColorDefault, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
