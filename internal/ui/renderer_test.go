package ui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/labyrinth/internal/client"
	"github.com/samdwyer/labyrinth/internal/tileset"
	"github.com/samdwyer/labyrinth/internal/world"
)

// fakeCanvas records drawn cells.
type fakeCanvas struct {
	cells map[[2]int]rune
	shown int
}

func newFakeCanvas() *fakeCanvas {
	return &fakeCanvas{cells: make(map[[2]int]rune)}
}

func (c *fakeCanvas) Clear() { c.cells = make(map[[2]int]rune) }
func (c *fakeCanvas) Show()  { c.shown++ }
func (c *fakeCanvas) SetContent(x, y int, r rune, style tcell.Style) {
	c.cells[[2]int{x, y}] = r
}

func (c *fakeCanvas) row(y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, ok := c.cells[[2]int{x, y}]
		if !ok {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestRenderCurrentChunk(t *testing.T) {
	canvas := newFakeCanvas()
	r := NewRenderer(canvas, tileset.MustLoadRegistry())

	tiles := client.Fallback()
	r.Render(View{
		Seed:   "semilla",
		X:      2,
		Y:      -1,
		Chunks: []client.Entry{{X: 2, Y: -1, Tiles: tiles}},
		Status: "ready",
	})

	if canvas.shown != 1 {
		t.Errorf("Show() called %d times, want 1", canvas.shown)
	}
	if header := canvas.row(headerRow, 40); !strings.HasPrefix(header, `Chunk (2, -1)  seed "semilla"`) {
		t.Errorf("header = %q", header)
	}
	if got := canvas.row(mapTop, world.ChunkSize*cellWidth); got != strings.Repeat("#", world.ChunkSize*cellWidth) {
		t.Errorf("top wall row = %q", got)
	}
	if got := canvas.cells[[2]int{world.Origin.X * cellWidth, mapTop + world.Origin.Y}]; got != '@' {
		t.Errorf("marker = %q, want '@'", got)
	}
	// (3,1) is floor in the fallback checkerboard.
	if got := canvas.cells[[2]int{3 * cellWidth, mapTop + 1}]; got != '.' {
		t.Errorf("floor glyph = %q, want '.'", got)
	}
	statusRow := mapTop + world.ChunkSize + 1
	if got := canvas.row(statusRow, 5); got != "ready" {
		t.Errorf("status = %q, want ready", got)
	}
}

func TestRenderNeighbourhood(t *testing.T) {
	canvas := newFakeCanvas()
	r := NewRenderer(canvas, tileset.MustLoadRegistry())

	east := client.Entry{X: 1, Y: 0, Tiles: make([]world.Tile, world.ChunkSize*world.ChunkSize)}
	far := client.Entry{X: 3, Y: 0, Tiles: client.Fallback()}
	r.Render(View{X: 0, Y: 0, Radius: 1, Chunks: []client.Entry{east, far}, Loading: true})

	// East neighbour occupies the third block of columns in the middle band.
	left := 2 * world.ChunkSize * cellWidth
	top := mapTop + world.ChunkSize
	if got := canvas.cells[[2]int{left, top}]; got != '.' {
		t.Errorf("east neighbour first tile = %q, want '.'", got)
	}
	if _, ok := canvas.cells[[2]int{3 * world.ChunkSize * cellWidth, top}]; ok {
		t.Error("chunk outside the radius was drawn")
	}
	statusRow := mapTop + 3*world.ChunkSize + 1
	if got := canvas.row(statusRow, 10); got != "loading..." {
		t.Errorf("status = %q, want loading...", got)
	}
}
