package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/labyrinth/internal/client"
	"github.com/samdwyer/labyrinth/internal/tileset"
	"github.com/samdwyer/labyrinth/internal/world"
)

// Canvas is the drawing surface the renderer needs. *Screen implements it.
type Canvas interface {
	Clear()
	Show()
	SetContent(x, y int, r rune, style tcell.Style)
}

const (
	cellWidth = 2 // terminal columns per tile, keeps chunks roughly square
	headerRow = 0
	mapTop    = 2
)

// View is everything drawn in one frame.
type View struct {
	Seed    string
	X, Y    int            // chunk the viewer stands in
	Radius  int            // neighbouring chunks drawn around it
	Chunks  []client.Entry // chunks to draw, keyed by their own coordinates
	Status  string
	Loading bool
}

// Renderer handles drawing chunks to a canvas.
type Renderer struct {
	canvas Canvas
	tiles  *tileset.Registry
}

// NewRenderer creates a new renderer for the given canvas and tile legend.
func NewRenderer(canvas Canvas, tiles *tileset.Registry) *Renderer {
	return &Renderer{canvas: canvas, tiles: tiles}
}

// Render draws the neighbourhood of the current chunk, a header with the
// coordinates and a status line.
func (r *Renderer) Render(v View) {
	r.canvas.Clear()

	r.drawText(0, headerRow, fmt.Sprintf("Chunk (%d, %d)  seed %q", v.X, v.Y, v.Seed), tcell.StyleDefault.Bold(true))

	span := 2*v.Radius + 1
	for _, e := range v.Chunks {
		col, row := e.X-v.X+v.Radius, e.Y-v.Y+v.Radius
		if col < 0 || row < 0 || col >= span || row >= span {
			continue
		}
		r.drawChunk(col*world.ChunkSize*cellWidth, mapTop+row*world.ChunkSize, e, e.X == v.X && e.Y == v.Y)
	}

	statusRow := mapTop + span*world.ChunkSize + 1
	status := v.Status
	if v.Loading {
		status = "loading..."
	}
	r.drawText(0, statusRow, status, tcell.StyleDefault.Foreground(tcell.ColorYellow))
	r.drawText(0, statusRow+1, "arrows: move  r: reload  q: quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.canvas.Show()
}

func (r *Renderer) drawChunk(left, top int, e client.Entry, current bool) {
	for i, t := range e.Tiles {
		x, y := i%world.ChunkSize, i/world.ChunkSize
		glyph, style := r.tiles.Style(t)
		if e.Fallback {
			style = style.Dim(true)
		}
		if current && x == world.Origin.X && y == world.Origin.Y {
			glyph, style = '@', style.Foreground(tcell.ColorWhite).Bold(true)
		}
		r.canvas.SetContent(left+x*cellWidth, top+y, glyph, style)
		fill := ' '
		if t == world.TileWall {
			fill = glyph
		}
		r.canvas.SetContent(left+x*cellWidth+1, top+y, fill, style)
	}
}

// drawText writes msg starting at (x, y).
func (r *Renderer) drawText(x, y int, msg string, style tcell.Style) {
	for i, ch := range []rune(msg) {
		r.canvas.SetContent(x+i, y, ch, style)
	}
}
