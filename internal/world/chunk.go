package world

import (
	"context"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/labyrinth/internal/rng"
	"github.com/samdwyer/labyrinth/internal/telemetry"
)

const (
	// DefaultExtent is the largest |x| or |y| chunk coordinate of a default world.
	DefaultExtent = 4

	decorationChance = 0.1
	decorationKinds  = 4 // TileDoor through TileRubble
)

// Origin is the cell the carver starts from. It is always walkable.
var Origin = Point{1, 1}

// Chunk is one generated N x N room of the world.
type Chunk struct {
	X, Y  int
	Seed  string // per-chunk seed the tiles were derived from
	Tiles Grid
}

// Flat returns the chunk tiles in row-major order, the wire representation.
func (c *Chunk) Flat() []Tile {
	return c.Tiles.Flat()
}

// ChunkSeed derives the seed string of the chunk at (x, y).
func ChunkSeed(seed string, x, y int) string {
	return seed + "-" + strconv.Itoa(x) + "-" + strconv.Itoa(y)
}

// Generator builds chunks for a world spanning [-extent, extent] on both axes.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	extent int
}

// NewGenerator creates a generator for the given world extent.
func NewGenerator(extent int) *Generator {
	return &Generator{extent: extent}
}

// Extent returns the world extent.
func (g *Generator) Extent() int {
	return g.extent
}

// OnBoundary reports whether the chunk at (x, y) sits on the world edge at side s.
// Chunks beyond the extent are never on a boundary.
func (g *Generator) OnBoundary(x, y int, s Side) bool {
	switch s {
	case North:
		return y == -g.extent
	case South:
		return y == g.extent
	case West:
		return x == -g.extent
	default:
		return x == g.extent
	}
}

// HasNeighbor reports whether the chunk at (x, y) gets a doorway on side s.
func (g *Generator) HasNeighbor(x, y int, s Side) bool {
	switch s {
	case North:
		return y > -g.extent
	case South:
		return y < g.extent
	case West:
		return x > -g.extent
	default:
		return x < g.extent
	}
}

// Generate builds the chunk at (x, y) for the given world seed.
// The result depends only on the arguments and the generator's extent.
func (g *Generator) Generate(ctx context.Context, seed string, x, y int) *Chunk {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "chunk.generate")
	defer span.End()

	startTime := time.Now()

	b := g.layout(seed, x, y)
	decorated := b.decorate()

	span.SetAttributes(
		attribute.String("chunk.seed", b.chunk.Seed),
		attribute.Int("chunk.x", x),
		attribute.Int("chunk.y", y),
		attribute.Int("chunk.floor_count", b.chunk.Tiles.Count(TileFloor)),
		attribute.Int("chunk.decoration_count", decorated),
		attribute.Int64("chunk.generation_us", time.Since(startTime).Microseconds()),
	)

	return b.chunk
}

// layout runs every step up to, but not including, decoration.
func (g *Generator) layout(seed string, x, y int) *builder {
	b := g.newBuilder(seed, x, y)
	b.carve(Origin)
	b.prune()
	b.placeDoors()
	b.reinforce()
	return b
}

// builder carries the state of a single generation run.
type builder struct {
	gen   *Generator
	chunk *Chunk
	rng   *rng.Source

	// carvable area, inclusive
	minX, maxX, minY, maxY int
}

func (g *Generator) newBuilder(seed string, x, y int) *builder {
	chunkSeed := ChunkSeed(seed, x, y)
	b := &builder{
		gen:   g,
		chunk: &Chunk{X: x, Y: y, Seed: chunkSeed},
		rng:   rng.New(chunkSeed),
		minX:  0,
		maxX:  ChunkSize - 1,
		minY:  0,
		maxY:  ChunkSize - 1,
	}
	b.chunk.Tiles.Fill(TileWall)

	// Edges that reinforcement will seal are kept out of the maze so that
	// walling them off cannot cut a corridor.
	if g.OnBoundary(x, y, West) {
		b.minX = 1
	}
	if g.OnBoundary(x, y, East) {
		b.maxX = ChunkSize - 2
	}
	if g.OnBoundary(x, y, North) {
		b.minY = 1
	}
	if g.OnBoundary(x, y, South) {
		b.maxY = ChunkSize - 2
	}
	return b
}

func (b *builder) carvable(x, y int) bool {
	return x >= b.minX && x <= b.maxX && y >= b.minY && y <= b.maxY
}

// carve runs a randomized depth-first search from p, stepping two cells at a
// time and opening the wall between. Recursion depth is bounded by the
// number of odd cells, 25 for a 10x10 chunk.
func (b *builder) carve(p Point) {
	tiles := &b.chunk.Tiles
	tiles.Set(p, TileFloor)

	dirs := Sides
	b.rng.Shuffle(len(dirs), func(i, j int) {
		dirs[i], dirs[j] = dirs[j], dirs[i]
	})

	for _, s := range dirs {
		dx, dy := s.Delta()
		next := Point{p.X + 2*dx, p.Y + 2*dy}
		if !b.carvable(next.X, next.Y) || tiles.Get(next.X, next.Y) != TileWall {
			continue
		}
		tiles.Set(Point{p.X + dx, p.Y + dy}, TileFloor)
		b.carve(next)
	}
}

// prune walls off every floor cell that cannot be reached from the origin.
func (b *builder) prune() {
	tiles := &b.chunk.Tiles
	seen := tiles.Reachable(Origin)
	for y := range tiles {
		for x := range tiles[y] {
			if tiles[y][x] == TileFloor && !seen[y][x] {
				tiles[y][x] = TileWall
			}
		}
	}
}

// placeDoors opens a doorway on every side that has a neighbouring chunk and
// clears the cell behind it.
func (b *builder) placeDoors() {
	for _, s := range Sides {
		if !b.gen.HasNeighbor(b.chunk.X, b.chunk.Y, s) {
			continue
		}
		b.chunk.Tiles.Set(s.Door(), TileDoor)
		b.chunk.Tiles.Set(s.Inward(), TileFloor)
	}
}

// reinforce walls the full edge of every side on the world boundary.
func (b *builder) reinforce() {
	for _, s := range Sides {
		if !b.gen.OnBoundary(b.chunk.X, b.chunk.Y, s) {
			continue
		}
		for i := 0; i < ChunkSize; i++ {
			b.chunk.Tiles.Set(s.Edge(i), TileWall)
		}
	}
}

// decorate replaces a few floor cells with decoration tiles, visiting cells
// in row-major order. It returns the number of cells changed.
func (b *builder) decorate() int {
	tiles := &b.chunk.Tiles
	changed := 0
	for y := range tiles {
		for x := range tiles[y] {
			if tiles[y][x] != TileFloor || b.rng.Float64() >= decorationChance {
				continue
			}
			tiles[y][x] = TileDoor + Tile(b.rng.Intn(decorationKinds))
			changed++
		}
	}
	return changed
}
