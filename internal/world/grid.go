package world

// ChunkSize is the width and height of every chunk in tiles.
const ChunkSize = 10

// Grid is a chunk's tiles indexed as [y][x].
type Grid [ChunkSize][ChunkSize]Tile

// InBounds reports whether (x, y) lies inside the grid.
func InBounds(x, y int) bool {
	return x >= 0 && x < ChunkSize && y >= 0 && y < ChunkSize
}

// Get returns the tile at the given position. Positions outside the grid read as walls.
func (g *Grid) Get(x, y int) Tile {
	if !InBounds(x, y) {
		return TileWall
	}
	return g[y][x]
}

// Set writes the tile at p.
func (g *Grid) Set(p Point, t Tile) {
	g[p.Y][p.X] = t
}

// IsPassable returns true if the given position can be walked on.
func (g *Grid) IsPassable(x, y int) bool {
	return g.Get(x, y).IsPassable()
}

// Fill sets every cell to t.
func (g *Grid) Fill(t Tile) {
	for y := range g {
		for x := range g[y] {
			g[y][x] = t
		}
	}
}

// Reachable flood-fills from the start cell through passable tiles using
// 4-directional moves and returns the visited set. A start cell that is not
// passable yields an empty set.
func (g *Grid) Reachable(start Point) [ChunkSize][ChunkSize]bool {
	var seen [ChunkSize][ChunkSize]bool
	if !g.IsPassable(start.X, start.Y) {
		return seen
	}

	seen[start.Y][start.X] = true
	queue := []Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, s := range Sides {
			dx, dy := s.Delta()
			nx, ny := p.X+dx, p.Y+dy
			if !g.IsPassable(nx, ny) || seen[ny][nx] {
				continue
			}
			seen[ny][nx] = true
			queue = append(queue, Point{nx, ny})
		}
	}
	return seen
}

// Unreachable counts passable cells that cannot be reached from start.
func (g *Grid) Unreachable(start Point) int {
	seen := g.Reachable(start)
	count := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x].IsPassable() && !seen[y][x] {
				count++
			}
		}
	}
	return count
}

// Count returns how many cells hold t.
func (g *Grid) Count(t Tile) int {
	count := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] == t {
				count++
			}
		}
	}
	return count
}

// Flat returns the tiles in row-major order.
func (g *Grid) Flat() []Tile {
	flat := make([]Tile, 0, ChunkSize*ChunkSize)
	for y := range g {
		flat = append(flat, g[y][:]...)
	}
	return flat
}
