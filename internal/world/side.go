package world

// Point is a cell position inside a chunk. X is the column, Y the row.
type Point struct {
	X, Y int
}

// Side identifies one edge of a chunk.
type Side int

const (
	North Side = iota
	South
	West
	East
)

// Sides lists every side in the canonical carving order.
var Sides = [...]Side{North, South, West, East}

// String returns the side name.
func (s Side) String() string {
	switch s {
	case North:
		return "north"
	case South:
		return "south"
	case West:
		return "west"
	case East:
		return "east"
	default:
		return "unknown"
	}
}

// Delta returns the unit step toward the side. North is toward smaller y.
func (s Side) Delta() (dx, dy int) {
	switch s {
	case North:
		return 0, -1
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 1, 0
	}
}

// Door returns the edge-midpoint cell where a doorway on this side sits.
func (s Side) Door() Point {
	const mid = ChunkSize / 2
	switch s {
	case North:
		return Point{mid, 0}
	case South:
		return Point{mid, ChunkSize - 1}
	case West:
		return Point{0, mid}
	default:
		return Point{ChunkSize - 1, mid}
	}
}

// Inward returns the cell one step from the doorway toward the chunk centre.
func (s Side) Inward() Point {
	dx, dy := s.Delta()
	door := s.Door()
	return Point{door.X - dx, door.Y - dy}
}

// Edge returns the i-th cell along the side's outer row or column.
func (s Side) Edge(i int) Point {
	switch s {
	case North:
		return Point{i, 0}
	case South:
		return Point{i, ChunkSize - 1}
	case West:
		return Point{0, i}
	default:
		return Point{ChunkSize - 1, i}
	}
}
