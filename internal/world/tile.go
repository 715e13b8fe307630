// Package world provides deterministic chunk generation.
package world

// Tile is the kind of a single chunk cell. The numeric values are the wire format.
type Tile int

const (
	// TileFloor is a walkable floor cell.
	TileFloor Tile = iota
	// TileWall is an impassable wall cell.
	TileWall
	// TileDoor connects a chunk to its neighbour. Decoration may also produce
	// this value; clients render both the same way.
	TileDoor
	// TileMoss is a walkable decoration.
	TileMoss
	// TileRelic is a walkable decoration.
	TileRelic
	// TileRubble is a walkable decoration.
	TileRubble

	tileCount
)

// Valid reports whether t is one of the defined tile kinds.
func (t Tile) Valid() bool {
	return t >= TileFloor && t < tileCount
}

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t.Valid() && t != TileWall
}

// String returns a human-readable tile name.
func (t Tile) String() string {
	switch t {
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TileDoor:
		return "door"
	case TileMoss:
		return "moss"
	case TileRelic:
		return "relic"
	case TileRubble:
		return "rubble"
	default:
		return "unknown"
	}
}
