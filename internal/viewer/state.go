// Package viewer provides the interactive terminal chunk browser.
package viewer

// State summarises how the chunks on screen were obtained.
type State int

const (
	// StateReady means every visible chunk came from the server.
	StateReady State = iota
	// StateDegraded means at least one visible chunk is a local fallback.
	StateDegraded
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// Position is the chunk the viewer currently stands in. It lives with the
// viewer, never with the generator.
type Position struct {
	X, Y int
}

// Move updates the position by the given delta.
func (p *Position) Move(dx, dy int) {
	p.X += dx
	p.Y += dy
}
