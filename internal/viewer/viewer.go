package viewer

import (
	"context"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/client"
	"github.com/samdwyer/labyrinth/internal/telemetry"
	"github.com/samdwyer/labyrinth/internal/ui"
)

// EventSource delivers terminal events. *ui.Screen implements it.
// After Close, PollEvent must return nil.
type EventSource interface {
	PollEvent() tcell.Event
	Sync()
	Close()
}

// Drawer draws a frame. *ui.Renderer implements it.
type Drawer interface {
	Render(v ui.View)
}

// Command is a user action decoded from a key press.
type Command int

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdReload
	CmdQuit
)

// neighbourRadius is how many chunks are drawn around the current one.
const neighbourRadius = 1

// Viewer holds the browser state.
type Viewer struct {
	events   EventSource
	renderer Drawer
	loader   *client.Loader
	extent   int
	log      *zap.Logger

	pos     Position
	entries []client.Entry
	state   State
	status  string
	running bool
}

// New creates a viewer starting at chunk (0, 0).
func New(events EventSource, renderer Drawer, loader *client.Loader, extent int, log *zap.Logger) *Viewer {
	return &Viewer{
		events:   events,
		renderer: renderer,
		loader:   loader,
		extent:   extent,
		log:      log,
		running:  true,
	}
}

// Run executes the main loop until the user quits or ctx is cancelled.
// Cancelling ctx closes the event source, which unblocks a pending PollEvent.
func (v *Viewer) Run(ctx context.Context) error {
	var closeOnce sync.Once
	closeEvents := func() { closeOnce.Do(v.events.Close) }
	stop := context.AfterFunc(ctx, closeEvents)
	defer stop()

	tracer := telemetry.Tracer("viewer")

	initCtx, initSpan := tracer.Start(ctx, "viewer.init")
	v.refresh(initCtx)
	initSpan.SetAttributes(
		attribute.String("world.seed", v.loader.Seed()),
		attribute.Int("world.extent", v.extent),
		attribute.String("viewer.state", v.state.String()),
	)
	initSpan.End()

	for v.running && ctx.Err() == nil {
		v.render(false)
		v.handleInput(ctx)
	}

	closeEvents()
	return nil
}

// Position returns the current chunk coordinates.
func (v *Viewer) Position() Position {
	return v.pos
}

// State returns the state of the last load.
func (v *Viewer) State() State {
	return v.state
}

func (v *Viewer) render(loading bool) {
	v.renderer.Render(ui.View{
		Seed:    v.loader.Seed(),
		X:       v.pos.X,
		Y:       v.pos.Y,
		Radius:  neighbourRadius,
		Chunks:  v.entries,
		Status:  v.status,
		Loading: loading,
	})
}

// handleInput processes a single input event.
func (v *Viewer) handleInput(ctx context.Context) {
	switch ev := v.events.PollEvent().(type) {
	case *tcell.EventKey:
		v.apply(ctx, commandFor(ev))
	case *tcell.EventResize:
		v.events.Sync()
	case nil:
		// The screen was finalized.
		v.running = false
	}
}

// commandFor maps keyboard input to a command.
func commandFor(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyUp:
		return CmdUp
	case tcell.KeyDown:
		return CmdDown
	case tcell.KeyLeft:
		return CmdLeft
	case tcell.KeyRight:
		return CmdRight
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return CmdQuit
		case 'r', 'R':
			return CmdReload
		}
	}
	return CmdNone
}

// apply executes one command.
func (v *Viewer) apply(ctx context.Context, cmd Command) {
	switch cmd {
	case CmdQuit:
		v.running = false
	case CmdUp:
		v.tryMove(ctx, 0, -1)
	case CmdDown:
		v.tryMove(ctx, 0, 1)
	case CmdLeft:
		v.tryMove(ctx, -1, 0)
	case CmdRight:
		v.tryMove(ctx, 1, 0)
	case CmdReload:
		v.render(true)
		for _, e := range v.entries {
			if e.Fallback {
				v.loader.Reload(ctx, e.X, e.Y)
			}
		}
		v.refresh(ctx)
	}
}

// tryMove steps to a neighbouring chunk unless that would leave the world.
func (v *Viewer) tryMove(ctx context.Context, dx, dy int) {
	nx, ny := v.pos.X+dx, v.pos.Y+dy
	if !v.loader.InWorld(nx, ny) {
		v.status = "edge of the world"
		return
	}
	v.pos.Move(dx, dy)
	v.render(true)
	v.refresh(ctx)
}

// refresh loads the neighbourhood of the current chunk and updates the status.
func (v *Viewer) refresh(ctx context.Context) {
	v.entries = v.loader.LoadAround(ctx, v.pos.X, v.pos.Y, neighbourRadius)

	v.state = StateReady
	v.status = fmt.Sprintf("ready: %d chunks loaded", len(v.entries))
	for _, e := range v.entries {
		if e.Fallback {
			v.state = StateDegraded
			v.status = fmt.Sprintf("chunk (%d, %d) unavailable, showing fallback: %v", e.X, e.Y, e.Err)
			break
		}
	}
	v.log.Debug("view refreshed",
		zap.Int("x", v.pos.X),
		zap.Int("y", v.pos.Y),
		zap.Stringer("state", v.state),
	)
}
