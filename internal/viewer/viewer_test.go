package viewer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/client"
	"github.com/samdwyer/labyrinth/internal/ui"
	"github.com/samdwyer/labyrinth/internal/world"
)

type fakeEvents struct {
	queue  []tcell.Event
	synced int
	closed bool
}

func (f *fakeEvents) PollEvent() tcell.Event {
	if len(f.queue) == 0 {
		return nil
	}
	ev := f.queue[0]
	f.queue = f.queue[1:]
	return ev
}

func (f *fakeEvents) Sync()  { f.synced++ }
func (f *fakeEvents) Close() { f.closed = true }

// blockingEvents behaves like a real terminal: PollEvent waits until a
// key arrives or the source is closed.
type blockingEvents struct {
	polling chan struct{}
	done    chan struct{}
	closes  int
}

func newBlockingEvents() *blockingEvents {
	return &blockingEvents{polling: make(chan struct{}, 1), done: make(chan struct{})}
}

func (b *blockingEvents) PollEvent() tcell.Event {
	select {
	case b.polling <- struct{}{}:
	default:
	}
	<-b.done
	return nil
}

func (b *blockingEvents) Sync() {}

func (b *blockingEvents) Close() {
	b.closes++
	close(b.done)
}

type fakeDrawer struct {
	frames []ui.View
}

func (f *fakeDrawer) Render(v ui.View) {
	f.frames = append(f.frames, v)
}

func (f *fakeDrawer) last() ui.View {
	return f.frames[len(f.frames)-1]
}

var errDown = errors.New("server down")

// genFetcher serves chunks straight from a generator and fails while down is set.
type genFetcher struct {
	gen   *world.Generator
	down  bool
	calls int
}

func (g *genFetcher) FetchChunk(ctx context.Context, seed string, x, y int) ([]world.Tile, error) {
	g.calls++
	if g.down {
		return nil, errDown
	}
	return g.gen.Generate(ctx, seed, x, y).Flat(), nil
}

func newTestViewer(fetcher client.Fetcher, events EventSource) (*Viewer, *fakeDrawer) {
	drawer := &fakeDrawer{}
	loader := client.NewLoader(fetcher, client.NewCache(2), "semilla", 2, zap.NewNop())
	return New(events, drawer, loader, 2, zap.NewNop()), drawer
}

func TestRunLoadsNeighbourhoodAndStops(t *testing.T) {
	fetcher := &genFetcher{gen: world.NewGenerator(2)}
	events := &fakeEvents{}
	v, drawer := newTestViewer(fetcher, events)

	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !events.closed {
		t.Error("event source not closed on exit")
	}
	if fetcher.calls != 9 {
		t.Errorf("fetched %d chunks, want 9", fetcher.calls)
	}
	if v.State() != StateReady {
		t.Errorf("State() = %v, want ready", v.State())
	}
	frame := drawer.last()
	if frame.Seed != "semilla" || frame.X != 0 || frame.Y != 0 || len(frame.Chunks) != 9 {
		t.Errorf("unexpected frame %+v", frame)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	events := newBlockingEvents()
	v, _ := newTestViewer(&genFetcher{gen: world.NewGenerator(2)}, events)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- v.Run(ctx) }()

	select {
	case <-events.polling:
	case <-time.After(2 * time.Second):
		t.Fatal("viewer never waited for input")
	}
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run still waiting for input after cancellation")
	}
	if events.closes != 1 {
		t.Errorf("event source closed %d times, want 1", events.closes)
	}
}

func TestResizeSyncs(t *testing.T) {
	events := &fakeEvents{queue: []tcell.Event{tcell.NewEventResize(80, 24)}}
	v, _ := newTestViewer(&genFetcher{gen: world.NewGenerator(2)}, events)

	if err := v.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if events.synced != 1 {
		t.Errorf("Sync called %d times, want 1", events.synced)
	}
}

func TestMoveLoadsNewChunks(t *testing.T) {
	fetcher := &genFetcher{gen: world.NewGenerator(2)}
	v, drawer := newTestViewer(fetcher, &fakeEvents{})
	ctx := context.Background()
	v.refresh(ctx)

	v.apply(ctx, CmdRight)

	if got := v.Position(); got != (Position{X: 1, Y: 0}) {
		t.Errorf("Position() = %+v, want (1, 0)", got)
	}
	// Only the new column of three chunks is fetched.
	if fetcher.calls != 12 {
		t.Errorf("fetched %d chunks, want 12", fetcher.calls)
	}
	if !drawer.last().Loading {
		t.Error("move should draw a loading frame")
	}
}

func TestMoveClampedAtWorldEdge(t *testing.T) {
	v, _ := newTestViewer(&genFetcher{gen: world.NewGenerator(2)}, &fakeEvents{})
	ctx := context.Background()
	v.refresh(ctx)

	for i := 0; i < 5; i++ {
		v.apply(ctx, CmdUp)
	}

	if got := v.Position(); got != (Position{X: 0, Y: -2}) {
		t.Errorf("Position() = %+v, want (0, -2)", got)
	}
	if v.status != "edge of the world" {
		t.Errorf("status = %q, want edge message", v.status)
	}
	// Chunks beyond the extent are never requested.
	for _, e := range v.entries {
		if e.Y < -2 {
			t.Errorf("loaded out-of-world chunk (%d, %d)", e.X, e.Y)
		}
	}
}

func TestDegradedThenReload(t *testing.T) {
	fetcher := &genFetcher{gen: world.NewGenerator(2), down: true}
	v, _ := newTestViewer(fetcher, &fakeEvents{})
	ctx := context.Background()
	v.refresh(ctx)

	if v.State() != StateDegraded {
		t.Fatalf("State() = %v, want degraded", v.State())
	}
	if !strings.Contains(v.status, "fallback") {
		t.Errorf("status = %q, want fallback notice", v.status)
	}

	fetcher.down = false
	v.apply(ctx, CmdReload)

	if v.State() != StateReady {
		t.Errorf("State() after reload = %v, want ready", v.State())
	}
	for _, e := range v.entries {
		if e.Fallback {
			t.Errorf("chunk (%d, %d) still a fallback after reload", e.X, e.Y)
		}
	}
}

func TestQuitCommand(t *testing.T) {
	v, _ := newTestViewer(&genFetcher{gen: world.NewGenerator(2)}, &fakeEvents{})

	v.apply(context.Background(), CmdQuit)

	if v.running {
		t.Error("viewer still running after quit")
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateReady, "ready"},
		{StateDegraded, "degraded"},
		{State(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("State(%d).String() = %q, want %q", tt.state, got, tt.want)
		}
	}
}
