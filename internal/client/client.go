// Package client fetches chunks from a chunk server.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.uber.org/zap"

	"github.com/samdwyer/labyrinth/internal/telemetry"
	"github.com/samdwyer/labyrinth/internal/world"
)

var (
	// ErrBadStatus is returned when the server answers with a non-200 status.
	ErrBadStatus = errors.New("unexpected response status")
	// ErrMalformed is returned when a response body is not a valid chunk.
	ErrMalformed = errors.New("malformed chunk")
)

// Fetcher retrieves the tiles of one chunk.
type Fetcher interface {
	FetchChunk(ctx context.Context, seed string, x, y int) ([]world.Tile, error)
}

// Client talks to the chunk server over HTTP.
type Client struct {
	baseURL         string
	http            *http.Client
	timeout         time.Duration
	maxTries        uint
	initialInterval time.Duration
	log             *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithMaxTries limits the number of attempts per chunk.
func WithMaxTries(n uint) Option {
	return func(c *Client) { c.maxTries = n }
}

// WithInitialInterval sets the first retry delay.
func WithInitialInterval(d time.Duration) Option {
	return func(c *Client) { c.initialInterval = d }
}

// New creates a client for the server at baseURL. timeout bounds each
// FetchChunk call including retries.
func New(baseURL string, timeout time.Duration, log *zap.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:         strings.TrimRight(baseURL, "/"),
		http:            http.DefaultClient,
		timeout:         timeout,
		maxTries:        3,
		initialInterval: 200 * time.Millisecond,
		log:             log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chunkResponse mirrors the server's JSON body.
type chunkResponse struct {
	Chunk []world.Tile `json:"chunk"`
}

// FetchChunk downloads the chunk at (x, y). Server errors and transport
// failures are retried with exponential backoff; 4xx responses and malformed
// bodies are not.
func (c *Client) FetchChunk(ctx context.Context, seed string, x, y int) ([]world.Tile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tracer := telemetry.Tracer("client")
	ctx, span := tracer.Start(ctx, "chunk.fetch")
	defer span.End()
	span.SetAttributes(
		attribute.String("chunk.seed", seed),
		attribute.Int("chunk.x", x),
		attribute.Int("chunk.y", y),
	)

	endpoint := fmt.Sprintf("%s/chunk/%d/%d/%s", c.baseURL, x, y, url.PathEscape(seed))

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = c.initialInterval

	tries := 0
	tiles, err := backoff.Retry(ctx,
		func() ([]world.Tile, error) {
			tries++
			return c.fetchOnce(ctx, endpoint)
		},
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Debug("chunk fetch failed, retrying",
				zap.String("url", endpoint),
				zap.Duration("next", next),
				zap.Error(err),
			)
		}),
	)
	span.SetAttributes(attribute.Int("chunk.fetch_attempts", tries))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("fetch chunk (%d,%d): %w", x, y, err)
	}
	return tiles, nil
}

func (c *Client) fetchOnce(ctx context.Context, endpoint string) ([]world.Tile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("%w: %s", ErrBadStatus, resp.Status)
	default:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrBadStatus, resp.Status))
	}

	var body chunkResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %v", ErrMalformed, err))
	}
	if err := validate(body.Chunk); err != nil {
		return nil, backoff.Permanent(err)
	}
	return body.Chunk, nil
}

func validate(tiles []world.Tile) error {
	if len(tiles) != world.ChunkSize*world.ChunkSize {
		return fmt.Errorf("%w: %d tiles, want %d", ErrMalformed, len(tiles), world.ChunkSize*world.ChunkSize)
	}
	for i, t := range tiles {
		if !t.Valid() {
			return fmt.Errorf("%w: tile %d has value %d", ErrMalformed, i, t)
		}
	}
	return nil
}

// Fallback returns the stand-in chunk used when a fetch fails: walls around
// the border and a checkerboard inside.
func Fallback() []world.Tile {
	tiles := make([]world.Tile, world.ChunkSize*world.ChunkSize)
	for i := range tiles {
		x, y := i%world.ChunkSize, i/world.ChunkSize
		switch {
		case x == 0 || y == 0 || x == world.ChunkSize-1 || y == world.ChunkSize-1:
			tiles[i] = world.TileWall
		case (x+y)%2 == 0:
			tiles[i] = world.TileFloor
		default:
			tiles[i] = world.TileWall
		}
	}
	return tiles
}
