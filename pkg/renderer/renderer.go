package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/integrator"
	"github.com/lumen-rt/lumen/pkg/log"
	"github.com/lumen-rt/lumen/pkg/scene"
)

var (
	// ErrInvalidDimensions is returned when the image width or height is not positive
	ErrInvalidDimensions = errors.New("renderer: image dimensions must be positive")

	// ErrInvalidSampleCount is returned when samples per pixel is not positive
	ErrInvalidSampleCount = errors.New("renderer: samples per pixel must be positive")

	// ErrInvalidTileSize is returned when the tile size is not positive
	ErrInvalidTileSize = errors.New("renderer: tile size must be positive")

	// ErrInvalidDepth is returned when an integrator depth is negative.
	// Zero is valid: a max depth of 0 renders camera-visible emission only.
	ErrInvalidDepth = errors.New("renderer: path depths must be non-negative")

	// ErrSceneNotBuilt is returned when rendering is attempted before Scene.Build
	ErrSceneNotBuilt = errors.New("renderer: scene must be built before rendering")
)

// Default knobs; chosen so a plain Config{Width, Height} renders something sensible
const (
	DefaultSamplesPerPixel = 64
	DefaultTileSize        = 32
)

// stratifiedDims is the number of precomputed stratified dimensions per
// pixel sample: pixel jitter, lens, light selection, BSDF sampling
const stratifiedDims = 4

// Config controls a render job
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int

	// TileSize is the side length of a render tile in pixels
	TileSize int

	// Workers is the number of render goroutines; 0 means NumCPU
	Workers int

	// Seed is the base seed for per-tile sample streams. The same seed
	// produces the same image regardless of worker count.
	Seed int64

	Integrator integrator.Config
}

// DefaultConfig returns a config with sensible defaults for the given image size
func DefaultConfig(width, height int) Config {
	return Config{
		Width:           width,
		Height:          height,
		SamplesPerPixel: DefaultSamplesPerPixel,
		TileSize:        DefaultTileSize,
		Integrator:      integrator.DefaultConfig(),
	}
}

// Validate checks the config for invalid values
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidSampleCount, c.SamplesPerPixel)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTileSize, c.TileSize)
	}
	if c.Integrator.MaxDepth < 0 || c.Integrator.RussianRouletteDepth < 0 {
		return fmt.Errorf("%w: got max depth %d, roulette depth %d",
			ErrInvalidDepth, c.Integrator.MaxDepth, c.Integrator.RussianRouletteDepth)
	}
	return nil
}

func (c Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// Renderer drives a render: it splits the image into tiles, hands them to
// a pool of workers, and merges finished tiles into the film
type Renderer struct {
	config Config
	scene  *scene.Scene
	tracer *integrator.PathTracer
	logger log.Logger
}

// New creates a renderer for the scene. The config is validated eagerly
// so a bad config fails before any work starts.
func New(config Config, sc *scene.Scene) (*Renderer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{
		config: config,
		scene:  sc,
		tracer: integrator.NewPathTracer(config.Integrator),
		logger: log.New("renderer"),
	}, nil
}

// Render traces the full image and returns the film with accumulated
// radiance. Cancelling the context stops the render between tiles; the
// film then holds whatever tiles completed, and ctx.Err() is returned.
func (r *Renderer) Render(ctx context.Context) (*Film, RenderStats, error) {
	cfg := r.config
	stats := RenderStats{
		Width:           cfg.Width,
		Height:          cfg.Height,
		SamplesPerPixel: cfg.SamplesPerPixel,
		Workers:         cfg.workers(),
	}

	if r.scene.LightSampler() == nil {
		return nil, stats, ErrSceneNotBuilt
	}

	film := NewFilm(cfg.Width, cfg.Height)
	tiles := NewTileGrid(cfg.Width, cfg.Height, cfg.TileSize, cfg.Seed)
	stats.TotalTiles = len(tiles)

	tileCh := make(chan Tile, len(tiles))
	for _, t := range tiles {
		tileCh <- t
	}
	close(tileCh)

	var completed atomic.Uint64
	var overflows atomic.Uint64

	r.logger.Infof("rendering %dx%d, %d spp, %d tiles, %d workers",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, len(tiles), stats.Workers)

	start := time.Now()
	var wg sync.WaitGroup
	for w := 0; w < stats.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.renderWorker(ctx, tileCh, film, &completed, &overflows)
		}()
	}
	wg.Wait()

	stats.Elapsed = time.Since(start)
	stats.CompletedTiles = int(completed.Load())
	stats.TotalSamples = uint64(stats.CompletedTiles) * tileSampleCount(tiles, cfg.SamplesPerPixel)
	stats.DiscardedSamples = r.tracer.DiscardedSamples()
	stats.ArenaOverflows = overflows.Load()

	if err := ctx.Err(); err != nil {
		r.logger.Warningf("render cancelled after %d/%d tiles", stats.CompletedTiles, stats.TotalTiles)
		return film, stats, err
	}

	r.logger.Infof("render finished in %s (%.0f samples/sec, %d discarded)",
		stats.Elapsed.Round(time.Millisecond), stats.SamplesPerSecond(), stats.DiscardedSamples)
	return film, stats, nil
}

// tileSampleCount approximates samples per completed tile; exact only
// when all tiles are full-size, which is fine for throughput reporting
func tileSampleCount(tiles []Tile, spp int) uint64 {
	if len(tiles) == 0 {
		return 0
	}
	b := tiles[0].Bounds
	return uint64(b.Dx() * b.Dy() * spp)
}

// renderWorker claims tiles until the channel drains or the context is
// cancelled. Cancellation is only observed between tiles; a claimed tile
// always finishes so the film never holds a partial tile.
func (r *Renderer) renderWorker(ctx context.Context, tileCh <-chan Tile, film *Film, completed, overflows *atomic.Uint64) {
	cfg := r.config
	arena := NewArena(cfg.TileSize*cfg.TileSize, cfg.TileSize*cfg.TileSize)

	for tile := range tileCh {
		if ctx.Err() != nil {
			return
		}

		arena.Reset()
		buf := NewTileBuffer(tile.Bounds, arena)
		r.renderTile(tile, buf)
		film.MergeTile(buf)
		completed.Add(1)

		if arena.Overflowed() {
			overflows.Add(1)
			r.logger.Warningf("tile %v exceeded arena capacity, fell back to heap", tile.Bounds)
		}
	}
}

// renderTile traces every sample of one tile into the tile-local buffer.
// The RNG is seeded from the tile alone, so the result does not depend on
// which worker runs it.
func (r *Renderer) renderTile(tile Tile, buf *TileBuffer) {
	cfg := r.config
	random := rand.New(rand.NewSource(tile.Seed))
	camera := r.scene.Camera()

	// Stratify when spp is a perfect square; otherwise the strata grid
	// cannot cover the sample count and plain uniform sampling is used
	var stratified *core.StratifiedSampler
	if side := int(math.Sqrt(float64(cfg.SamplesPerPixel))); side*side == cfg.SamplesPerPixel {
		stratified = core.NewStratifiedSampler(side, side, stratifiedDims, random)
	}
	uniform := core.NewRandomSampler(random)

	for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
		for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
			if stratified != nil {
				stratified.StartPixel()
				for stratified.StartSample() {
					buf.AddSample(x, y, r.tracePixel(camera, x, y, stratified))
				}
			} else {
				for s := 0; s < cfg.SamplesPerPixel; s++ {
					buf.AddSample(x, y, r.tracePixel(camera, x, y, uniform))
				}
			}
		}
	}
}

func (r *Renderer) tracePixel(camera scene.Camera, x, y int, sampler core.Sampler) core.Vec3 {
	ray := camera.GenerateRay(x, y, sampler.Get2D(), sampler.Get2D())
	return r.tracer.Li(ray, r.scene, sampler)
}
