package renderer

import (
	"image"
	"image/color"
	"sync"

	"github.com/lumen-rt/lumen/pkg/core"
)

// Film accumulates radiance samples per pixel. The final value of a
// pixel is the running sum divided by the sample count, so accumulation
// is commutative and the image is independent of tile completion order.
type Film struct {
	width, height int

	mu       sync.Mutex
	colorSum []core.Vec3
	count    []int
}

// NewFilm creates a film covering a width x height image
func NewFilm(width, height int) *Film {
	return &Film{
		width:    width,
		height:   height,
		colorSum: make([]core.Vec3, width*height),
		count:    make([]int, width*height),
	}
}

// Width returns the image width in pixels
func (f *Film) Width() int { return f.width }

// Height returns the image height in pixels
func (f *Film) Height() int { return f.height }

// AddSample accumulates a single radiance sample into a pixel
func (f *Film) AddSample(x, y int, value core.Vec3) {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return
	}
	f.mu.Lock()
	idx := y*f.width + x
	f.colorSum[idx] = f.colorSum[idx].Add(value)
	f.count[idx]++
	f.mu.Unlock()
}

// MergeTile folds a completed tile buffer into the film under a single
// lock acquisition. Tiles never overlap, so merges touch disjoint pixels.
func (f *Film) MergeTile(tile *TileBuffer) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bounds := tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			src := tile.index(x, y)
			dst := y*f.width + x
			f.colorSum[dst] = f.colorSum[dst].Add(tile.colorSum[src])
			f.count[dst] += tile.count[src]
		}
	}
}

// Pixel returns the averaged radiance of a pixel
func (f *Film) Pixel(x, y int) core.Vec3 {
	idx := y*f.width + x
	if f.count[idx] == 0 {
		return core.Vec3{}
	}
	return f.colorSum[idx].Multiply(1.0 / float64(f.count[idx]))
}

// SampleCount returns the number of samples accumulated into a pixel
func (f *Film) SampleCount(x, y int) int {
	return f.count[y*f.width+x]
}

// Image converts the film into an 8-bit RGBA image with gamma correction
func (f *Film) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(f.Pixel(x, y)))
		}
	}
	return img
}

// vec3ToColor converts linear radiance to an 8-bit color with gamma 2.0
func vec3ToColor(v core.Vec3) color.RGBA {
	v = v.GammaCorrect(2.0).Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * v.X),
		G: uint8(255 * v.Y),
		B: uint8(255 * v.Z),
		A: 255,
	}
}

// TileBuffer is a tile-local accumulation buffer. Workers write samples
// here without synchronization and merge the finished tile into the film.
// Its backing storage comes from the worker's arena.
type TileBuffer struct {
	Bounds image.Rectangle

	colorSum []core.Vec3
	count    []int
}

// NewTileBuffer allocates a buffer for the given bounds from the arena
func NewTileBuffer(bounds image.Rectangle, arena *Arena) *TileBuffer {
	n := bounds.Dx() * bounds.Dy()
	return &TileBuffer{
		Bounds:   bounds,
		colorSum: arena.AllocVec3(n),
		count:    arena.AllocInt(n),
	}
}

// AddSample accumulates a radiance sample into the tile-local buffer
func (t *TileBuffer) AddSample(x, y int, value core.Vec3) {
	idx := t.index(x, y)
	t.colorSum[idx] = t.colorSum[idx].Add(value)
	t.count[idx]++
}

func (t *TileBuffer) index(x, y int) int {
	return (y-t.Bounds.Min.Y)*t.Bounds.Dx() + (x - t.Bounds.Min.X)
}
