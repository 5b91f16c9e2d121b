package integrator

import (
	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Li estimates the radiance arriving along the ray
	Li(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3
}

// Default termination parameters; the roulette start depth follows the
// usual 3-5 range
const (
	DefaultMaxDepth             = 16
	DefaultRussianRouletteDepth = 4
)

// Config contains the integrator's termination parameters
type Config struct {
	MaxDepth             int // Hard bounce limit
	RussianRouletteDepth int // Bounce after which stochastic termination starts
}

// DefaultConfig returns the standard termination parameters
func DefaultConfig() Config {
	return Config{
		MaxDepth:             DefaultMaxDepth,
		RussianRouletteDepth: DefaultRussianRouletteDepth,
	}
}
