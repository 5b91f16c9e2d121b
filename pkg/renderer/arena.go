package renderer

import (
	"github.com/lumen-rt/lumen/pkg/core"
)

// Arena is a bump allocator for per-tile scratch buffers. Each worker
// owns one arena and resets it between tiles, bounding peak memory and
// keeping allocation off the render hot path.
//
// When a request exceeds the remaining capacity the arena falls back to
// a plain heap allocation for that request and records the overflow so
// the worker can log a performance warning. Overflow is a slow path,
// never an error.
type Arena struct {
	vec3Buf  []core.Vec3
	vec3Used int

	intBuf  []int
	intUsed int

	overflowed bool
}

// NewArena creates an arena able to hold the given number of Vec3 and
// int scratch entries before falling back to heap allocation
func NewArena(vec3Capacity, intCapacity int) *Arena {
	return &Arena{
		vec3Buf: make([]core.Vec3, vec3Capacity),
		intBuf:  make([]int, intCapacity),
	}
}

// AllocVec3 returns a zeroed scratch slice of n Vec3 values
func (a *Arena) AllocVec3(n int) []core.Vec3 {
	if a.vec3Used+n > len(a.vec3Buf) {
		a.overflowed = true
		return make([]core.Vec3, n)
	}
	out := a.vec3Buf[a.vec3Used : a.vec3Used+n : a.vec3Used+n]
	a.vec3Used += n
	for i := range out {
		out[i] = core.Vec3{}
	}
	return out
}

// AllocInt returns a zeroed scratch slice of n ints
func (a *Arena) AllocInt(n int) []int {
	if a.intUsed+n > len(a.intBuf) {
		a.overflowed = true
		return make([]int, n)
	}
	out := a.intBuf[a.intUsed : a.intUsed+n : a.intUsed+n]
	a.intUsed += n
	for i := range out {
		out[i] = 0
	}
	return out
}

// Overflowed reports whether any allocation since the last Reset fell
// back to the heap
func (a *Arena) Overflowed() bool {
	return a.overflowed
}

// Reset makes the arena's full capacity available again. Previously
// returned slices must not be used after Reset.
func (a *Arena) Reset() {
	a.vec3Used = 0
	a.intUsed = 0
	a.overflowed = false
}
