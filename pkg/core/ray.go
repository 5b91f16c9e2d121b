package core

import "math"

// Epsilon is the default minimum ray parameter, used to offset secondary
// rays away from the surface that spawned them
const Epsilon = 1e-4

// ShadowEpsilon scales back the far bound of occlusion rays so the
// sampled light surface is never reported as its own blocker
const ShadowEpsilon = 1e-3

// Ray represents a ray with an origin, direction and valid parametric
// interval [TMin, TMax). Rays are immutable once constructed; each bounce
// derives a fresh ray from the previous hit point.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a ray with the default interval [Epsilon, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: Epsilon, TMax: math.Inf(1)}
}

// NewBoundedRay creates a ray with an explicit parametric interval
func NewBoundedRay(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// SpawnRay derives a secondary ray starting at point, offset along the
// geometric normal to avoid immediate self-intersection
func SpawnRay(point, normal, direction Vec3) Ray {
	offset := normal
	if direction.Dot(normal) < 0 {
		offset = normal.Negate()
	}
	return NewRay(point.Add(offset.Multiply(Epsilon)), direction)
}

// SpawnShadowRay derives an occlusion ray from point toward a light
// sample at the given distance. The far bound is trimmed in proportion
// to the distance rather than by an absolute offset: shifting the origin
// sideways moves the light surface inside an absolute bound for grazing
// directions, falsely occluding the light with its own geometry.
func SpawnShadowRay(point, direction Vec3, distance float64) Ray {
	return NewBoundedRay(point, direction, Epsilon, distance*(1.0-ShadowEpsilon))
}
