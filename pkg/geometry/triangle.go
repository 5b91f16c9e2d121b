package geometry

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// Triangle represents a single triangle with vertices in counter-clockwise order
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   core.Material
}

// NewTriangle creates a new triangle
func NewTriangle(v0, v1, v2 core.Vec3, material core.Material) *Triangle {
	return &Triangle{V0: v0, V1: v1, V2: v2, Material: material}
}

// Intersect implements the core.Shape interface using the Möller-Trumbore algorithm
func (tr *Triangle) Intersect(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if math.Abs(a) < 1e-12 {
		return nil, false // Ray parallel to triangle plane
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(tr.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return nil, false
	}

	t := f * edge2.Dot(q)
	if t < tMin || t >= tMax {
		return nil, false
	}

	si := &core.SurfaceInteraction{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2(u, v),
		Material: tr.Material,
	}
	si.SetFaceNormal(ray, edge1.Cross(edge2).Normalize())

	return si, true
}

// BoundingBox implements the core.Shape interface
func (tr *Triangle) BoundingBox() core.AABB {
	return core.NewAABBFromPoints(tr.V0, tr.V1, tr.V2).Expand(1e-4)
}

// Area returns the surface area of the triangle
func (tr *Triangle) Area() float64 {
	edge1 := tr.V1.Subtract(tr.V0)
	edge2 := tr.V2.Subtract(tr.V0)
	return 0.5 * edge1.Cross(edge2).Length()
}
