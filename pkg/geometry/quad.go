package geometry

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// Quad represents a parallelogram defined by a corner point and two edge vectors
type Quad struct {
	Corner   core.Vec3
	U        core.Vec3
	V        core.Vec3
	Normal   core.Vec3
	Material core.Material

	w core.Vec3 // Precomputed for point-in-quad tests
	d float64   // Plane constant
}

// NewQuad creates a new quad from a corner and two edge vectors
func NewQuad(corner, u, v core.Vec3, material core.Material) *Quad {
	n := u.Cross(v)
	normal := n.Normalize()
	return &Quad{
		Corner:   corner,
		U:        u,
		V:        v,
		Normal:   normal,
		Material: material,
		w:        n.Multiply(1.0 / n.Dot(n)),
		d:        normal.Dot(corner),
	}
}

// Intersect implements the core.Shape interface using plane intersection
// followed by a parametric inside test
func (q *Quad) Intersect(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	denom := q.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return nil, false // Ray parallel to the plane
	}

	t := (q.d - q.Normal.Dot(ray.Origin)) / denom
	if t < tMin || t >= tMax {
		return nil, false
	}

	point := ray.At(t)
	planar := point.Subtract(q.Corner)
	alpha := q.w.Dot(planar.Cross(q.V))
	beta := q.w.Dot(q.U.Cross(planar))

	if alpha < 0 || alpha > 1 || beta < 0 || beta > 1 {
		return nil, false
	}

	si := &core.SurfaceInteraction{
		T:        t,
		Point:    point,
		UV:       core.NewVec2(alpha, beta),
		Material: q.Material,
	}
	si.SetFaceNormal(ray, q.Normal)

	return si, true
}

// BoundingBox implements the core.Shape interface. The box is padded so
// axis-aligned quads do not degenerate to zero thickness.
func (q *Quad) BoundingBox() core.AABB {
	p0 := q.Corner
	p1 := q.Corner.Add(q.U)
	p2 := q.Corner.Add(q.V)
	p3 := q.Corner.Add(q.U).Add(q.V)
	return core.NewAABBFromPoints(p0, p1, p2, p3).Expand(1e-4)
}

// Area returns the surface area of the quad
func (q *Quad) Area() float64 {
	return q.U.Cross(q.V).Length()
}
