package geometry

import (
	"math"

	"github.com/lumen-rt/lumen/pkg/core"
)

// Sphere represents a sphere defined by center and radius
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material core.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, material core.Material) *Sphere {
	return &Sphere{Center: center, Radius: radius, Material: material}
}

// Intersect implements the core.Shape interface using the quadratic formula
func (s *Sphere) Intersect(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	oc := ray.Origin.Subtract(s.Center)
	a := ray.Direction.LengthSquared()
	halfB := oc.Dot(ray.Direction)
	c := oc.LengthSquared() - s.Radius*s.Radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 {
		return nil, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Nearest root within the valid interval
	root := (-halfB - sqrtD) / a
	if root < tMin || root >= tMax {
		root = (-halfB + sqrtD) / a
		if root < tMin || root >= tMax {
			return nil, false
		}
	}

	si := &core.SurfaceInteraction{
		T:        root,
		Point:    ray.At(root),
		Material: s.Material,
	}
	outwardNormal := si.Point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	si.SetFaceNormal(ray, outwardNormal)
	si.UV = sphereUV(outwardNormal)

	return si, true
}

// BoundingBox implements the core.Shape interface
func (s *Sphere) BoundingBox() core.AABB {
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(r), s.Center.Add(r))
}

// Area returns the surface area of the sphere
func (s *Sphere) Area() float64 {
	return 4.0 * math.Pi * s.Radius * s.Radius
}

// sphereUV maps a point on the unit sphere to spherical UV coordinates
func sphereUV(p core.Vec3) core.Vec2 {
	theta := math.Acos(-p.Y)
	phi := math.Atan2(-p.Z, p.X) + math.Pi
	return core.NewVec2(phi/(2*math.Pi), theta/math.Pi)
}
