package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that unions correctly with any other box
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box = box.ExtendPoint(p)
	}
	return box
}

// Axis returns the min/max extent of the box along the given axis (0=X, 1=Y, 2=Z)
func (aabb AABB) Axis(axis int) (float64, float64) {
	switch axis {
	case 0:
		return aabb.Min.X, aabb.Max.X
	case 1:
		return aabb.Min.Y, aabb.Max.Y
	default:
		return aabb.Min.Z, aabb.Max.Z
	}
}

// Hit tests if a ray intersects this AABB within [tMin, tMax] using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		boxMin, boxMax := aabb.Axis(axis)

		var origin, direction float64
		switch axis {
		case 0:
			origin, direction = ray.Origin.X, ray.Direction.X
		case 1:
			origin, direction = ray.Origin.Y, ray.Direction.Y
		case 2:
			origin, direction = ray.Origin.Z, ray.Direction.Z
		}

		// Parallel ray: inside the slab or not at all
		if math.Abs(direction) < 1e-12 {
			if origin < boxMin || origin > boxMax {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (boxMin - origin) * invDirection
		t2 := (boxMax - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, other.Min.X),
			Y: math.Min(aabb.Min.Y, other.Min.Y),
			Z: math.Min(aabb.Min.Z, other.Min.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, other.Max.X),
			Y: math.Max(aabb.Max.Y, other.Max.Y),
			Z: math.Max(aabb.Max.Z, other.Max.Z),
		},
	}
}

// ExtendPoint returns an AABB grown to contain the given point
func (aabb AABB) ExtendPoint(p Vec3) AABB {
	return AABB{
		Min: Vec3{
			X: math.Min(aabb.Min.X, p.X),
			Y: math.Min(aabb.Min.Y, p.Y),
			Z: math.Min(aabb.Min.Z, p.Z),
		},
		Max: Vec3{
			X: math.Max(aabb.Max.X, p.X),
			Y: math.Max(aabb.Max.Y, p.Y),
			Z: math.Max(aabb.Max.Z, p.Z),
		},
	}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	size := aabb.Size()
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return 0
	}
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Expand returns an AABB grown by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	e := NewVec3(amount, amount, amount)
	return AABB{Min: aabb.Min.Subtract(e), Max: aabb.Max.Add(e)}
}
