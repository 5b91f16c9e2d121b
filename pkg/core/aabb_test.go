package core

import (
	"math"
	"testing"
)

func TestAABB_Hit(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name         string
		rayOrigin    Vec3
		rayDirection Vec3
		want         bool
	}{
		{"straight through", NewVec3(0, 0, 5), NewVec3(0, 0, -1), true},
		{"misses to the side", NewVec3(3, 0, 5), NewVec3(0, 0, -1), false},
		{"starts inside", NewVec3(0, 0, 0), NewVec3(1, 0, 0), true},
		{"points away", NewVec3(0, 0, 5), NewVec3(0, 0, 1), false},
		{"parallel outside a slab", NewVec3(0, 3, 5), NewVec3(0, 0, -1), false},
		{"diagonal corner hit", NewVec3(3, 3, 3), NewVec3(-1, -1, -1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := NewRay(tt.rayOrigin, tt.rayDirection)
			if got := box.Hit(ray, Epsilon, math.Inf(1)); got != tt.want {
				t.Errorf("expected hit=%t, got %t", tt.want, got)
			}
		})
	}
}

func TestAABB_Hit_RespectsInterval(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(-1, -1, 4), NewVec3(1, 1, 6))
	ray := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 1))

	if !box.Hit(ray, Epsilon, 10) {
		t.Error("expected hit within interval")
	}
	if box.Hit(ray, Epsilon, 3) {
		t.Error("box beyond tMax should not be hit")
	}
	if box.Hit(ray, 7, 10) {
		t.Error("box before tMin should not be hit")
	}
}

func TestEmptyAABB(t *testing.T) {
	empty := EmptyAABB()

	ray := NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0))
	if empty.Hit(ray, Epsilon, math.Inf(1)) {
		t.Error("empty box must not be hit")
	}
	if empty.SurfaceArea() != 0 {
		t.Errorf("empty box surface area should be 0, got %f", empty.SurfaceArea())
	}

	// Union with the empty box is the identity
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	union := empty.Union(box)
	if union.Min != box.Min || union.Max != box.Max {
		t.Errorf("union with empty box changed the bounds: %+v", union)
	}
}

func TestAABB_Union(t *testing.T) {
	a := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 1))
	b := NewAABBFromPoints(NewVec3(-2, 0.5, 0), NewVec3(0.5, 3, 0.5))

	union := a.Union(b)
	if union.Min != NewVec3(-2, 0, 0) {
		t.Errorf("unexpected union min: %v", union.Min)
	}
	if union.Max != NewVec3(1, 3, 1) {
		t.Errorf("unexpected union max: %v", union.Max)
	}
}

func TestAABB_ExtendPoint(t *testing.T) {
	box := EmptyAABB().ExtendPoint(NewVec3(1, 2, 3)).ExtendPoint(NewVec3(-1, 0, 5))

	if box.Min != NewVec3(-1, 0, 3) || box.Max != NewVec3(1, 2, 5) {
		t.Errorf("unexpected extended box: %+v", box)
	}
}

func TestAABB_SurfaceArea(t *testing.T) {
	box := NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(2, 3, 4))
	// 2*(2*3 + 3*4 + 2*4) = 52
	if math.Abs(box.SurfaceArea()-52.0) > 1e-12 {
		t.Errorf("expected surface area 52, got %f", box.SurfaceArea())
	}
}

func TestAABB_LongestAxis(t *testing.T) {
	tests := []struct {
		name string
		box  AABB
		want int
	}{
		{"x longest", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(5, 1, 1)), 0},
		{"y longest", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 5, 1)), 1},
		{"z longest", NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 1, 5)), 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.box.LongestAxis(); got != tt.want {
				t.Errorf("expected axis %d, got %d", tt.want, got)
			}
		})
	}
}
