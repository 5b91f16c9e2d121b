package core

// Shape is implemented by every geometric primitive that can be indexed
// by the acceleration structure
type Shape interface {
	// Intersect tests the ray against the shape within [tMin, tMax).
	// Returns the nearest interaction and true on a hit.
	Intersect(ray Ray, tMin, tMax float64) (*SurfaceInteraction, bool)

	// BoundingBox returns the world-space bounds of the shape
	BoundingBox() AABB
}

// SurfaceInteraction describes the result of a successful ray-shape
// intersection. It is stack-local to the path that produced it and is
// never shared across workers.
type SurfaceInteraction struct {
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Shading normal, flipped toward the incoming ray
	GeoNormal Vec3    // Geometric (outward) normal
	UV        Vec2    // Parametric surface coordinates
	T         float64 // Distance traveled along the ray
	FrontFace bool    // Whether the ray hit the front face
	Material  Material
}

// SetFaceNormal sets the shading normal and determines front/back face
// from the outward geometric normal
func (si *SurfaceInteraction) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	si.GeoNormal = outwardNormal
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}

// Material is the BSDF capability surface: each material samples outgoing
// directions and evaluates reflectance and densities for direction pairs
type Material interface {
	// Scatter samples an outgoing direction at the interaction.
	// Returns false if the ray was absorbed.
	Scatter(rayIn Ray, si SurfaceInteraction, sampler Sampler) (ScatterResult, bool)

	// EvaluateBRDF evaluates the reflectance for a specific pair of
	// directions. Both directions point away from the surface.
	EvaluateBRDF(wo, wi Vec3, si *SurfaceInteraction) Vec3

	// PDF returns the sampling density for the given direction pair.
	// Zero for delta (specular) materials.
	PDF(wo, wi Vec3, si *SurfaceInteraction) float64
}

// Emitter is implemented by materials that emit light
type Emitter interface {
	Emit(rayIn Ray, si SurfaceInteraction) Vec3
}

// ScatterResult contains the result of material sampling
type ScatterResult struct {
	Incoming    Ray     // The incoming ray
	Scattered   Ray     // The sampled outgoing ray
	Attenuation Vec3    // BSDF value (reflectance for specular materials)
	PDF         float64 // Sampling density, 0 for specular materials
}

// IsSpecular reports whether this sample came from a delta distribution
func (s ScatterResult) IsSpecular() bool {
	return s.PDF <= 0
}
