package accel

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/lumen-rt/lumen/pkg/core"
	"github.com/lumen-rt/lumen/pkg/log"
)

const (
	// Leaf threshold: stop partitioning once this many shapes remain
	maxLeafShapes = 4

	// Number of buckets used by the SAH binning pass
	sahBuckets = 12

	// Estimated cost of a node traversal relative to one intersection test
	traversalCost = 0.125

	// Centroid extents below this are too flat to bin; fall back to
	// equal-count median splitting
	minCentroidExtent = 1e-8
)

// linearNode is one slot in the flattened node array.
//
// Leaf nodes (count > 0) reference a contiguous run of reordered shapes.
// Interior nodes (count == 0) store the index of their second child; the
// first child always occupies the immediately following slot.
type linearNode struct {
	bounds core.AABB
	offset int
	count  int
	axis   int
}

// BVH is a bounding volume hierarchy flattened into a contiguous node
// array for cache-friendly traversal. It is built once at scene setup and
// is immutable afterwards, so concurrent traversal needs no locking.
type BVH struct {
	shapes []core.Shape
	nodes  []linearNode
}

// Stats describes the structure of a built BVH
type Stats struct {
	TotalNodes int
	LeafNodes  int
	MaxDepth   int
	Shapes     int
}

type shapeInfo struct {
	bounds   core.AABB
	centroid core.Vec3
	index    int
}

type builder struct {
	nodes    []linearNode
	ordered  []core.Shape
	shapes   []core.Shape
	maxDepth int
	leafs    int
}

// NewBVH builds a hierarchy over the given shapes using surface-area-
// heuristic binning with an equal-count fallback for degenerate splits.
// An empty shape list produces a valid structure representing an empty
// scene.
func NewBVH(shapes []core.Shape) *BVH {
	logger := log.New("bvh")

	if len(shapes) == 0 {
		return &BVH{}
	}

	info := make([]shapeInfo, len(shapes))
	for i, s := range shapes {
		bounds := s.BoundingBox()
		info[i] = shapeInfo{bounds: bounds, centroid: bounds.Center(), index: i}
	}

	b := &builder{
		ordered: make([]core.Shape, 0, len(shapes)),
		shapes:  shapes,
	}

	start := time.Now()
	b.build(info, 0)

	if len(b.nodes) == 0 {
		// Build produced nothing for a non-empty shape list; the
		// structure would silently miss geometry, so abort.
		panic(fmt.Sprintf("bvh: built 0 nodes for %d shapes", len(shapes)))
	}

	logger.Debugf("built BVH in %v: %d nodes, %d leafs, max depth %d, %d shapes",
		time.Since(start), len(b.nodes), b.leafs, b.maxDepth, len(shapes))

	return &BVH{shapes: b.ordered, nodes: b.nodes}
}

// build recursively partitions info, appending nodes in depth-first
// pre-order so each interior node's first child directly follows it.
// Returns the index of the created node.
func (b *builder) build(info []shapeInfo, depth int) int {
	if depth > b.maxDepth {
		b.maxDepth = depth
	}

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, linearNode{})

	bounds := core.EmptyAABB()
	centroidBounds := core.EmptyAABB()
	for _, si := range info {
		bounds = bounds.Union(si.bounds)
		centroidBounds = centroidBounds.ExtendPoint(si.centroid)
	}

	axis := centroidBounds.LongestAxis()
	cMin, cMax := centroidBounds.Axis(axis)
	extent := cMax - cMin

	// Leaf: few shapes, or centroids so close together no split can help
	if len(info) <= maxLeafShapes || extent < minCentroidExtent {
		b.createLeaf(nodeIndex, bounds, info)
		return nodeIndex
	}

	mid, ok := b.splitSAH(info, bounds, centroidBounds)
	if !ok {
		mid = b.splitMedian(info, axis)
	}

	b.build(info[:mid], depth+1) // First child at nodeIndex+1
	secondChild := b.build(info[mid:], depth+1)

	b.nodes[nodeIndex] = linearNode{
		bounds: bounds,
		offset: secondChild,
		count:  0,
		axis:   axis,
	}
	return nodeIndex
}

func (b *builder) createLeaf(nodeIndex int, bounds core.AABB, info []shapeInfo) {
	offset := len(b.ordered)
	for _, si := range info {
		b.ordered = append(b.ordered, b.shapes[si.index])
	}
	b.nodes[nodeIndex] = linearNode{bounds: bounds, offset: offset, count: len(info)}
	b.leafs++
}

// splitSAH bins shapes by centroid and picks the axis and bucket boundary
// minimizing estimated traversal cost. Returns ok=false when binning
// degenerates (every candidate split leaves one side empty).
func (b *builder) splitSAH(info []shapeInfo, bounds, centroidBounds core.AABB) (int, bool) {
	invArea := 1.0 / bounds.SurfaceArea()

	bestCost := math.Inf(1)
	bestAxis := -1
	bestSplit := 0.0

	for axis := 0; axis < 3; axis++ {
		cMin, cMax := centroidBounds.Axis(axis)
		extent := cMax - cMin
		if extent < minCentroidExtent {
			continue
		}

		type bucket struct {
			count  int
			bounds core.AABB
		}
		buckets := make([]bucket, sahBuckets)
		for i := range buckets {
			buckets[i].bounds = core.EmptyAABB()
		}

		for _, si := range info {
			idx := int(float64(sahBuckets) * (axisValue(si.centroid, axis) - cMin) / extent)
			if idx >= sahBuckets {
				idx = sahBuckets - 1
			}
			buckets[idx].count++
			buckets[idx].bounds = buckets[idx].bounds.Union(si.bounds)
		}

		// Evaluate cost of splitting after each bucket boundary
		for i := 1; i < sahBuckets; i++ {
			leftBounds, rightBounds := core.EmptyAABB(), core.EmptyAABB()
			leftCount, rightCount := 0, 0
			for j := 0; j < i; j++ {
				if buckets[j].count > 0 {
					leftBounds = leftBounds.Union(buckets[j].bounds)
					leftCount += buckets[j].count
				}
			}
			for j := i; j < sahBuckets; j++ {
				if buckets[j].count > 0 {
					rightBounds = rightBounds.Union(buckets[j].bounds)
					rightCount += buckets[j].count
				}
			}
			if leftCount == 0 || rightCount == 0 {
				continue
			}

			cost := traversalCost + invArea*
				(float64(leftCount)*leftBounds.SurfaceArea()+
					float64(rightCount)*rightBounds.SurfaceArea())
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestSplit = cMin + extent*float64(i)/float64(sahBuckets)
			}
		}
	}

	if bestAxis < 0 {
		return 0, false
	}

	// Partition in place around the chosen split plane
	mid := 0
	for i := range info {
		if axisValue(info[i].centroid, bestAxis) < bestSplit {
			info[mid], info[i] = info[i], info[mid]
			mid++
		}
	}
	if mid == 0 || mid == len(info) {
		return 0, false
	}
	return mid, true
}

// splitMedian sorts by centroid along axis and splits at the middle,
// guaranteeing progress when SAH binning cannot
func (b *builder) splitMedian(info []shapeInfo, axis int) int {
	sort.Slice(info, func(i, j int) bool {
		return axisValue(info[i].centroid, axis) < axisValue(info[j].centroid, axis)
	})
	return len(info) / 2
}

func axisValue(v core.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// IntersectNearest traverses the hierarchy and returns the nearest hit
// within the ray's interval, or false if nothing is hit. The near child
// is visited first so closer hits shrink the interval early.
func (bvh *BVH) IntersectNearest(ray core.Ray) (*core.SurfaceInteraction, bool) {
	if len(bvh.nodes) == 0 {
		return nil, false
	}

	dirIsNeg := [3]bool{ray.Direction.X < 0, ray.Direction.Y < 0, ray.Direction.Z < 0}

	var closest *core.SurfaceInteraction
	closestT := ray.TMax

	// Explicit stack avoids recursion. The build has no depth bound, so
	// the stack must grow with the tree rather than use a fixed array.
	stack := make([]int, 1, 64)
	stack[0] = 0

	for len(stack) > 0 {
		nodeIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bvh.nodes[nodeIndex]

		if !node.bounds.Hit(ray, ray.TMin, closestT) {
			continue
		}

		if node.count > 0 {
			for i := node.offset; i < node.offset+node.count; i++ {
				if si, hit := bvh.shapes[i].Intersect(ray, ray.TMin, closestT); hit {
					closest = si
					closestT = si.T
				}
			}
			continue
		}

		// Push far child first so the near child is processed next
		if dirIsNeg[node.axis] {
			stack = append(stack, nodeIndex+1, node.offset)
		} else {
			stack = append(stack, node.offset, nodeIndex+1)
		}
	}

	return closest, closest != nil
}

// IntersectAny reports whether anything is hit within the ray's interval,
// exiting on the first hit found. Used for shadow and occlusion queries.
func (bvh *BVH) IntersectAny(ray core.Ray) bool {
	if len(bvh.nodes) == 0 {
		return false
	}

	stack := make([]int, 1, 64)
	stack[0] = 0

	for len(stack) > 0 {
		nodeIndex := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node := &bvh.nodes[nodeIndex]

		if !node.bounds.Hit(ray, ray.TMin, ray.TMax) {
			continue
		}

		if node.count > 0 {
			for i := node.offset; i < node.offset+node.count; i++ {
				if _, hit := bvh.shapes[i].Intersect(ray, ray.TMin, ray.TMax); hit {
					return true
				}
			}
			continue
		}

		stack = append(stack, nodeIndex+1, node.offset)
	}

	return false
}

// BoundingBox returns the bounds of the whole scene, or a zero box for
// an empty scene
func (bvh *BVH) BoundingBox() core.AABB {
	if len(bvh.nodes) == 0 {
		return core.AABB{}
	}
	return bvh.nodes[0].bounds
}

// Stats walks the node array and reports structural statistics
func (bvh *BVH) Stats() Stats {
	stats := Stats{TotalNodes: len(bvh.nodes), Shapes: len(bvh.shapes)}
	if len(bvh.nodes) == 0 {
		return stats
	}

	type entry struct {
		index, depth int
	}
	stack := []entry{{0, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.depth > stats.MaxDepth {
			stats.MaxDepth = e.depth
		}
		node := &bvh.nodes[e.index]
		if node.count > 0 {
			stats.LeafNodes++
			continue
		}
		stack = append(stack, entry{e.index + 1, e.depth + 1})
		stack = append(stack, entry{node.offset, e.depth + 1})
	}
	return stats
}
