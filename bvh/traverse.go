package bvh

import (
	"math"

	"github.com/achilleasa/polaris-bvh/types"
)

const intersectEpsilon float32 = 1e-7

// A ray with a precomputed reciprocal direction for slab tests.
type Ray struct {
	Origin types.Vec3
	Dir    types.Vec3

	// Hits further than TMax are ignored.
	TMax float32

	invDir types.Vec3
}

// Create a new ray. Hits at any distance are accepted.
func NewRay(origin, dir types.Vec3) Ray {
	r := Ray{
		Origin: origin,
		Dir:    dir,
		TMax:   math.MaxFloat32,
	}
	for axis := 0; axis < 3; axis++ {
		if dir[axis] != 0 {
			r.invDir[axis] = 1.0 / dir[axis]
		}
	}
	return r
}

// Hit describes the result of a traversal.
type Hit struct {
	// Distance along the ray and barycentric coords of the hit.
	T    float32
	U, V float32

	// Original index of the primitive that was hit.
	Primitive int32

	// Number of nodes whose bbox was tested during the traversal.
	NodesVisited int
}

// Find the nearest primitive hit by ray using the stackless traversal
// scheme. Vertices must be the stream the tree was built from (3 per
// primitive in original order).
func (info *Info) Intersect(vertices []types.Vec3, ray Ray) (hit Hit, found bool) {
	hit.Primitive = -1
	hit.T = ray.TMax

	nodeCount := int32(info.NodeCount())
	for index := int32(0); index >= 0 && index < nodeCount; {
		hit.NodesVisited++

		bbox := info.BBox(int(index))
		if !ray.hitsBBox(bbox, hit.T) {
			index = info.MissLinks[index]
			continue
		}

		start, end := info.LeafRange(int(index))
		for ; start < end; start++ {
			primIndex := info.PrimitiveIndices[start]
			tri := vertices[3*primIndex : 3*primIndex+3]
			if t, u, v, ok := ray.hitsTriangle(tri[0], tri[1], tri[2]); ok && t < hit.T {
				hit.T, hit.U, hit.V = t, u, v
				hit.Primitive = primIndex
				found = true
			}
		}
		index++
	}

	return hit, found
}

// Slab test against a bbox, accepting only intersections closer than tMax.
func (r *Ray) hitsBBox(bbox BBox, tMax float32) bool {
	var tMin float32
	for axis := 0; axis < 3; axis++ {
		if r.Dir[axis] == 0 {
			if r.Origin[axis] < bbox[0][axis] || r.Origin[axis] > bbox[1][axis] {
				return false
			}
			continue
		}

		t0 := (bbox[0][axis] - r.Origin[axis]) * r.invDir[axis]
		t1 := (bbox[1][axis] - r.Origin[axis]) * r.invDir[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return false
		}
	}
	return true
}

// Moller-Trumbore ray/triangle test.
func (r *Ray) hitsTriangle(v0, v1, v2 types.Vec3) (t, u, v float32, ok bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -intersectEpsilon && det < intersectEpsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	s := r.Origin.Sub(v0)
	u = s.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = r.Dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * invDet
	if t <= intersectEpsilon {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
