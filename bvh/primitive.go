package bvh

import (
	"math"

	"github.com/achilleasa/polaris-bvh/types"
)

// Primitive is an immutable triangle record created from three consecutive
// vertices of the input stream.
type Primitive struct {
	Vertices [3]types.Vec3

	// Arithmetic mean of the vertices. Only used as a sort key while
	// searching for split candidates.
	Center types.Vec3

	// Index of the triangle in the caller's vertex stream.
	Index int32
}

// Create a new triangle primitive.
func NewPrimitive(v0, v1, v2 types.Vec3, index int32) Primitive {
	return Primitive{
		Vertices: [3]types.Vec3{v0, v1, v2},
		Center:   v0.Add(v1).Add(v2).Mul(1.0 / 3.0),
		Index:    index,
	}
}

// BBox is an axis aligned bounding box stored as a (min, max) pair.
type BBox [2]types.Vec3

// An inverted box that any Extend call will shrink-wrap.
func emptyBBox() BBox {
	return BBox{
		types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Returns true if no point has been added to the box.
func (b BBox) IsEmpty() bool {
	return b[0][0] > b[1][0] || b[0][1] > b[1][1] || b[0][2] > b[1][2]
}

// Grow the box so that it contains all vertices of p.
func (b BBox) Extend(p *Primitive) BBox {
	for _, v := range p.Vertices {
		b[0] = types.MinVec3(b[0], v)
		b[1] = types.MaxVec3(b[1], v)
	}
	return b
}

// Grow the box so that it contains other.
func (b BBox) Union(other BBox) BBox {
	return BBox{types.MinVec3(b[0], other[0]), types.MaxVec3(b[1], other[1])}
}

// Returns true if other lies inside (or on the boundary of) this box.
func (b BBox) Contains(other BBox) bool {
	for axis := 0; axis < 3; axis++ {
		if other[0][axis] < b[0][axis] || other[1][axis] > b[1][axis] {
			return false
		}
	}
	return true
}

// Returns true if the point lies inside (or on the boundary of) this box.
func (b BBox) ContainsPoint(p types.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b[0][axis] || p[axis] > b[1][axis] {
			return false
		}
	}
	return true
}

// Get the box surface area. Empty and flat boxes have zero area along the
// collapsed dimensions; an empty box has zero area.
func (b BBox) SurfaceArea() float32 {
	if b.IsEmpty() {
		return 0
	}
	d := b[1].Sub(b[0])
	return (d[0]*d[1] + d[1]*d[2] + d[2]*d[0]) * 2
}
