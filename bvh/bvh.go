// Package bvh builds surface area heuristic bounding volume hierarchies over
// triangle soups and flattens them into threaded arrays that can be traversed
// without a stack.
package bvh

import (
	"fmt"

	"github.com/achilleasa/polaris-bvh/log"
	"github.com/achilleasa/polaris-bvh/types"
)

// BVH owns a set of triangle primitives and the tree built over them. A
// BVH is immutable between calls to Build and may then be read concurrently.
type BVH struct {
	logger log.Logger
	opts   Options

	primitives []Primitive
	nodes      []node
	stats      Stats
}

// Create a new empty BVH that uses the supplied cost model.
func New(opts Options) *BVH {
	return &BVH{
		logger: log.New("bvh"),
		opts:   opts,
	}
}

// Build a tree over a vertex stream where every 3 consecutive vertices
// define a triangle. Any previously built tree is replaced. If the input is
// rejected, the BVH keeps its previous contents.
func (t *BVH) Build(vertices []types.Vec3) error {
	if len(vertices) == 0 {
		return fmt.Errorf("%w: no primitives defined", ErrInvalidGeometry)
	}
	if len(vertices)%3 != 0 {
		return fmt.Errorf("%w: vertex count %d is not a multiple of 3", ErrInvalidGeometry, len(vertices))
	}
	for idx, v := range vertices {
		if !v.IsFinite() {
			return fmt.Errorf("%w: vertex %d has non-finite coordinates %v", ErrInvalidGeometry, idx, v)
		}
	}

	primitives := make([]Primitive, len(vertices)/3)
	for idx := range primitives {
		primitives[idx] = NewPrimitive(vertices[3*idx], vertices[3*idx+1], vertices[3*idx+2], int32(idx))
	}

	t.nodes, t.stats = build(primitives, t.opts)
	t.primitives = primitives

	t.logger.Infof("built BVH with %d nodes (%d leafs) for %d primitives", t.stats.Nodes, t.stats.Leafs, t.stats.Primitives)
	return nil
}

// Build a tree over a flat xyz coordinate stream where every 9 consecutive
// values define a triangle.
func (t *BVH) BuildFromCoords(coords []float32) error {
	if len(coords)%9 != 0 {
		return fmt.Errorf("%w: coordinate count %d is not a multiple of 9", ErrInvalidGeometry, len(coords))
	}

	vertices := make([]types.Vec3, len(coords)/3)
	for idx := range vertices {
		vertices[idx] = types.Vec3{coords[3*idx], coords[3*idx+1], coords[3*idx+2]}
	}
	return t.Build(vertices)
}

// Get the number of tree nodes. Returns 0 if the tree has not been built.
func (t *BVH) NodeCount() int {
	return len(t.nodes)
}

// Get the primitives owned by the tree indexed by their original index.
// The returned slice must be treated as read-only.
func (t *BVH) Primitives() []Primitive {
	return t.primitives
}

// Get statistics for the last successful build.
func (t *BVH) Stats() Stats {
	return t.stats
}

// Flatten the tree into its stackless representation. The arrays are
// recomputed on each call; an unbuilt tree yields empty arrays.
func (t *BVH) Info() *Info {
	return flatten(t.primitives, t.nodes)
}
