package bvh

import (
	"fmt"

	"github.com/achilleasa/polaris-bvh/types"
)

// Info is a flattened, stackless view of a BVH. All per-node arrays are
// index-aligned and laid out in pre-order so node 0 is the root.
//
// Traversal starts at node 0. If the ray hits the node bbox, traversal
// continues at index+1; otherwise it jumps to MissLinks[index]. A miss link
// of -1 (or reaching the end of the node list) terminates the traversal.
type Info struct {
	// Two entries (min, max) per node.
	BBoxes []types.Vec3

	// Original primitive indices grouped contiguously by leaf.
	PrimitiveIndices []int32

	// Two entries per node. For leafs, the half-open [start, end) range
	// into PrimitiveIndices; (-1, -1) for internal nodes.
	LeafRanges []int32

	// One entry per node; the node to visit when the bbox test fails or
	// -1 if traversal should terminate.
	MissLinks []int32
}

// Get the number of nodes in the flattened tree.
func (info *Info) NodeCount() int {
	return len(info.MissLinks)
}

// Returns true if the node at index is a leaf.
func (info *Info) IsLeaf(index int) bool {
	return info.LeafRanges[2*index] >= 0
}

// Get the bbox of the node at index.
func (info *Info) BBox(index int) BBox {
	return BBox{info.BBoxes[2*index], info.BBoxes[2*index+1]}
}

// Get the primitive range of the node at index. Internal nodes return (-1, -1).
func (info *Info) LeafRange(index int) (start, end int32) {
	return info.LeafRanges[2*index], info.LeafRanges[2*index+1]
}

// Rearrange a vertex stream (3 vertices per primitive, original order) so
// that primitives appear in tree order. The leaf ranges can then be used to
// address primitives in the returned stream directly.
func (info *Info) ReorderVertices(vertices []types.Vec3) ([]types.Vec3, error) {
	if len(vertices) != 3*len(info.PrimitiveIndices) {
		return nil, fmt.Errorf("%w: expected %d vertices; got %d", ErrInvalidGeometry, 3*len(info.PrimitiveIndices), len(vertices))
	}

	out := make([]types.Vec3, 0, len(vertices))
	for _, primIndex := range info.PrimitiveIndices {
		out = append(out, vertices[3*primIndex:3*primIndex+3]...)
	}
	return out, nil
}

// The flattener walks a node arena and emits the Info arrays.
type flattener struct {
	primitives []Primitive
	nodes      []node
	info       *Info
}

func flatten(primitives []Primitive, nodes []node) *Info {
	f := &flattener{
		primitives: primitives,
		nodes:      nodes,
		info: &Info{
			BBoxes:           make([]types.Vec3, 0, 2*len(nodes)),
			PrimitiveIndices: make([]int32, 0, len(primitives)),
			LeafRanges:       make([]int32, 0, 2*len(nodes)),
			MissLinks:        make([]int32, 0, len(nodes)),
		},
	}

	if len(nodes) != 0 {
		f.emitBBoxes(0)
		f.emitMissLinks(0, -1)
	}
	return f.info
}

// Emit the bbox and leaf range for the subtree rooted at nodeIndex in pre-order.
func (f *flattener) emitBBoxes(nodeIndex int32) {
	n := &f.nodes[nodeIndex]
	f.info.BBoxes = append(f.info.BBoxes, n.bbox[0], n.bbox[1])

	if !n.isLeaf() {
		f.info.LeafRanges = append(f.info.LeafRanges, -1, -1)
		f.emitBBoxes(n.left)
		f.emitBBoxes(n.right)
		return
	}

	start := int32(len(f.info.PrimitiveIndices))
	for _, item := range n.items {
		f.info.PrimitiveIndices = append(f.info.PrimitiveIndices, f.primitives[item].Index)
	}
	f.info.LeafRanges = append(f.info.LeafRanges, start, int32(len(f.info.PrimitiveIndices)))
}

// Emit miss links for the subtree rooted at nodeIndex in pre-order. The
// fallback is the node a miss on this subtree's root should jump to.
func (f *flattener) emitMissLinks(nodeIndex, fallback int32) {
	n := &f.nodes[nodeIndex]
	f.info.MissLinks = append(f.info.MissLinks, fallback)

	if n.isLeaf() {
		return
	}

	f.emitMissLinks(n.left, n.right)
	f.emitMissLinks(n.right, fallback)
}
