package bvh

import (
	"sort"
	"time"

	"github.com/achilleasa/polaris-bvh/log"
)

// Bvh nodes are stored in an arena whose slot index doubles as the node's
// pre-order index. Internal nodes reference their children by arena index;
// leafs carry the list of primitive slots they own and set both child
// indices to -1.
type node struct {
	bbox BBox

	left, right int32

	// Indices into the primitive list. Only populated for leafs.
	items []int32
}

func (n *node) isLeaf() bool {
	return n.left < 0
}

// Build statistics.
type Stats struct {
	Primitives int
	Nodes      int
	Leafs      int
	MaxDepth   int
	BuildTime  time.Duration
}

type builder struct {
	logger log.Logger

	opts Options

	// The primitives being partitioned. Work lists reference primitives by
	// their index in this slice.
	primitives []Primitive

	// Bvh nodes stored as a contiguous list in pre-order.
	nodes []node

	stats Stats
}

// Construct a BVH over the supplied primitives and return the node arena.
//
// The builder evaluates every split position along every axis and scores it
// using the surface area heuristic (SAH):
//
// cost = 2 * traversal cost + (SA(L) * |L| + SA(R) * |R|) * primitive cost / SA(node)
//
// A node is split only if the best candidate costs no more than testing all
// of its primitives directly (primitive cost * count).
func build(primitives []Primitive, opts Options) ([]node, Stats) {
	b := &builder{
		logger:     log.New("bvh builder"),
		opts:       opts,
		primitives: primitives,
		nodes:      make([]node, 0, 2*len(primitives)-1),
		stats: Stats{
			Primitives: len(primitives),
		},
	}

	workList := make([]int32, len(primitives))
	for idx := range workList {
		workList[idx] = int32(idx)
	}

	start := time.Now()
	nodeCount := b.partition(workList, 1)
	b.stats.Nodes = int(nodeCount)
	b.stats.BuildTime = time.Since(start)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs,
	)
	return b.nodes, b.stats
}

// Partition worklist into a subtree rooted at the next free arena slot and
// return the next free pre-order index.
func (b *builder) partition(workList []int32, depth int) int32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, node{
		bbox:  b.bbox(workList),
		left:  -1,
		right: -1,
	})

	if b.opts.MaxDepth > 0 && depth >= b.opts.MaxDepth {
		return b.createLeaf(nodeIndex, workList)
	}

	leftList, rightList := b.findSplit(workList, b.nodes[nodeIndex].bbox)
	if leftList == nil {
		return b.createLeaf(nodeIndex, workList)
	}

	// The left child always follows its parent; the right child follows
	// the entire left subtree.
	leftIndex := nodeIndex + 1
	rightIndex := b.partition(leftList, depth+1)
	nextIndex := b.partition(rightList, depth+1)

	b.nodes[nodeIndex].left = leftIndex
	b.nodes[nodeIndex].right = rightIndex
	return nextIndex
}

// Search all axes for the split with the lowest SAH cost. If no candidate
// is at least as cheap as a leaf, findSplit returns nil lists.
//
// Ties are resolved in favor of the candidate examined last; axes are
// examined in x, y, z order and split positions in increasing order.
func (b *builder) findSplit(workList []int32, nodeBBox BBox) (leftList, rightList []int32) {
	count := len(workList)
	if count < 2 {
		return nil, nil
	}

	var (
		bestCost  = b.opts.PrimitiveCost * float32(count)
		bestSplit = -1
		bestOrder []int32
	)

	nodeArea := nodeBBox.SurfaceArea()
	sorted := make([]int32, count)
	copy(sorted, workList)
	rightBBoxes := make([]BBox, count)

	for axis := 0; axis < 3; axis++ {
		sort.SliceStable(sorted, func(i, j int) bool {
			return b.primitives[sorted[i]].Center[axis] < b.primitives[sorted[j]].Center[axis]
		})

		// rightBBoxes[k] bounds sorted[k:]
		acc := emptyBBox()
		for k := count - 1; k > 0; k-- {
			acc = acc.Extend(&b.primitives[sorted[k]])
			rightBBoxes[k] = acc
		}

		improved := false
		leftBBox := emptyBBox()
		for k := 1; k < count; k++ {
			leftBBox = leftBBox.Extend(&b.primitives[sorted[k-1]])
			cost := b.splitCost(leftBBox, k, rightBBoxes[k], count-k, nodeArea)
			if cost <= bestCost {
				bestCost = cost
				bestSplit = k
				improved = true
			}
		}

		// Later axes re-sort the scratch list so keep a copy of the
		// ordering that produced the best split.
		if improved {
			bestOrder = make([]int32, count)
			copy(bestOrder, sorted)
		}
	}

	if bestSplit < 0 {
		return nil, nil
	}

	return bestOrder[:bestSplit:bestSplit], bestOrder[bestSplit:]
}

// Calculate the SAH cost of a split. A zero-area node contributes no
// intersection term.
func (b *builder) splitCost(leftBBox BBox, leftCount int, rightBBox BBox, rightCount int, nodeArea float32) float32 {
	cost := 2 * b.opts.TraversalCost
	if nodeArea > 0 {
		cost += (leftBBox.SurfaceArea()*float32(leftCount) + rightBBox.SurfaceArea()*float32(rightCount)) *
			b.opts.PrimitiveCost / nodeArea
	}
	return cost
}

// Calculate the tight bbox over all primitives in the work list.
func (b *builder) bbox(workList []int32) BBox {
	bbox := emptyBBox()
	for _, item := range workList {
		bbox = bbox.Extend(&b.primitives[item])
	}
	return bbox
}

// Setup the node at nodeIndex as a leaf containing all items in the work
// list and return the next free pre-order index.
func (b *builder) createLeaf(nodeIndex int32, workList []int32) int32 {
	b.nodes[nodeIndex].items = workList

	b.stats.Leafs++
	return nodeIndex + 1
}
