package bvh

import (
	"math"
	"reflect"
	"testing"

	"github.com/achilleasa/polaris-bvh/types"
)

// Four primitives, one in each XZ quadrant. Splitting along X or along Z
// yields candidates with identical cost.
func quadrantPrimitives() []types.Vec3 {
	var vertices []types.Vec3
	vertices = append(vertices, boxTriangle(-2, -1, -2, -1)...)
	vertices = append(vertices, boxTriangle(1, 2, -2, -1)...)
	vertices = append(vertices, boxTriangle(-2, -1, 1, 2)...)
	vertices = append(vertices, boxTriangle(1, 2, 1, 2)...)
	return vertices
}

func TestLastEqualCostSplitWins(t *testing.T) {
	tree, info := buildTree(t, DefaultOptions(), quadrantPrimitives())

	if tree.NodeCount() != 7 {
		t.Fatalf("expected tree to have 7 nodes; got %d", tree.NodeCount())
	}

	// The Z split is examined after the X split and wins the tie so the
	// root children group primitives by their Z coordinate.
	expIndices := []int32{0, 1, 2, 3}
	if !reflect.DeepEqual(info.PrimitiveIndices, expIndices) {
		t.Fatalf("expected primitive indices to be %v; got %v", expIndices, info.PrimitiveIndices)
	}

	expMissLinks := []int32{-1, 4, 3, 4, -1, 6, -1}
	if !reflect.DeepEqual(info.MissLinks, expMissLinks) {
		t.Fatalf("expected miss links to be %v; got %v", expMissLinks, info.MissLinks)
	}

	expRanges := []int32{-1, -1, -1, -1, 0, 1, 1, 2, -1, -1, 2, 3, 3, 4}
	if !reflect.DeepEqual(info.LeafRanges, expRanges) {
		t.Fatalf("expected leaf ranges to be %v; got %v", expRanges, info.LeafRanges)
	}

	expLeftBBox := BBox{{-2, 0, -2}, {2, 1, -1}}
	if got := info.BBox(1); got != expLeftBBox {
		t.Fatalf("expected left child bbox to be %v; got %v", expLeftBBox, got)
	}
}

func TestMaxDepth(t *testing.T) {
	opts := DefaultOptions()

	opts.MaxDepth = 1
	tree, info := buildTree(t, opts, quadrantPrimitives())
	if tree.NodeCount() != 1 {
		t.Fatalf("expected tree to have 1 node; got %d", tree.NodeCount())
	}
	expIndices := []int32{0, 1, 2, 3}
	if !reflect.DeepEqual(info.PrimitiveIndices, expIndices) {
		t.Fatalf("expected the root leaf to keep the input order %v; got %v", expIndices, info.PrimitiveIndices)
	}

	opts.MaxDepth = 2
	tree, info = buildTree(t, opts, quadrantPrimitives())
	if tree.NodeCount() != 3 {
		t.Fatalf("expected tree to have 3 nodes; got %d", tree.NodeCount())
	}
	if tree.Stats().MaxDepth != 2 {
		t.Fatalf("expected max depth to be 2; got %d", tree.Stats().MaxDepth)
	}
	verifyInfo(t, info, quadrantPrimitives(), tree.NodeCount())
}

func TestExpensiveTraversalCreatesLeaf(t *testing.T) {
	// With 3 per bbox test and 1 per primitive test no split of 4
	// primitives can beat a leaf.
	opts := Options{TraversalCost: 3, PrimitiveCost: 1}
	tree, _ := buildTree(t, opts, quadrantPrimitives())

	if tree.NodeCount() != 1 {
		t.Fatalf("expected tree to have 1 node; got %d", tree.NodeCount())
	}
}

func TestLeafKeepsArrivalOrder(t *testing.T) {
	// Primitives are supplied in reverse X order; with no split possible the
	// leaf must list them in input order rather than in sorted order.
	var vertices []types.Vec3
	for x := float32(3); x >= 0; x-- {
		vertices = append(vertices, boxTriangle(x, x+0.5, 0, 0)...)
	}

	opts := Options{TraversalCost: 100, PrimitiveCost: 1}
	_, info := buildTree(t, opts, vertices)

	expIndices := []int32{0, 1, 2, 3}
	if !reflect.DeepEqual(info.PrimitiveIndices, expIndices) {
		t.Fatalf("expected primitive indices to be %v; got %v", expIndices, info.PrimitiveIndices)
	}
}

func TestDegeneratePrimitives(t *testing.T) {
	// Five triangles collapsed to the same point produce zero-area bboxes.
	p := types.Vec3{1, 2, 3}
	vertices := make([]types.Vec3, 15)
	for idx := range vertices {
		vertices[idx] = p
	}

	tree, info := buildTree(t, DefaultOptions(), vertices)
	if tree.NodeCount() != 9 {
		t.Fatalf("expected tree to have 9 nodes; got %d", tree.NodeCount())
	}

	for idx, v := range info.BBoxes {
		if !v.IsFinite() || v != p {
			t.Fatalf("expected bbox corner %d to be %v; got %v", idx, p, v)
		}
	}
	verifyInfo(t, info, vertices, tree.NodeCount())
}

func TestCoplanarPrimitives(t *testing.T) {
	// A flat grid of triangles lying on the z = 0 plane.
	var vertices []types.Vec3
	for y := float32(0); y < 4; y++ {
		for x := float32(0); x < 4; x++ {
			vertices = append(vertices, types.Vec3{x, y, 0}, types.Vec3{x + 1, y, 0}, types.Vec3{x, y + 1, 0})
		}
	}

	tree, info := buildTree(t, DefaultOptions(), vertices)
	if tree.NodeCount() < 3 {
		t.Fatalf("expected the grid to be partitioned; got %d nodes", tree.NodeCount())
	}
	verifyInfo(t, info, vertices, tree.NodeCount())
}

func TestSplitCost(t *testing.T) {
	b := &builder{opts: DefaultOptions()}

	leftBBox := BBox{{0, 0, 0}, {1, 1, 0}}
	rightBBox := BBox{{10, 0, 0}, {11, 1, 0}}
	got := b.splitCost(leftBBox, 1, rightBBox, 1, 22)
	exp := float32(0.25) + float32(4)/22
	if math.Abs(float64(got-exp)) > 1e-6 {
		t.Fatalf("expected split cost to be %f; got %f", exp, got)
	}

	if got = b.splitCost(leftBBox, 1, rightBBox, 1, 0); got != 0.25 {
		t.Fatalf("expected zero area node split cost to be 0.25; got %f", got)
	}
}

func TestBBoxSurfaceArea(t *testing.T) {
	specs := []struct {
		bbox BBox
		exp  float32
	}{
		{BBox{{0, 0, 0}, {1, 2, 3}}, 22},
		{BBox{{0, 0, 0}, {4, 1, 0}}, 8},
		{BBox{{1, 1, 1}, {1, 1, 1}}, 0},
		{emptyBBox(), 0},
	}

	for idx, spec := range specs {
		if got := spec.bbox.SurfaceArea(); got != spec.exp {
			t.Fatalf("[spec %d] expected surface area to be %f; got %f", idx, spec.exp, got)
		}
	}
}
