package compiler

import (
	"errors"
	"testing"

	"github.com/achilleasa/polaris-bvh/asset/compiler/input"
	"github.com/achilleasa/polaris-bvh/bvh"
	"github.com/achilleasa/polaris-bvh/types"
)

func TestCompile(t *testing.T) {
	raw := input.NewScene()

	left := input.NewMesh("left")
	left.AddTriangle(types.Vec3{0, 0, 0}, types.Vec3{1, 0, 0}, types.Vec3{0, 1, 0})
	raw.Meshes = append(raw.Meshes, left, input.NewMesh("empty"))

	right := input.NewMesh("right")
	right.AddTriangle(types.Vec3{10, 0, 0}, types.Vec3{11, 0, 0}, types.Vec3{10, 1, 0})
	right.AddTriangle(types.Vec3{12, 0, 0}, types.Vec3{13, 0, 0}, types.Vec3{12, 1, 0})
	raw.Meshes = append(raw.Meshes, right)

	sc, err := Compile(raw, bvh.DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}

	if len(sc.VertexList) != 9 {
		t.Fatalf("expected scene to contain 9 vertices; got %d", len(sc.VertexList))
	}

	if len(sc.Meshes) != 2 {
		t.Fatalf("expected empty meshes to be skipped; got %d meshes", len(sc.Meshes))
	}
	if sc.Meshes[1].Name != "right" || sc.Meshes[1].FirstPrimitive != 1 || sc.Meshes[1].PrimitiveCount != 2 {
		t.Fatalf("expected mesh 'right' to start at primitive 1 and contain 2 primitives; got %+v", sc.Meshes[1])
	}

	if sc.Bvh.NodeCount() != sc.BuildStats.Nodes || sc.Bvh.NodeCount() < 3 {
		t.Fatalf("expected a partitioned BVH; got %d nodes (stats: %d)", sc.Bvh.NodeCount(), sc.BuildStats.Nodes)
	}
	if len(sc.Bvh.PrimitiveIndices) != 3 {
		t.Fatalf("expected 3 primitive indices; got %d", len(sc.Bvh.PrimitiveIndices))
	}
}

func TestCompileEmptyScene(t *testing.T) {
	raw := input.NewScene()
	raw.Meshes = append(raw.Meshes, input.NewMesh("empty"))

	_, err := Compile(raw, bvh.DefaultOptions())
	if !errors.Is(err, ErrEmptyScene) {
		t.Fatalf("expected to get ErrEmptyScene; got %v", err)
	}
}
