package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/achilleasa/polaris-bvh/bvh"
	"github.com/achilleasa/polaris-bvh/types"
	"github.com/olekukonko/tablewriter"
)

// Mesh describes the range of primitives contributed by a source mesh.
type Mesh struct {
	Name           string
	FirstPrimitive uint32
	PrimitiveCount uint32
}

// Scene is a compiled triangle scene together with its flattened BVH.
type Scene struct {
	Meshes []Mesh

	// Triangle vertices in the original order; 3 per primitive.
	VertexList []types.Vec3

	// The stackless BVH built over VertexList.
	Bvh bvh.Info

	// Statistics collected while building the BVH.
	BuildStats bvh.Stats
}

// Find the nearest primitive hit by ray.
func (sc *Scene) Intersect(ray bvh.Ray) (bvh.Hit, bool) {
	return sc.Bvh.Intersect(sc.VertexList, ray)
}

// Get the scene bbox. Returns false if the scene is empty.
func (sc *Scene) BBox() (bvh.BBox, bool) {
	if sc.Bvh.NodeCount() == 0 {
		return bvh.BBox{}, false
	}
	return sc.Bvh.BBox(0), true
}

// Build a tabular representation of scene statistics.
func (sc *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"Geometry", "---", "", fmtSize(sc.VertexList)})
	for _, mesh := range sc.Meshes {
		table.Append([]string{"", mesh.Name, fmt.Sprintf("%d", mesh.PrimitiveCount), fmtBytes(float32(3*int(mesh.PrimitiveCount)) * float32(reflect.TypeOf(types.Vec3{}).Size()))})
	}
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"BVH", "---", fmt.Sprintf("%d", sc.Bvh.NodeCount()), fmtSize(sc.Bvh.BBoxes, sc.Bvh.PrimitiveIndices, sc.Bvh.LeafRanges, sc.Bvh.MissLinks)})
	table.Append([]string{"", "BBoxes", fmt.Sprintf("%d", len(sc.Bvh.BBoxes)/2), fmtSize(sc.Bvh.BBoxes)})
	table.Append([]string{"", "Prim. indices", fmt.Sprintf("%d", len(sc.Bvh.PrimitiveIndices)), fmtSize(sc.Bvh.PrimitiveIndices)})
	table.Append([]string{"", "Leaf ranges", fmt.Sprintf("%d", sc.BuildStats.Leafs), fmtSize(sc.Bvh.LeafRanges)})
	table.Append([]string{"", "Miss links", fmt.Sprintf("%d", len(sc.Bvh.MissLinks)), fmtSize(sc.Bvh.MissLinks)})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"Build", "Max depth", fmt.Sprintf("%d", sc.BuildStats.MaxDepth), ""})
	table.Append([]string{"", "Build time", sc.BuildStats.BuildTime.String(), ""})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtSize(sc.VertexList, sc.Bvh.BBoxes, sc.Bvh.PrimitiveIndices, sc.Bvh.LeafRanges, sc.Bvh.MissLinks), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	return fmtBytes(totalBytes)
}

// Format a byte count with the appropriate byte/kb/mb unit.
func fmtBytes(totalBytes float32) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
