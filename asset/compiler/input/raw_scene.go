package input

import "github.com/achilleasa/polaris-bvh/types"

// A mesh is a named triangle list. Every 3 consecutive vertices define a
// triangle.
type Mesh struct {
	Name     string
	Vertices []types.Vec3
}

// Create a new empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]types.Vec3, 0),
	}
}

// Append a triangle to the mesh.
func (m *Mesh) AddTriangle(v0, v1, v2 types.Vec3) {
	m.Vertices = append(m.Vertices, v0, v1, v2)
}

// Get the number of triangles in the mesh.
func (m *Mesh) PrimitiveCount() int {
	return len(m.Vertices) / 3
}

// Scene contains the raw geometry parsed by a scene reader.
type Scene struct {
	Meshes []*Mesh
}

// Create a new empty raw scene.
func NewScene() *Scene {
	return &Scene{
		Meshes: make([]*Mesh, 0),
	}
}

// Get the total number of triangles across all meshes.
func (sc *Scene) PrimitiveCount() int {
	count := 0
	for _, mesh := range sc.Meshes {
		count += mesh.PrimitiveCount()
	}
	return count
}

// Concatenate the vertices of all meshes into a single stream.
func (sc *Scene) VertexStream() []types.Vec3 {
	stream := make([]types.Vec3, 0, 3*sc.PrimitiveCount())
	for _, mesh := range sc.Meshes {
		stream = append(stream, mesh.Vertices...)
	}
	return stream
}
