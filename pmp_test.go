package pmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Smoke test. The internals are already tested.
func TestTriangulate(t *testing.T) {
	mesh := NewMesh()
	vertices := []Vertex{
		mesh.AddVertex(Point{X: 1, Y: -1}),
		mesh.AddVertex(Point{X: 1, Y: 1}),
		mesh.AddVertex(Point{X: -1, Y: 1}),
		mesh.AddVertex(Point{X: -1, Y: -1}),
	}
	f, err := mesh.AddFace(vertices...)
	require.NoError(t, err)

	assert.NoError(t, TriangulateFace(mesh, f, MinArea))
	assert.Equal(t, 2, mesh.FaceCount())

	assert.NoError(t, Triangulate(mesh, MaxAngle))
	assert.Equal(t, 2, mesh.FaceCount())
}
