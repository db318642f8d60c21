// Halfedge mesh processing for Go.
//
// This package is a thin façade over the surfacemesh and triangulation
// packages. Build a mesh from vertices and polygon faces, then convert its
// faces into an optimal set of triangles in place.
package pmp

import (
	"github.com/liwind/pmp-library/surfacemesh"
	"github.com/liwind/pmp-library/triangulation"
)

type Mesh = surfacemesh.Mesh
type Point = surfacemesh.Point
type Vertex = surfacemesh.Vertex
type Halfedge = surfacemesh.Halfedge
type Face = surfacemesh.Face

type Objective = triangulation.Objective

const (
	MinArea  = triangulation.MinArea
	MaxAngle = triangulation.MaxAngle
)

func NewMesh() *Mesh {
	return surfacemesh.New()
}

// Triangulate splits every non-triangle face of the mesh into the optimal set
// of triangles under the given objective. Existing vertices and edges are kept
// and only diagonals are added, so handles held by the caller stay valid.
func Triangulate(mesh *Mesh, objective Objective) error {
	return triangulation.Triangulate(mesh, objective)
}

// TriangulateFace splits a single face; see Triangulate.
func TriangulateFace(mesh *Mesh, f Face, objective Objective) error {
	return triangulation.TriangulateFace(mesh, f, objective)
}
