package surfacemesh

import "github.com/pkg/errors"

// AddFace creates a new face from an ordered vertex loop, reusing any existing
// boundary half-edges between consecutive vertices. It fails when the face
// would make the mesh non-manifold in a way the structure cannot represent: a
// vertex that is already fully surrounded by faces (complex vertex), an edge
// that already has faces on both sides (complex edge), or a boundary
// configuration that cannot be re-linked around the new face.
//
// Adding faces that merely pinch a vertex (two faces sharing a single vertex)
// is representable and allowed; such vertices are reported by IsManifold.
func (m *Mesh) AddFace(vertices ...Vertex) (Face, error) {
	n := len(vertices)
	if n < 3 {
		return InvalidFace, errors.Errorf("surfacemesh: face needs at least 3 vertices, got %d", n)
	}

	halfedges := make([]Halfedge, n)
	isNew := make([]bool, n)
	needsAdjust := make([]bool, n)
	// Next-pointer updates are deferred so searches below still see the old
	// connectivity.
	type nextLink struct{ from, to Halfedge }
	nextCache := make([]nextLink, 0, 3*n)

	// Test for topological errors first, so a failed AddFace leaves the mesh
	// untouched.
	for i := 0; i < n; i++ {
		ii := (i + 1) % n
		if !m.IsBoundaryVertex(vertices[i]) {
			return InvalidFace, errors.Errorf("surfacemesh: complex vertex %d", vertices[i])
		}
		halfedges[i] = m.FindHalfedge(vertices[i], vertices[ii])
		isNew[i] = !halfedges[i].IsValid()
		if !isNew[i] && !m.IsBoundaryHalfedge(halfedges[i]) {
			return InvalidFace, errors.Errorf("surfacemesh: complex edge %d-%d", vertices[i], vertices[ii])
		}
	}

	// Re-link boundary patches between consecutive pre-existing half-edges that
	// are not yet consecutive in the boundary loop.
	for i := 0; i < n; i++ {
		ii := (i + 1) % n
		if isNew[i] || isNew[ii] {
			continue
		}
		innerPrev := halfedges[i]
		innerNext := halfedges[ii]
		if m.NextHalfedge(innerPrev) == innerNext {
			continue
		}

		// Search a free boundary gap to move the in-between patch into.
		outerPrev := innerNext.Opposite()
		boundaryPrev := outerPrev
		for {
			boundaryPrev = m.NextHalfedge(boundaryPrev).Opposite()
			if m.IsBoundaryHalfedge(boundaryPrev) && boundaryPrev != innerPrev {
				break
			}
		}
		boundaryNext := m.NextHalfedge(boundaryPrev)
		if boundaryNext == innerNext {
			return InvalidFace, errors.Errorf("surfacemesh: patch re-linking failed at vertex %d", vertices[ii])
		}

		patchStart := m.NextHalfedge(innerPrev)
		patchEnd := m.PrevHalfedge(innerNext)
		nextCache = append(nextCache,
			nextLink{boundaryPrev, patchStart},
			nextLink{patchEnd, boundaryNext},
			nextLink{innerPrev, innerNext},
		)
	}

	// Create the missing edges.
	for i := 0; i < n; i++ {
		if isNew[i] {
			halfedges[i] = m.newEdge(vertices[i], vertices[(i+1)%n])
		}
	}

	f := m.newFace(halfedges[n-1])

	// Set up inner and outer connectivity around each corner.
	for i := 0; i < n; i++ {
		ii := (i + 1) % n
		v := vertices[ii]
		innerPrev := halfedges[i]
		innerNext := halfedges[ii]

		switch {
		case isNew[i] && !isNew[ii]:
			outerNext := innerPrev.Opposite()
			boundaryPrev := m.PrevHalfedge(innerNext)
			nextCache = append(nextCache, nextLink{boundaryPrev, outerNext})
			m.vertices[v].halfedge = outerNext
		case !isNew[i] && isNew[ii]:
			outerPrev := innerNext.Opposite()
			boundaryNext := m.NextHalfedge(innerPrev)
			nextCache = append(nextCache, nextLink{outerPrev, boundaryNext})
			m.vertices[v].halfedge = boundaryNext
		case isNew[i] && isNew[ii]:
			outerPrev := innerNext.Opposite()
			outerNext := innerPrev.Opposite()
			if !m.vertices[v].halfedge.IsValid() {
				m.vertices[v].halfedge = outerNext
				nextCache = append(nextCache, nextLink{outerPrev, outerNext})
			} else {
				boundaryNext := m.vertices[v].halfedge
				boundaryPrev := m.PrevHalfedge(boundaryNext)
				nextCache = append(nextCache,
					nextLink{boundaryPrev, outerNext},
					nextLink{outerPrev, boundaryNext},
				)
			}
		default:
			needsAdjust[ii] = m.vertices[v].halfedge == innerNext
		}

		if isNew[i] || isNew[ii] {
			nextCache = append(nextCache, nextLink{innerPrev, innerNext})
		}
		m.halfedges[halfedges[i]].face = f
	}

	for _, link := range nextCache {
		m.setNext(link.from, link.to)
	}

	for i := 0; i < n; i++ {
		if needsAdjust[i] {
			m.adjustOutgoingHalfedge(vertices[i])
		}
	}

	return f, nil
}
