// Package surfacemesh implements a half-edge connectivity structure for
// polygonal surface meshes.
//
// Vertices, half-edges and faces are kept in growing slices and referenced by
// index handles, so handles stay valid while the mesh grows. Half-edges are
// allocated in pairs; the opposite of half-edge h is h^1. Nothing is ever
// deleted: algorithms built on top only insert edges (and, as a consequence,
// faces).
package surfacemesh

// Index handles. Just to make the code more readable.
type Vertex int
type Halfedge int
type Face int

const (
	InvalidVertex   = Vertex(-1)
	InvalidHalfedge = Halfedge(-1)
	InvalidFace     = Face(-1)
)

func (v Vertex) IsValid() bool   { return v >= 0 }
func (h Halfedge) IsValid() bool { return h >= 0 }
func (f Face) IsValid() bool     { return f >= 0 }

// Opposite is the other half of h's edge pair. Only valid for valid handles.
func (h Halfedge) Opposite() Halfedge { return h ^ 1 }

type vertexRecord struct {
	position Point
	// An outgoing half-edge, kept pointing at a boundary one whenever the
	// vertex is on the boundary. InvalidHalfedge for isolated vertices.
	halfedge Halfedge
}

type halfedgeRecord struct {
	// Destination vertex.
	vertex Vertex
	// Incident face; InvalidFace on the boundary.
	face Face
	// Next and previous half-edge within the same face loop.
	next, prev Halfedge
}

type faceRecord struct {
	// An arbitrary half-edge of the face's boundary loop.
	halfedge Halfedge
}

// A Mesh is a halfedge-based polygonal surface mesh.
type Mesh struct {
	vertices  []vertexRecord
	halfedges []halfedgeRecord
	faces     []faceRecord
}

func New() *Mesh {
	return &Mesh{}
}

func (m *Mesh) VertexCount() int   { return len(m.vertices) }
func (m *Mesh) HalfedgeCount() int { return len(m.halfedges) }
func (m *Mesh) EdgeCount() int     { return len(m.halfedges) / 2 }
func (m *Mesh) FaceCount() int     { return len(m.faces) }

// AddVertex appends an isolated vertex at position p.
func (m *Mesh) AddVertex(p Point) Vertex {
	m.vertices = append(m.vertices, vertexRecord{position: p, halfedge: InvalidHalfedge})
	return Vertex(len(m.vertices) - 1)
}

func (m *Mesh) Position(v Vertex) Point {
	return m.vertices[v].position
}

func (m *Mesh) SetPosition(v Vertex, p Point) {
	m.vertices[v].position = p
}

// VertexHalfedge is an outgoing half-edge of v, or InvalidHalfedge if v is
// isolated. If v is on the boundary, the returned half-edge is a boundary one.
func (m *Mesh) VertexHalfedge(v Vertex) Halfedge {
	return m.vertices[v].halfedge
}

// Halfedge is the first boundary half-edge of face f.
func (m *Mesh) Halfedge(f Face) Halfedge {
	return m.faces[f].halfedge
}

// ToVertex is the destination vertex of h.
func (m *Mesh) ToVertex(h Halfedge) Vertex {
	return m.halfedges[h].vertex
}

// FromVertex is the origin vertex of h.
func (m *Mesh) FromVertex(h Halfedge) Vertex {
	return m.halfedges[h.Opposite()].vertex
}

// NextHalfedge follows h around its face loop.
func (m *Mesh) NextHalfedge(h Halfedge) Halfedge {
	return m.halfedges[h].next
}

func (m *Mesh) PrevHalfedge(h Halfedge) Halfedge {
	return m.halfedges[h].prev
}

// Face is the face h belongs to; InvalidFace for boundary half-edges.
func (m *Mesh) Face(h Halfedge) Face {
	return m.halfedges[h].face
}

// IsBoundaryHalfedge reports whether h lies on a boundary loop (has no face).
func (m *Mesh) IsBoundaryHalfedge(h Halfedge) bool {
	return !m.halfedges[h].face.IsValid()
}

// IsBoundaryVertex reports whether v is on the boundary. This relies on the
// invariant that a boundary vertex's half-edge handle points at a boundary
// half-edge; see adjustOutgoingHalfedge.
func (m *Mesh) IsBoundaryVertex(v Vertex) bool {
	h := m.vertices[v].halfedge
	return !h.IsValid() || m.IsBoundaryHalfedge(h)
}

// FindHalfedge looks for the half-edge going from a to b by circulating the
// outgoing half-edges of a. Returns InvalidHalfedge when the two vertices are
// not connected by an edge.
func (m *Mesh) FindHalfedge(a, b Vertex) Halfedge {
	start := m.vertices[a].halfedge
	if !start.IsValid() {
		return InvalidHalfedge
	}
	h := start
	for {
		if m.ToVertex(h) == b {
			return h
		}
		// Rotate clockwise around a.
		h = m.NextHalfedge(h.Opposite())
		if h == start {
			return InvalidHalfedge
		}
	}
}

// IsEdge reports whether an edge between a and b exists.
func (m *Mesh) IsEdge(a, b Vertex) bool {
	return m.FindHalfedge(a, b).IsValid()
}

// IsManifold reports whether the faces incident to v form a single connected
// fan. The vertex is non-manifold if more than one boundary gap exists, i.e.
// more than one outgoing boundary half-edge.
func (m *Mesh) IsManifold(v Vertex) bool {
	n := 0
	start := m.vertices[v].halfedge
	if start.IsValid() {
		h := start
		for {
			if m.IsBoundaryHalfedge(h) {
				n++
			}
			h = m.NextHalfedge(h.Opposite())
			if h == start {
				break
			}
		}
	}
	return n < 2
}

// FaceValence counts the vertices on f's boundary.
func (m *Mesh) FaceValence(f Face) int {
	n := 0
	h0 := m.Halfedge(f)
	h := h0
	for {
		n++
		h = m.NextHalfedge(h)
		if h == h0 {
			break
		}
	}
	return n
}

// FaceVertices collects f's boundary vertices in loop order.
func (m *Mesh) FaceVertices(f Face) []Vertex {
	var vertices []Vertex
	h0 := m.Halfedge(f)
	h := h0
	for {
		vertices = append(vertices, m.ToVertex(h))
		h = m.NextHalfedge(h)
		if h == h0 {
			break
		}
	}
	return vertices
}

// newEdge allocates a half-edge pair between start and end and returns the
// half-edge pointing at end. Connectivity is left for the caller to set up.
func (m *Mesh) newEdge(start, end Vertex) Halfedge {
	h := Halfedge(len(m.halfedges))
	m.halfedges = append(m.halfedges,
		halfedgeRecord{vertex: end, face: InvalidFace, next: InvalidHalfedge, prev: InvalidHalfedge},
		halfedgeRecord{vertex: start, face: InvalidFace, next: InvalidHalfedge, prev: InvalidHalfedge},
	)
	return h
}

func (m *Mesh) newFace(h Halfedge) Face {
	m.faces = append(m.faces, faceRecord{halfedge: h})
	return Face(len(m.faces) - 1)
}

// setNext links h -> next, maintaining the prev pointer.
func (m *Mesh) setNext(h, next Halfedge) {
	m.halfedges[h].next = next
	m.halfedges[next].prev = h
}

// adjustOutgoingHalfedge repoints v's half-edge handle at an outgoing boundary
// half-edge if one exists, restoring the IsBoundaryVertex invariant.
func (m *Mesh) adjustOutgoingHalfedge(v Vertex) {
	start := m.vertices[v].halfedge
	if !start.IsValid() {
		return
	}
	h := start
	for {
		if m.IsBoundaryHalfedge(h) {
			m.vertices[v].halfedge = h
			return
		}
		h = m.NextHalfedge(h.Opposite())
		if h == start {
			return
		}
	}
}

// InsertEdge splits the face shared by h0 and h1 with a new edge between their
// destination vertices. Both half-edges must belong to the same face loop, and
// their destinations must not coincide or be loop-adjacent. The original face
// keeps the loop through h0; the loop through h1 becomes a new face. Returns
// the new half-edge pointing from ToVertex(h0) to ToVertex(h1). All
// connectivity not incident to the two loops is untouched.
func (m *Mesh) InsertEdge(h0, h1 Halfedge) Halfedge {
	v0 := m.ToVertex(h0)
	v1 := m.ToVertex(h1)

	h2 := m.NextHalfedge(h0)
	h3 := m.NextHalfedge(h1)

	h4 := m.newEdge(v0, v1)
	h5 := h4.Opposite()

	f0 := m.Face(h0)
	f1 := m.newFace(h1)
	m.faces[f0].halfedge = h0

	m.setNext(h0, h4)
	m.setNext(h4, h3)
	m.halfedges[h4].face = f0

	m.setNext(h1, h5)
	m.setNext(h5, h2)
	h := h5
	for {
		m.halfedges[h].face = f1
		h = m.NextHalfedge(h)
		if h == h5 {
			break
		}
	}

	return h4
}
