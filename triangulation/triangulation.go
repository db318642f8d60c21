// Package triangulation converts the polygon faces of a surface mesh into
// triangles, choosing for each face the decomposition that is globally optimal
// under the selected objective rather than an arbitrary fan or ear-clipping
// split.
//
// For a face with boundary vertices 0..n-1 the optimal decomposition is found
// by interval dynamic programming over all diagonal choices (O(n³) time,
// O(n²) space per face), then materialized by inserting the winning diagonals
// into the mesh. Faces are small in practice, so the cubic table is cheap; the
// scheme is not intended for polygons with thousands of sides.
//
// All scratch state lives in a per-call value, so independent meshes (or faces
// guaranteed to share no vertices) may be processed in parallel. Faces of a
// single mesh must be processed sequentially: inserting a diagonal mutates
// connectivity that later boundary walks depend on.
package triangulation

import (
	"errors"
	"math"

	"github.com/liwind/pmp-library/surfacemesh"
)

// An Objective selects the quality metric that the triangulation optimizes.
type Objective int

const (
	// MinArea minimizes the sum of squared triangle areas.
	MinArea Objective = iota
	// MaxAngle maximizes the smallest angle appearing anywhere in the
	// triangulation, by minimizing the largest corner cosine.
	MaxAngle
)

// infeasible marks triangles that must never be chosen, e.g. because all three
// of their edges already exist in the mesh and materializing them would create
// a duplicate edge.
const infeasible = math.MaxFloat64

// Triangulate splits every non-triangle face of the mesh. Faces with
// invalid-input failures are skipped and their errors collected; an internal
// inconsistency aborts immediately, since the mesh can no longer be trusted.
func Triangulate(mesh *surfacemesh.Mesh, objective Objective) error {
	var errs []error
	// Newly inserted faces are appended while iterating; they are triangles,
	// which the per-face call treats as a no-op.
	for f := surfacemesh.Face(0); int(f) < mesh.FaceCount(); f++ {
		if err := TriangulateFace(mesh, f, objective); err != nil {
			if _, ok := err.(InternalError); ok {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TriangulateFace splits the single face f into triangles. Faces with three or
// fewer boundary vertices are left alone. The face's boundary must be manifold;
// if it is not, an InvalidInputError is returned and the mesh is unchanged.
func TriangulateFace(mesh *surfacemesh.Mesh, f surfacemesh.Face, objective Objective) (err error) {
	defer func() {
		err = handleRecover(recover())
	}()
	newTriangulator(mesh, objective).triangulate(f)
	return nil
}

// A triangulator holds the scratch state for triangulating one face: the
// boundary sequence and the weight/split tables. It is built fresh per call
// and discarded afterwards, so no state carries across faces.
type triangulator struct {
	mesh *surfacemesh.Mesh

	// Triangle badness under the selected objective, and how sub-polygon
	// weights combine with it. Resolved once per call so the cubic inner loop
	// does not branch on the objective.
	triangleWeight func(pa, pb, pc surfacemesh.Point) float64
	merge          func(left, w, right float64) float64

	// Boundary sequence: halfedges[i] is the boundary half-edge whose
	// destination is vertices[i].
	halfedges []surfacemesh.Halfedge
	vertices  []surfacemesh.Vertex

	// weight[i][j] is the minimal objective value for triangulating boundary
	// positions i..j; split[i][j] the interior position achieving it (-1 for
	// adjacent pairs).
	weight [][]float64
	split  [][]int
}

func newTriangulator(mesh *surfacemesh.Mesh, objective Objective) *triangulator {
	t := &triangulator{mesh: mesh}
	switch objective {
	case MinArea:
		t.triangleWeight = squaredAreaWeight
		t.merge = func(left, w, right float64) float64 { return left + w + right }
	case MaxAngle:
		t.triangleWeight = maxCosineWeight
		t.merge = func(left, w, right float64) float64 { return math.Max(left, math.Max(w, right)) }
	default:
		internalf("unrecognized triangulation objective: %d", objective)
	}
	return t
}

func (t *triangulator) triangulate(f surfacemesh.Face) {
	t.collectBoundary(f)

	// Already a triangle, or degenerate; nothing to do.
	n := len(t.halfedges)
	if n <= 3 {
		return
	}

	t.buildTables(n)
	t.replay(n)
}

// collectBoundary walks f's boundary once, collecting half-edges and their
// destination vertices, and validates that every boundary vertex is manifold
// before anything is mutated.
func (t *triangulator) collectBoundary(f surfacemesh.Face) {
	h0 := t.mesh.Halfedge(f)
	h := h0
	for {
		v := t.mesh.ToVertex(h)
		if !t.mesh.IsManifold(v) {
			invalidf("non-manifold vertex %d on polygon boundary", v)
		}
		t.halfedges = append(t.halfedges, h)
		t.vertices = append(t.vertices, v)
		h = t.mesh.NextHalfedge(h)
		if h == h0 {
			return
		}
	}
}

// buildTables fills the weight and split tables by classic interval dynamic
// programming, generalized over the objective's merge function.
func (t *triangulator) buildTables(n int) {
	t.weight = make([][]float64, n)
	t.split = make([][]int, n)
	for i := 0; i < n; i++ {
		t.weight[i] = make([]float64, n)
		t.split[i] = make([]int, n)
		for j := 0; j < n; j++ {
			t.weight[i][j] = infeasible
			t.split[i][j] = -1
		}
	}

	// A single boundary edge needs no triangle.
	for i := 0; i+1 < n; i++ {
		t.weight[i][i+1] = 0
	}

	// Chains of increasing length; k is the chain's end.
	for length := 2; length < n; length++ {
		for i := 0; i+length < n; i++ {
			k := i + length
			wmin := math.MaxFloat64
			imin := -1
			for m := i + 1; m < k; m++ {
				w := t.merge(t.weight[i][m], t.computeWeight(i, m, k), t.weight[m][k])
				// Strict comparison keeps the first split on ties.
				if w < wmin {
					wmin = w
					imin = m
				}
			}
			t.weight[i][k] = wmin
			t.split[i][k] = imin
		}
	}
}

// computeWeight is the badness of the candidate triangle over boundary
// positions (i, m, k).
func (t *triangulator) computeWeight(i, m, k int) float64 {
	a := t.vertices[i]
	b := t.vertices[m]
	c := t.vertices[k]

	// If all three edges already exist, introducing this triangle would create
	// a duplicate edge and an invalid triangulation. Exclude it outright.
	if t.mesh.IsEdge(a, b) && t.mesh.IsEdge(b, c) && t.mesh.IsEdge(c, a) {
		return infeasible
	}

	return t.triangleWeight(t.mesh.Position(a), t.mesh.Position(b), t.mesh.Position(c))
}

// squaredAreaWeight is proportional to the squared triangle area; skipping the
// square root keeps it cheap without changing the minimizer.
func squaredAreaWeight(pa, pb, pc surfacemesh.Point) float64 {
	return pb.Sub(pa).Cross(pc.Sub(pa)).SqrNorm()
}

// maxCosineWeight is the largest cosine over the triangle's three corners.
// Cosine decreases with angle, so the smallest angle dominates and minimizing
// this weight maximizes the triangle's smallest angle.
func maxCosineWeight(pa, pb, pc surfacemesh.Point) float64 {
	cosa := pb.Sub(pa).Normalize().Dot(pc.Sub(pa).Normalize())
	cosb := pa.Sub(pb).Normalize().Dot(pc.Sub(pb).Normalize())
	cosc := pa.Sub(pc).Normalize().Dot(pb.Sub(pc).Normalize())
	return math.Max(cosa, math.Max(cosb, cosc))
}

// replay walks the split table top-down, inserting the diagonals that
// materialize the optimal triangulation. An explicit work list avoids
// recursion-depth concerns.
func (t *triangulator) replay(n int) {
	type interval struct{ start, end int }
	todo := make([]interval, 0, n)
	todo = append(todo, interval{0, n - 1})
	for len(todo) > 0 {
		iv := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if iv.end-iv.start < 2 {
			continue
		}
		split := t.split[iv.start][iv.end]
		if split < 0 {
			internalf("no split recorded for boundary interval [%d,%d]", iv.start, iv.end)
		}

		t.insertEdge(iv.start, split)
		t.insertEdge(split, iv.end)

		todo = append(todo, interval{iv.start, split}, interval{split, iv.end})
	}
}

// insertEdge materializes the diagonal between boundary positions a and b. If
// the corresponding mesh edge already exists nothing needs to be done.
// Otherwise the face loop reachable from a's boundary half-edge is searched
// for b's vertex (and symmetrically from b's for a's) and the face is split
// there. Finding no insertion point means the split table and the mesh's
// actual topology have diverged, which is a defect, not a condition to paper
// over: skipping would leave a partial triangulation indistinguishable from
// success.
func (t *triangulator) insertEdge(a, b int) {
	h0 := t.halfedges[a]
	h1 := t.halfedges[b]
	v0 := t.vertices[a]
	v1 := t.vertices[b]

	if t.mesh.FindHalfedge(v0, v1).IsValid() {
		return
	}

	// Can we reach v1 from h0?
	for h := t.mesh.NextHalfedge(h0); ; h = t.mesh.NextHalfedge(h) {
		if t.mesh.ToVertex(h) == v1 {
			t.mesh.InsertEdge(h0, h)
			return
		}
		if h == h0 {
			break
		}
	}

	// Can we reach v0 from h1?
	for h := t.mesh.NextHalfedge(h1); ; h = t.mesh.NextHalfedge(h) {
		if t.mesh.ToVertex(h) == v0 {
			t.mesh.InsertEdge(h1, h)
			return
		}
		if h == h1 {
			break
		}
	}

	internalf("no valid insertion point for diagonal %d-%d", v0, v1)
}
