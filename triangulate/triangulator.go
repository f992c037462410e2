// Package triangulate builds constrained Delaunay triangulations on top of the
// half-edge kernel.
//
// Points are inserted one at a time into a mesh that starts as a single large
// triangle enclosing the input. Each insertion splits the face or edge that
// contains the point and restores the Delaunay property with edge flips.
// Segments are then forced into the mesh as protected edges, and finally the
// faces outside the region bounded by those segments are carved away.
//
// All decisions are made with the exact predicates, so the result does not
// depend on rounding luck. Ties (cocircular points) are broken by not flipping.
package triangulate

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/internal/throw"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/predicates"
)

// How far the bounding triangle reaches beyond the input box, in multiples of
// the box size.
const boundsScale = 20

// Accepted coordinate magnitudes. Within this range the highest degree products
// the predicates form, taken over the bounding triangle too, neither overflow
// nor underflow.
const (
	maxCoordinate = 1e60
	minCoordinate = 1e-30
)

// validPoint reports whether every coordinate of p is zero or has a magnitude
// between minCoordinate and maxCoordinate. NaN and infinities are invalid.
func validPoint(p geom.Point3D) bool {
	for _, x := range [3]float64{p.X, p.Y, p.Z} {
		a := math.Abs(x)
		if a != 0 && !(a >= minCoordinate && a <= maxCoordinate) {
			return false
		}
	}
	return true
}

// Triangulator incrementally builds a constrained Delaunay triangulation. It
// is not safe for concurrent use.
type Triangulator struct {
	mesh *mesh.Mesh
	// Projected position of every vertex, indexed by handle
	planar []geom.Point2D
	proj   geom.Projection
	bounds [3]mesh.VertexID
	// Where the next point location walk starts
	hint     mesh.EdgeID
	segments int
	finished bool

	rng *rand.Rand
	log *zap.Logger
}

// New starts a triangulation whose points will lie within box (in projected
// coordinates). A box with a corner outside the accepted coordinate range
// fails with ErrInvalidPoint.
func New(box geom.Box2D, opts ...Option) (*Triangulator, error) {
	if !box.IsEmpty() && !(validPoint(box.Min.Lift(0)) && validPoint(box.Max.Lift(0))) {
		return nil, errors.Wrapf(ErrInvalidPoint, "bounding box %v to %v", box.Min, box.Max)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Triangulator{
		mesh: mesh.New(),
		proj: o.projection,
		rng:  rand.New(rand.NewSource(o.seed)),
		log:  o.logger,
	}

	if box.IsEmpty() {
		box = geom.Box2D{}
	}
	cx := (box.Min.X + box.Max.X) / 2
	cy := (box.Min.Y + box.Max.Y) / 2
	size := box.Max.X - box.Min.X
	if h := box.Max.Y - box.Min.Y; h > size {
		size = h
	}
	if size == 0 {
		size = 1
	}

	corners := [3]geom.Point2D{
		{X: cx - boundsScale*size, Y: cy - size},
		{X: cx + boundsScale*size, Y: cy - size},
		{X: cx, Y: cy + boundsScale*size},
	}
	for i, c := range corners {
		v := t.addVertex(c, t.proj.Lift(c, 0))
		t.mesh.SetVertexType(v, mesh.Bounds)
		t.bounds[i] = v
	}
	t.hint = t.mesh.AddTriangle(t.bounds[0], t.bounds[1], t.bounds[2])

	t.log.Debug("started triangulation",
		zap.Float64("minX", box.Min.X), zap.Float64("minY", box.Min.Y),
		zap.Float64("maxX", box.Max.X), zap.Float64("maxY", box.Max.Y))
	return t, nil
}

// Mesh is the mesh under construction. Until Finish it still contains the
// bounding triangle.
func (t *Triangulator) Mesh() *mesh.Mesh {
	return t.mesh
}

func (t *Triangulator) Projection() geom.Projection {
	return t.proj
}

// Planar is the projected position of a vertex.
func (t *Triangulator) Planar(v mesh.VertexID) geom.Point2D {
	return t.planar[v]
}

func (t *Triangulator) addVertex(q geom.Point2D, p geom.Point3D) mesh.VertexID {
	v := t.mesh.AddVertex(p)
	t.planar = append(t.planar, q)
	if int(v) != len(t.planar)-1 {
		throw.Fatalf("vertex %d created outside the triangulator", len(t.planar)-1)
	}
	return v
}

func (t *Triangulator) orient(a, b, c mesh.VertexID) predicates.Sign {
	return predicates.SignOf(predicates.Orient2D(t.planar[a], t.planar[b], t.planar[c]))
}

func (t *Triangulator) orientPoint(a, b mesh.VertexID, q geom.Point2D) predicates.Sign {
	return predicates.SignOf(predicates.Orient2D(t.planar[a], t.planar[b], q))
}

// InsertPoint adds p to the triangulation and returns its vertex. A point that
// coincides with an existing vertex (after projection) returns that vertex. A
// point outside the bounding triangle, or with a NaN, infinite or out of range
// coordinate, is rejected without changing anything.
func (t *Triangulator) InsertPoint(p geom.Point3D) (mesh.VertexID, error) {
	if t.finished {
		return mesh.NoVertex, ErrFinished
	}
	if !validPoint(p) {
		return mesh.NoVertex, errors.Wrapf(ErrInvalidPoint, "insert %v", p)
	}
	q := t.proj.Project(p)
	loc := t.locate(q)

	switch loc.kind {
	case outside:
		return mesh.NoVertex, errors.Wrapf(ErrOutsideBounds, "insert %v", p)
	case onVertex:
		v := t.mesh.Origin(loc.edge)
		t.log.Debug("duplicate point", zap.Int("vertex", int(v)), zap.Stringer("point", p))
		return v, nil
	}

	v := t.addVertex(q, p)
	var stack mesh.EdgeStack
	m := t.mesh
	switch loc.kind {
	case inFace:
		e0 := loc.edge
		e1 := m.Next(e0)
		e2 := m.Next(e1)
		m.SplitFace(e0, v)
		stack = mesh.EdgeStack{e0, e1, e2}
	case onEdge:
		e := loc.edge
		stack = mesh.EdgeStack{m.Next(e), m.Prev(e)}
		if s := m.Sibling(e); s != mesh.NoEdge {
			stack = append(stack, m.Next(s), m.Prev(s))
		}
		m.SplitEdge(e, v)
	}

	flips := t.legalize(stack)
	t.hint = m.VertexEdge(v)
	t.log.Debug("inserted point",
		zap.Int("vertex", int(v)), zap.Stringer("point", p), zap.Int("flips", flips))
	return v, nil
}

type locationKind int

const (
	outside locationKind = iota
	inFace
	onEdge
	onVertex
)

type location struct {
	kind locationKind
	// inFace: any half-edge of the face. onEdge: the half-edge containing the
	// point. onVertex: a half-edge leaving the vertex.
	edge mesh.EdgeID
}

// locate finds q with a stochastic visibility walk: from the current face,
// step across any edge that has q strictly on its far side, trying the edges
// in random order so that the walk cannot cycle.
func (t *Triangulator) locate(q geom.Point2D) location {
	m := t.mesh
	e := t.hint
	if e == mesh.NoEdge || !m.IsLive(e) {
		faces := m.Faces()
		if len(faces) == 0 {
			throw.Fatalf("point location in an empty mesh")
		}
		e = faces[0]
	}

	limit := 4*m.NumEdges() + 16
walk:
	for steps := 0; steps < limit; steps++ {
		face := [3]mesh.EdgeID{e, m.Next(e), m.Next(m.Next(e))}
		start := t.rng.Intn(3)
		var signs [3]predicates.Sign
		for i := 0; i < 3; i++ {
			h := face[(start+i)%3]
			sign := t.orientPoint(m.Origin(h), m.Dest(h), q)
			if sign == predicates.Negative {
				s := m.Sibling(h)
				if s == mesh.NoEdge {
					return location{kind: outside}
				}
				e = s
				continue walk
			}
			signs[(start+i)%3] = sign
		}

		var zeros []int
		for i, sign := range signs {
			if sign == predicates.Degenerate {
				zeros = append(zeros, i)
			}
		}
		switch len(zeros) {
		case 0:
			return location{kind: inFace, edge: face[0]}
		case 1:
			return location{kind: onEdge, edge: face[zeros[0]]}
		case 2:
			// q lies on two edge lines, so it is their shared corner
			first, second := face[zeros[0]], face[zeros[1]]
			if m.Next(first) == second {
				return location{kind: onVertex, edge: second}
			}
			return location{kind: onVertex, edge: first}
		}
		throw.Fatalf("face %d is degenerate", e)
	}
	throw.Fatalf("point location for %v did not terminate", q)
	return location{}
}

// legalize restores the Delaunay property after an insertion. The stack holds
// edges opposite the new vertex; any of them whose opposite corner lies inside
// the new face's circumcircle is flipped, exposing two more edges opposite the
// new vertex.
func (t *Triangulator) legalize(stack mesh.EdgeStack) int {
	m := t.mesh
	flips := 0
	for !stack.Empty() {
		e := stack.Pop()
		if !t.shouldFlip(e) {
			continue
		}
		s := m.Sibling(e)
		s1, s2 := m.Next(s), m.Prev(s)
		t.flip(e)
		flips++
		stack.Push(s1)
		stack.Push(s2)
	}
	return flips
}

// shouldFlip reports whether e is an unprotected interior edge that fails the
// empty circle test. Cocircular quads are left alone.
func (t *Triangulator) shouldFlip(e mesh.EdgeID) bool {
	m := t.mesh
	s := m.Sibling(e)
	if s == mesh.NoEdge || m.IsProtected(e) {
		return false
	}
	a, b := m.Origin(e), m.Dest(e)
	c := m.Origin(m.Prev(e))
	d := m.Origin(m.Prev(s))
	inside := predicates.SignOf(predicates.InCircle(t.planar[a], t.planar[b], t.planar[c], t.planar[d]))
	return inside == predicates.Positive && t.convex(e)
}

// convex reports whether the two faces around e form a strictly convex
// quadrilateral, which is exactly when e can be flipped.
func (t *Triangulator) convex(e mesh.EdgeID) bool {
	m := t.mesh
	s := m.Sibling(e)
	if s == mesh.NoEdge {
		return false
	}
	a, b := m.Origin(e), m.Dest(e)
	c := m.Origin(m.Prev(e))
	d := m.Origin(m.Prev(s))
	return t.orient(c, d, a)*t.orient(c, d, b) == predicates.Negative
}

func (t *Triangulator) flip(e mesh.EdgeID) {
	if ce := t.log.Check(zap.DebugLevel, "flip"); ce != nil {
		ce.Write(zap.String("edge", t.mesh.Describe(e)))
	}
	if err := t.mesh.Flip(e); err != nil {
		throw.Fatalf("flip %d: %v", e, err)
	}
}
