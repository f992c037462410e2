package triangulate

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/osuushi/trimesh/internal/throw"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/predicates"
)

// InsertConstraint forces the segment a-b into the triangulation as a
// Constraint edge. Vertices lying exactly on the segment split it into
// several constraint edges. If the segment would cross an existing protected
// edge, ErrConstraintsCross is returned and the mesh is left unchanged.
func (t *Triangulator) InsertConstraint(a, b mesh.VertexID) error {
	return t.insertSegment(a, b, mesh.Constraint)
}

// InsertBoundary is InsertConstraint for edges of the outer boundary. They are
// protected the same way but typed BoundaryEdge.
func (t *Triangulator) InsertBoundary(a, b mesh.VertexID) error {
	return t.insertSegment(a, b, mesh.BoundaryEdge)
}

// A piece of a segment between two vertices with no vertex in between.
type piece struct {
	from, to mesh.VertexID
}

func (t *Triangulator) insertSegment(a, b mesh.VertexID, typ mesh.EdgeType) error {
	if t.finished {
		return ErrFinished
	}
	for _, v := range []mesh.VertexID{a, b} {
		if err := t.mesh.CheckVertex(v); err != nil {
			return errors.Wrap(err, "insert segment")
		}
		if vt := t.mesh.VertexType(v); vt == mesh.Bounds || vt == mesh.Deleted {
			return errors.Wrapf(ErrInvalidSegment, "vertex %d is %s", v, vt)
		}
	}
	if a == b {
		return errors.Wrapf(ErrInvalidSegment, "segment %d-%d has no length", a, b)
	}

	// Check the whole segment before touching anything, so that a failure
	// partway along leaves the mesh as it was.
	var pieces []piece
	for from := a; from != b; {
		_, to, err := t.trace(from, b)
		if err != nil {
			return errors.Wrapf(err, "segment %d-%d", a, b)
		}
		pieces = append(pieces, piece{from, to})
		from = to
	}

	for _, p := range pieces {
		t.forceEdge(p, typ)
	}
	t.segments++
	t.log.Debug("inserted segment",
		zap.Int("from", int(a)), zap.Int("to", int(b)),
		zap.Stringer("type", typ), zap.Int("pieces", len(pieces)))
	return nil
}

// trace follows the segment from -> to through the mesh without changing it.
// It returns the edges the segment crosses up to the first vertex it reaches,
// which is either to or a vertex lying exactly on the segment.
func (t *Triangulator) trace(from, to mesh.VertexID) ([]mesh.EdgeID, mesh.VertexID, error) {
	m := t.mesh
	pf, pt := t.planar[from], t.planar[to]

	// Find the face around from that the segment leaves through.
	cur := mesh.NoEdge
	for _, e := range m.Outgoing(from) {
		x := m.Dest(e)
		if x == to {
			return nil, to, nil
		}
		ox := t.orient(from, to, x)
		if ox == predicates.Degenerate && t.planar[x].Sub(pf).Dot(pt.Sub(pf)) > 0 {
			return nil, x, nil
		}
		y := m.Origin(m.Prev(e))
		if ox == predicates.Negative && t.orient(from, to, y) == predicates.Positive {
			cur = m.Next(e)
		}
	}
	if cur == mesh.NoEdge {
		throw.Fatalf("segment %d-%d: no face around %d faces toward %d", from, to, from, to)
	}

	// cur always runs from the right side of the segment to the left side.
	var crossed []mesh.EdgeID
	for steps := 0; steps <= m.NumEdges(); steps++ {
		if m.IsProtected(cur) {
			return nil, mesh.NoVertex, errors.Wrapf(ErrConstraintsCross,
				"%d-%d crosses %d-%d", from, to, m.Origin(cur), m.Dest(cur))
		}
		crossed = append(crossed, cur)

		s := m.Sibling(cur)
		if s == mesh.NoEdge {
			throw.Fatalf("segment %d-%d leaves the mesh through %d", from, to, cur)
		}
		z := m.Origin(m.Prev(s))
		if z == to {
			return crossed, to, nil
		}
		switch t.orient(from, to, z) {
		case predicates.Degenerate:
			return crossed, z, nil
		case predicates.Positive:
			// z is on the left, so the segment leaves between the right corner and z
			cur = m.Next(s)
		default:
			cur = m.Prev(s)
		}
	}
	throw.Fatalf("segment %d-%d: trace did not terminate", from, to)
	return nil, mesh.NoVertex, nil
}

// forceEdge makes the edge between the ends of p exist by flipping away every
// edge that crosses it, then marks it and restores the Delaunay property
// around the edges the flips created.
func (t *Triangulator) forceEdge(p piece, typ mesh.EdgeType) {
	m := t.mesh

	// Tracing again rather than reusing the checked plan, since restoring
	// Delaunay after an earlier piece may have flipped these edges.
	queue, to, err := t.trace(p.from, p.to)
	if err != nil || to != p.to {
		throw.Fatalf("segment piece %d-%d changed while inserting: %v", p.from, p.to, err)
	}

	var created []mesh.EdgeID
	stalled := 0
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]
		if !t.convex(e) {
			queue = append(queue, e)
			stalled++
			if stalled > len(queue)*len(queue)+m.NumEdges() {
				throw.Fatalf("segment piece %d-%d: no crossing edge can be flipped", p.from, p.to)
			}
			continue
		}
		stalled = 0
		t.flip(e)
		if t.crosses(e, p.from, p.to) {
			queue = append(queue, e)
		} else {
			created = append(created, e)
		}
	}

	edge := m.FindEdge(p.from, p.to)
	if edge == mesh.NoEdge {
		throw.Fatalf("segment piece %d-%d missing after flips", p.from, p.to)
	}
	// A boundary insertion does not downgrade an existing constraint.
	if !(typ == mesh.BoundaryEdge && m.IsType(edge, mesh.Constraint)) {
		m.SetType(edge, typ)
	}

	var stack mesh.EdgeStack
	for _, e := range created {
		stack.Push(e)
		stack.Push(m.Next(e))
		stack.Push(m.Prev(e))
		if s := m.Sibling(e); s != mesh.NoEdge {
			stack.Push(m.Next(s))
			stack.Push(m.Prev(s))
		}
	}
	for !stack.Empty() {
		e := stack.Pop()
		if !t.shouldFlip(e) {
			continue
		}
		s := m.Sibling(e)
		around := [4]mesh.EdgeID{m.Next(e), m.Prev(e), m.Next(s), m.Prev(s)}
		t.flip(e)
		for _, h := range around {
			stack.Push(h)
		}
	}
	t.hint = edge
}

// crosses reports whether edge e properly crosses the segment from-to. Edges
// sharing an endpoint with the segment do not cross it.
func (t *Triangulator) crosses(e mesh.EdgeID, from, to mesh.VertexID) bool {
	u, w := t.mesh.Origin(e), t.mesh.Dest(e)
	if u == from || u == to || w == from || w == to {
		return false
	}
	return t.orient(from, to, u)*t.orient(from, to, w) == predicates.Negative &&
		t.orient(u, w, from)*t.orient(u, w, to) == predicates.Negative
}
