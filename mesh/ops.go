package mesh

import (
	"github.com/pkg/errors"

	"github.com/osuushi/trimesh/geom"
)

// FromTriangles builds a mesh from a position list and counterclockwise index
// triples, pairing siblings between triangles that share an edge. Vertex types
// are classified as Boundary or Interior afterwards.
func FromTriangles(points []geom.Point3D, tris [][3]int) (*Mesh, error) {
	m := New()
	for _, p := range points {
		m.AddVertex(p)
	}

	directed := make(map[[2]VertexID]EdgeID, len(tris)*3)
	for i, tri := range tris {
		for _, index := range tri {
			if index < 0 || index >= len(points) {
				return nil, errors.Wrapf(ErrInvalidHandle, "triangle %d: vertex index %d out of range [0, %d)", i, index, len(points))
			}
		}
		a, b, c := VertexID(tri[0]), VertexID(tri[1]), VertexID(tri[2])
		if a == b || b == c || c == a {
			return nil, errors.Errorf("triangle %d repeats a vertex: %v", i, tri)
		}
		for _, key := range [][2]VertexID{{a, b}, {b, c}, {c, a}} {
			if _, ok := directed[key]; ok {
				return nil, errors.Wrapf(ErrNonManifold, "triangle %d: half-edge %d->%d already used", i, key[0], key[1])
			}
		}

		e := m.AddTriangle(a, b, c)
		for _, he := range [...]EdgeID{e, m.Next(e), m.Next(m.Next(e))} {
			key := [2]VertexID{m.Origin(he), m.Dest(he)}
			directed[key] = he
			if s, ok := directed[[2]VertexID{key[1], key[0]}]; ok {
				m.Link(he, s)
			}
		}
	}

	m.Tidy()
	m.ClassifyVertices()
	return m, nil
}

// Flip replaces the diagonal of the quadrilateral formed by the two faces
// around e with the other diagonal. If e runs a->b with c opposite in its face
// and d opposite in its sibling's face, afterwards e runs d->c and its sibling
// c->d. Only the six half-edges of the two faces change.
//
// The quadrilateral must be strictly convex; the kernel does not check.
func (m *Mesh) Flip(e EdgeID) error {
	if err := m.CheckEdge(e); err != nil {
		return err
	}
	s := m.Sibling(e)
	if s == NoEdge {
		return errors.Wrapf(ErrBoundaryEdge, "flip %d", e)
	}
	if m.IsProtected(e) {
		return errors.Wrapf(ErrProtectedEdge, "flip %d (%s)", e, m.EdgeType(e))
	}

	e1 := m.Next(e)
	e2 := m.Next(e1)
	s1 := m.Next(s)
	s2 := m.Next(s1)

	a := m.Origin(e)
	b := m.Origin(s)
	c := m.Origin(e2)
	d := m.Origin(s2)

	m.edges[e].origin = d
	m.edges[e].next = e2
	m.edges[e2].next = s1
	m.edges[s1].next = e

	m.edges[s].origin = c
	m.edges[s].next = s2
	m.edges[s2].next = e1
	m.edges[e1].next = s

	if m.vertices[a].he == e {
		m.vertices[a].he = s1
	}
	if m.vertices[b].he == s {
		m.vertices[b].he = e1
	}
	return nil
}

// SplitFace inserts v into the face containing f, replacing it with three
// faces around v. The original half-edges keep their faces' outer edges. The
// returned spokes leave v toward the origins of f, Next(f) and Prev(f).
func (m *Mesh) SplitFace(f EdgeID, v VertexID) [3]EdgeID {
	e0 := f
	e1 := m.Next(e0)
	e2 := m.Next(e1)
	a, b, c := m.Origin(e0), m.Origin(e1), m.Origin(e2)
	m.vertex(v)

	bv, va := m.newEdge(b), m.newEdge(v)
	cv, vb := m.newEdge(c), m.newEdge(v)
	av, vc := m.newEdge(a), m.newEdge(v)

	m.edges[e0].next, m.edges[bv].next, m.edges[va].next = bv, va, e0
	m.edges[e1].next, m.edges[cv].next, m.edges[vb].next = cv, vb, e1
	m.edges[e2].next, m.edges[av].next, m.edges[vc].next = av, vc, e2

	m.Link(bv, vb)
	m.Link(cv, vc)
	m.Link(av, va)

	m.vertices[v].he = va
	return [3]EdgeID{va, vb, vc}
}

// SplitEdge inserts v on the edge e (a->b). An interior edge's two faces
// become four; a boundary edge's face becomes two and v becomes a Boundary
// vertex. Both halves of the split edge keep its type. Afterwards e runs a->v,
// and the returned half-edge runs v->b.
func (m *Mesh) SplitEdge(e EdgeID, v VertexID) EdgeID {
	m.vertex(v)
	s := m.Sibling(e)
	typ := m.EdgeType(e)

	e1 := m.Next(e)
	e2 := m.Next(e1)
	c := m.Origin(e2)

	vc, cv := m.newEdge(v), m.newEdge(c)
	vb := m.newEdge(v)
	m.edges[vb].typ = typ

	m.edges[e].next, m.edges[vc].next, m.edges[e2].next = vc, e2, e
	m.edges[vb].next, m.edges[e1].next, m.edges[cv].next = e1, cv, vb
	m.Link(vc, cv)
	m.vertices[v].he = vb

	if s == NoEdge {
		if m.vertices[v].typ.Is(Interior) {
			m.vertices[v].typ = Boundary
		}
		return vb
	}

	s1 := m.Next(s)
	s2 := m.Next(s1)
	d := m.Origin(s2)

	vd, dv := m.newEdge(v), m.newEdge(d)
	va := m.newEdge(v)
	m.edges[va].typ = typ

	m.edges[s].next, m.edges[vd].next, m.edges[s2].next = vd, s2, s
	m.edges[va].next, m.edges[s1].next, m.edges[dv].next = s1, dv, va
	m.Link(vd, dv)

	// e now ends at v, so its sibling is the new v->a. Likewise for s.
	m.Link(e, va)
	m.Link(s, vb)
	return vb
}

// RemoveFace unlinks the three half-edges of the face containing e. Their
// siblings become boundary half-edges. Vertices left without any half-edge
// become Deleted.
func (m *Mesh) RemoveFace(e EdgeID) {
	face := [3]EdgeID{e, m.Next(e), m.Next(m.Next(e))}

	// Re-point vertices at a surviving outgoing half-edge first, while the
	// neighbourhood is still linked.
	var orphans []VertexID
	for i, he := range face {
		v := m.Origin(he)
		if m.vertices[v].he != he {
			continue
		}
		replacement := NoEdge
		if s := m.Sibling(face[(i+2)%3]); s != NoEdge {
			replacement = s
		} else if s := m.Sibling(he); s != NoEdge {
			replacement = m.Next(s)
		}
		m.vertices[v].he = replacement
		if replacement == NoEdge {
			orphans = append(orphans, v)
		}
	}

	for _, he := range face {
		if s := m.Sibling(he); s != NoEdge {
			m.edges[s].sibling = NoEdge
		}
	}
	for _, he := range face {
		m.edges[he] = halfEdge{origin: NoVertex, next: NoEdge, sibling: NoEdge}
	}

	m.repairOrphans(orphans)
}

// repairOrphans finds another half-edge for live vertices that lost theirs,
// or marks them Deleted. Vertices that lose their only local neighbour may
// still have faces elsewhere (two regions touching at a vertex), hence the
// scan.
func (m *Mesh) repairOrphans(orphans []VertexID) {
	if len(orphans) == 0 {
		return
	}
	pending := make(map[VertexID]bool, len(orphans))
	for _, v := range orphans {
		pending[v] = true
	}
	for e := range m.edges {
		origin := m.edges[e].origin
		if origin != NoVertex && pending[origin] {
			m.vertices[origin].he = EdgeID(e)
			delete(pending, origin)
		}
	}
	for v := range pending {
		m.vertices[v].typ = Deleted
	}
}

// Tidy re-points every vertex at a live outgoing half-edge, preferring a
// boundary one so that walks around boundary vertices can start at the
// boundary. Vertices without any half-edge become Deleted.
func (m *Mesh) Tidy() {
	best := make([]EdgeID, len(m.vertices))
	for i := range best {
		best[i] = NoEdge
	}
	for e := range m.edges {
		he := &m.edges[e]
		if he.origin == NoVertex {
			continue
		}
		if best[he.origin] == NoEdge || he.sibling == NoEdge {
			best[he.origin] = EdgeID(e)
		}
	}
	for v := range m.vertices {
		m.vertices[v].he = best[v]
		if best[v] == NoEdge {
			m.vertices[v].typ = Deleted
		}
	}
}

// ClassifyVertices sets every live vertex to Boundary if it has a boundary
// half-edge and Interior otherwise. Specialised types that count as the
// right kind (Translated, XSection) are kept. Bounds vertices are left alone.
func (m *Mesh) ClassifyVertices() {
	onBoundary := make([]bool, len(m.vertices))
	for e := range m.edges {
		he := &m.edges[e]
		if he.origin != NoVertex && he.sibling == NoEdge {
			onBoundary[he.origin] = true
			onBoundary[m.edges[he.next].origin] = true
		}
	}
	for v := range m.vertices {
		vert := &m.vertices[v]
		if vert.he == NoEdge || vert.typ == Bounds || vert.typ == Deleted {
			continue
		}
		want := Interior
		if onBoundary[v] {
			want = Boundary
		}
		if !vert.typ.Is(want) {
			vert.typ = want
		}
	}
}
