// Package mesh is a half-edge topology kernel for triangle meshes.
//
// The mesh owns two arenas, one of vertices and one of half-edges, and every
// relation between them is a handle into those arenas. Each face is a cycle of
// three half-edges linked by Next. A half-edge's Sibling is the opposite
// half-edge of the neighbouring face, or NoEdge on the boundary.
//
// The kernel keeps topology only. It evaluates no geometric predicates, so
// callers are responsible for geometric validity (for example, only flipping
// edges whose quadrilateral is convex).
//
// A Mesh is not safe for concurrent use.
package mesh

import (
	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/internal/throw"
)

type vertex struct {
	pos  *geom.Point3D
	typ  VertexType
	he   EdgeID
	pair VertexID
}

type halfEdge struct {
	origin  VertexID
	next    EdgeID
	sibling EdgeID
	typ     EdgeType
	flags   Flag
}

// HalfEdge is a read-only copy of a half-edge record.
type HalfEdge struct {
	Origin  VertexID
	Next    EdgeID
	Sibling EdgeID
	Type    EdgeType
	Flags   Flag
}

type Mesh struct {
	vertices []vertex
	edges    []halfEdge
}

func New() *Mesh {
	return &Mesh{}
}

// NumVertices is the size of the vertex arena, deleted vertices included.
func (m *Mesh) NumVertices() int {
	return len(m.vertices)
}

// NumEdges is the size of the half-edge arena, unlinked half-edges included.
func (m *Mesh) NumEdges() int {
	return len(m.edges)
}

// AddVertex stores a copy of p.
func (m *Mesh) AddVertex(p geom.Point3D) VertexID {
	return m.AddVertexShared(&p)
}

// AddVertexShared stores p itself, so the vertex position and the caller's
// point are the same storage. Moving one moves the other.
func (m *Mesh) AddVertexShared(p *geom.Point3D) VertexID {
	m.vertices = append(m.vertices, vertex{pos: p, typ: Interior, he: NoEdge, pair: NoVertex})
	return VertexID(len(m.vertices) - 1)
}

func (m *Mesh) newEdge(origin VertexID) EdgeID {
	m.edges = append(m.edges, halfEdge{origin: origin, next: NoEdge, sibling: NoEdge})
	return EdgeID(len(m.edges) - 1)
}

// AddTriangle creates a face a, b, c from three fresh half-edges and returns
// the half-edge a->b. Siblings are left unset.
func (m *Mesh) AddTriangle(a, b, c VertexID) EdgeID {
	m.vertex(a)
	m.vertex(b)
	m.vertex(c)
	ab := m.newEdge(a)
	bc := m.newEdge(b)
	ca := m.newEdge(c)
	m.edges[ab].next = bc
	m.edges[bc].next = ca
	m.edges[ca].next = ab
	for _, e := range [...]EdgeID{ab, bc, ca} {
		v := m.edges[e].origin
		if m.vertices[v].he == NoEdge {
			m.vertices[v].he = e
		}
	}
	return ab
}

func (m *Mesh) vertex(v VertexID) *vertex {
	if v < 0 || int(v) >= len(m.vertices) {
		throw.Fatalf("vertex %d out of range [0, %d)", v, len(m.vertices))
	}
	return &m.vertices[v]
}

func (m *Mesh) edge(e EdgeID) *halfEdge {
	if e < 0 || int(e) >= len(m.edges) {
		throw.Fatalf("half-edge %d out of range [0, %d)", e, len(m.edges))
	}
	return &m.edges[e]
}

// Half-edge accessors

func (m *Mesh) Origin(e EdgeID) VertexID {
	return m.edge(e).origin
}

// Dest is the origin of the next half-edge.
func (m *Mesh) Dest(e EdgeID) VertexID {
	return m.Origin(m.Next(e))
}

func (m *Mesh) Next(e EdgeID) EdgeID {
	return m.edge(e).next
}

// Prev walks the face cycle until it returns to e. A cycle that does not
// return within the size of the arena is a corrupted mesh.
func (m *Mesh) Prev(e EdgeID) EdgeID {
	current := e
	for steps := 0; steps <= len(m.edges); steps++ {
		next := m.Next(current)
		if next == e {
			return current
		}
		if next == NoEdge {
			throw.Fatalf("half-edge %d: next cycle is broken at %d", e, current)
		}
		current = next
	}
	throw.Fatalf("half-edge %d: next cycle does not return", e)
	return NoEdge
}

func (m *Mesh) Sibling(e EdgeID) EdgeID {
	return m.edge(e).sibling
}

func (m *Mesh) IsBoundary(e EdgeID) bool {
	return m.edge(e).sibling == NoEdge
}

// IsLive is false for half-edges removed from the mesh.
func (m *Mesh) IsLive(e EdgeID) bool {
	return m.edge(e).origin != NoVertex
}

func (m *Mesh) Edge(e EdgeID) HalfEdge {
	he := m.edge(e)
	return HalfEdge{
		Origin:  he.origin,
		Next:    he.next,
		Sibling: he.sibling,
		Type:    he.typ,
		Flags:   he.flags,
	}
}

// SetSibling sets e's sibling only. The reverse link is the caller's job; see
// Link.
func (m *Mesh) SetSibling(e, s EdgeID) {
	if s != NoEdge {
		m.edge(s)
	}
	m.edge(e).sibling = s
}

// Link makes e and s siblings of each other.
func (m *Mesh) Link(e, s EdgeID) {
	m.SetSibling(e, s)
	m.SetSibling(s, e)
}

func (m *Mesh) SetNext(e, n EdgeID) {
	if n != NoEdge {
		m.edge(n)
	}
	m.edge(e).next = n
}

func (m *Mesh) SetOrigin(e EdgeID, v VertexID) {
	m.vertex(v)
	m.edge(e).origin = v
}

// Edge types

func (m *Mesh) EdgeType(e EdgeID) EdgeType {
	return m.edge(e).typ
}

// SetType sets the type of e and of its sibling, since both halves describe
// the same undirected edge.
func (m *Mesh) SetType(e EdgeID, t EdgeType) {
	he := m.edge(e)
	he.typ = t
	if he.sibling != NoEdge {
		m.edge(he.sibling).typ = t
	}
}

func (m *Mesh) IsType(e EdgeID, t EdgeType) bool {
	return m.edge(e).typ == t
}

// Constrain marks the edge as a constraint on both halves.
func (m *Mesh) Constrain(e EdgeID) {
	m.SetType(e, Constraint)
}

// IsProtected reports whether the edge may not be removed by a flip.
func (m *Mesh) IsProtected(e EdgeID) bool {
	t := m.edge(e).typ
	return t == Constraint || t == BoundaryEdge
}

// Flags. Flag and Unflag touch only the given half-edge, while FlagEdge and
// UnflagEdge touch both halves.

func (m *Mesh) Flag(e EdgeID, f Flag) {
	m.edge(e).flags |= f
}

func (m *Mesh) Unflag(e EdgeID, f Flag) {
	m.edge(e).flags &^= f
}

func (m *Mesh) IsFlagged(e EdgeID, f Flag) bool {
	return m.edge(e).flags&f != 0
}

func (m *Mesh) FlagEdge(e EdgeID, f Flag) {
	m.Flag(e, f)
	if s := m.Sibling(e); s != NoEdge {
		m.Flag(s, f)
	}
}

func (m *Mesh) UnflagEdge(e EdgeID, f Flag) {
	m.Unflag(e, f)
	if s := m.Sibling(e); s != NoEdge {
		m.Unflag(s, f)
	}
}

// ClearFlags resets f on every half-edge.
func (m *Mesh) ClearFlags(f Flag) {
	for i := range m.edges {
		m.edges[i].flags &^= f
	}
}

// Vertex accessors

func (m *Mesh) Position(v VertexID) geom.Point3D {
	return *m.vertex(v).pos
}

// SetPosition writes through to the position storage, which may be shared
// with other meshes or with the caller.
func (m *Mesh) SetPosition(v VertexID, p geom.Point3D) {
	*m.vertex(v).pos = p
}

func (m *Mesh) VertexType(v VertexID) VertexType {
	return m.vertex(v).typ
}

func (m *Mesh) SetVertexType(v VertexID, t VertexType) {
	m.vertex(v).typ = t
}

// IsVertexType applies the VertexType.Is equivalences.
func (m *Mesh) IsVertexType(v VertexID, t VertexType) bool {
	return m.vertex(v).typ.Is(t)
}

// VertexEdge is one half-edge leaving v, or NoEdge for an isolated vertex.
func (m *Mesh) VertexEdge(v VertexID) EdgeID {
	return m.vertex(v).he
}

func (m *Mesh) SetVertexEdge(v VertexID, e EdgeID) {
	if e != NoEdge {
		m.edge(e)
	}
	m.vertex(v).he = e
}

// Pair is the symmetry partner of v, or NoVertex.
func (m *Mesh) Pair(v VertexID) VertexID {
	return m.vertex(v).pair
}

// SetPair pairs v and w with each other.
func (m *Mesh) SetPair(v, w VertexID) {
	m.vertex(v).pair = w
	if w != NoVertex {
		m.vertex(w).pair = v
	}
}

// Cloning

// CloneDeep copies the topology and the positions.
func (m *Mesh) CloneDeep() *Mesh {
	clone := m.CloneShared()
	for i := range clone.vertices {
		p := *clone.vertices[i].pos
		clone.vertices[i].pos = &p
	}
	return clone
}

// CloneShared copies the topology but keeps the positions shared, so moving a
// vertex in either mesh moves it in both.
func (m *Mesh) CloneShared() *Mesh {
	return &Mesh{
		vertices: append([]vertex(nil), m.vertices...),
		edges:    append([]halfEdge(nil), m.edges...),
	}
}
