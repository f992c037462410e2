package mesh

import (
	"math"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/internal/throw"
)

// Faces returns one half-edge per face: the lowest handle in each cycle.
func (m *Mesh) Faces() []EdgeID {
	var faces []EdgeID
	for i := range m.edges {
		e := EdgeID(i)
		he := &m.edges[e]
		if he.origin == NoVertex || he.next == NoEdge {
			continue
		}
		n := he.next
		nn := m.edges[n].next
		if e < n && e < nn {
			faces = append(faces, e)
		}
	}
	return faces
}

func (m *Mesh) FaceCount() int {
	return len(m.Faces())
}

// FaceVertices returns the corners of the face containing e, starting at
// Origin(e).
func (m *Mesh) FaceVertices(e EdgeID) [3]VertexID {
	n := m.Next(e)
	return [3]VertexID{m.Origin(e), m.Origin(n), m.Origin(m.Next(n))}
}

// FacePoints returns the corner positions of the face containing e.
func (m *Mesh) FacePoints(e EdgeID) [3]geom.Point3D {
	vs := m.FaceVertices(e)
	return [3]geom.Point3D{m.Position(vs[0]), m.Position(vs[1]), m.Position(vs[2])}
}

// Triangles lists every face as a vertex triple.
func (m *Mesh) Triangles() [][3]VertexID {
	faces := m.Faces()
	result := make([][3]VertexID, len(faces))
	for i, f := range faces {
		result[i] = m.FaceVertices(f)
	}
	return result
}

// EdgeCount is the number of live half-edges.
func (m *Mesh) EdgeCount() int {
	count := 0
	for i := range m.edges {
		if m.edges[i].origin != NoVertex {
			count++
		}
	}
	return count
}

// VertexCount is the number of vertices that are not Deleted.
func (m *Mesh) VertexCount() int {
	count := 0
	for i := range m.vertices {
		if m.vertices[i].typ != Deleted {
			count++
		}
	}
	return count
}

// Outgoing returns the half-edges leaving v in counterclockwise order. For a
// vertex on the boundary the list starts at its outgoing boundary half-edge.
func (m *Mesh) Outgoing(v VertexID) []EdgeID {
	start := m.VertexEdge(v)
	if start == NoEdge {
		return nil
	}

	result := []EdgeID{start}
	limit := len(m.edges)
	for h := m.Sibling(m.Prev(start)); h != start; h = m.Sibling(m.Prev(h)) {
		if h == NoEdge {
			// Hit the boundary going counterclockwise, so pick up the rest of the
			// fan going clockwise from the start.
			var before []EdgeID
			for s := m.Sibling(start); s != NoEdge; s = m.Sibling(before[len(before)-1]) {
				before = append(before, m.Next(s))
				if len(before) > limit {
					throw.Fatalf("vertex %d: clockwise walk does not terminate", v)
				}
			}
			for i, j := 0, len(before)-1; i < j; i, j = i+1, j-1 {
				before[i], before[j] = before[j], before[i]
			}
			return append(before, result...)
		}
		result = append(result, h)
		if len(result) > limit {
			throw.Fatalf("vertex %d: counterclockwise walk does not terminate", v)
		}
	}
	return result
}

// FindEdge returns the half-edge a->b, or NoEdge.
func (m *Mesh) FindEdge(a, b VertexID) EdgeID {
	for _, e := range m.Outgoing(a) {
		if m.Dest(e) == b {
			return e
		}
	}
	return NoEdge
}

// BoundaryLoops returns each closed chain of boundary half-edges, walking with
// the mesh on the left.
func (m *Mesh) BoundaryLoops() [][]EdgeID {
	var loops [][]EdgeID
	for i := range m.edges {
		e := EdgeID(i)
		if m.edges[e].origin == NoVertex || m.edges[e].sibling != NoEdge || m.IsFlagged(e, Visited) {
			continue
		}

		var loop []EdgeID
		for h := e; !m.IsFlagged(h, Visited); h = m.nextBoundary(h) {
			m.Flag(h, Visited)
			loop = append(loop, h)
		}
		loops = append(loops, loop)
	}
	for _, loop := range loops {
		for _, e := range loop {
			m.Unflag(e, Visited)
		}
	}
	return loops
}

// nextBoundary finds the boundary half-edge leaving the destination of the
// boundary half-edge e, turning clockwise through the fan.
func (m *Mesh) nextBoundary(e EdgeID) EdgeID {
	n := m.Next(e)
	for steps := 0; m.Sibling(n) != NoEdge; steps++ {
		if steps > len(m.edges) {
			throw.Fatalf("half-edge %d: no boundary continuation", e)
		}
		n = m.Next(m.Sibling(n))
	}
	return n
}

// Flat is a compact triangle list for renderers and spatial indexes. Vertices
// holds three coordinates per vertex, Normals an area weighted normal per
// vertex and Indices three indices per triangle.
type Flat struct {
	Vertices []float64 `json:"vertices"`
	Normals  []float64 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	// Source maps each flat vertex back to its handle.
	Source []VertexID `json:"-"`
}

func (f *Flat) VertexCount() int {
	return len(f.Vertices) / 3
}

func (f *Flat) TriangleCount() int {
	return len(f.Indices) / 3
}

// Flatten lists the live faces with vertices renumbered densely.
func (m *Mesh) Flatten() *Flat {
	flat := &Flat{}
	index := make(map[VertexID]uint32)
	var normals []geom.Point3D
	for _, tri := range m.Triangles() {
		points := [3]geom.Point3D{m.Position(tri[0]), m.Position(tri[1]), m.Position(tri[2])}
		n := points[1].Sub(points[0]).Cross(points[2].Sub(points[0]))
		for _, v := range tri {
			i, ok := index[v]
			if !ok {
				i = uint32(len(flat.Source))
				index[v] = i
				flat.Source = append(flat.Source, v)
				p := m.Position(v)
				flat.Vertices = append(flat.Vertices, p.X, p.Y, p.Z)
				normals = append(normals, geom.Point3D{})
			}
			normals[i] = normals[i].Add(n)
			flat.Indices = append(flat.Indices, i)
		}
	}
	for _, n := range normals {
		if l := n.Len(); l > 0 && !math.IsInf(l, 0) {
			n = n.Scale(1 / l)
		}
		flat.Normals = append(flat.Normals, n.X, n.Y, n.Z)
	}
	return flat
}
