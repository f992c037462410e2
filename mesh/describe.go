package mesh

import (
	"fmt"

	"github.com/osuushi/trimesh/dbg"
)

// This is for debugging purposes only

func (t EdgeType) color() dbg.Color {
	switch t {
	case Constraint:
		return dbg.Red
	case BoundaryEdge:
		return dbg.Cyan
	}
	return dbg.Gray
}

// DbgName is a readable name for a vertex.
func (m *Mesh) DbgName(v VertexID) string {
	return dbg.Name("vertex", int(v))
}

// Describe renders a half-edge as "Name(From→To)", colored by its type and
// highlighted when it carries any flag.
func (m *Mesh) Describe(e EdgeID) string {
	if e == NoEdge {
		return dbg.Name("edge", -1)
	}
	he := m.Edge(e)
	if he.Origin == NoVertex {
		return fmt.Sprintf("%s(removed)", dbg.Name("edge", int(e)))
	}
	name := dbg.Colorize(dbg.Name("edge", int(e)), he.Type.color())
	if he.Flags != 0 {
		name = dbg.Colorize(name, dbg.Yellow)
	}
	return fmt.Sprintf("%s(%s→%s)", name, m.DbgName(he.Origin), m.DbgName(m.Dest(e)))
}
