package mesh

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Stop collecting after this many problems; a badly broken mesh would
// otherwise produce one error per half-edge.
const maxValidationErrors = 32

// CheckEdge reports a handle that does not name a live half-edge.
func (m *Mesh) CheckEdge(e EdgeID) error {
	if e < 0 || int(e) >= len(m.edges) {
		return errors.Wrapf(ErrInvalidHandle, "half-edge %d out of range [0, %d)", e, len(m.edges))
	}
	if m.edges[e].origin == NoVertex {
		return errors.Wrapf(ErrInvalidHandle, "half-edge %d was removed", e)
	}
	return nil
}

// CheckVertex reports a handle that does not name a vertex.
func (m *Mesh) CheckVertex(v VertexID) error {
	if v < 0 || int(v) >= len(m.vertices) {
		return errors.Wrapf(ErrInvalidHandle, "vertex %d out of range [0, %d)", v, len(m.vertices))
	}
	return nil
}

// Validate checks the structural invariants of the mesh:
//  - every live half-edge is part of a cycle of exactly three,
//  - siblings point at each other, run in opposite directions and share a type,
//  - a half-edge without a sibling starts at a boundary (or bounds) vertex,
//  - every vertex's half-edge is live and starts at that vertex.
// All problems found are returned together.
func (m *Mesh) Validate() error {
	var err error
	count := 0
	report := func(format string, args ...interface{}) bool {
		err = multierr.Append(err, errors.Errorf(format, args...))
		count++
		return count < maxValidationErrors
	}

	for i := range m.edges {
		e := EdgeID(i)
		he := m.edges[e]
		if he.origin == NoVertex {
			continue
		}
		if !m.validCycle(e) {
			if !report("half-edge %d: not in a 3-cycle", e) {
				return err
			}
			continue
		}
		if m.vertices[he.origin].typ == Deleted {
			if !report("half-edge %d: origin %d is deleted", e, he.origin) {
				return err
			}
		}

		if he.sibling == NoEdge {
			if t := m.vertices[he.origin].typ; !t.Is(Boundary) && t != Bounds {
				if !report("half-edge %d: boundary half-edge starts at %s vertex %d", e, t, he.origin) {
					return err
				}
			}
			continue
		}

		s := he.sibling
		if int(s) >= len(m.edges) || m.edges[s].origin == NoVertex {
			if !report("half-edge %d: sibling %d is not live", e, s) {
				return err
			}
			continue
		}
		if m.edges[s].sibling != e {
			if !report("half-edge %d: sibling %d points back at %d", e, s, m.edges[s].sibling) {
				return err
			}
		}
		if m.edges[s].origin != m.Dest(e) || m.Dest(s) != he.origin {
			if !report("half-edge %d: sibling %d does not run in the opposite direction", e, s) {
				return err
			}
		}
		if m.edges[s].typ != he.typ {
			if !report("half-edge %d: type %s differs from sibling type %s", e, he.typ, m.edges[s].typ) {
				return err
			}
		}
	}

	for i := range m.vertices {
		v := VertexID(i)
		he := m.vertices[v].he
		if he == NoEdge {
			continue
		}
		if int(he) >= len(m.edges) || m.edges[he].origin != v {
			if !report("vertex %d: half-edge %d does not start at it", v, he) {
				return err
			}
		}
	}
	return err
}

func (m *Mesh) validCycle(e EdgeID) bool {
	current := e
	for i := 0; i < 3; i++ {
		next := m.edges[current].next
		if next < 0 || int(next) >= len(m.edges) || m.edges[next].origin == NoVertex {
			return false
		}
		if next == e {
			return false
		}
		current = next
		if i == 1 {
			return m.edges[current].next == e
		}
	}
	return false
}
