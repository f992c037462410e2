package triangulate

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/internal/throw"
	"github.com/osuushi/trimesh/mesh"
)

// Finish removes the bounding triangle and everything outside the region
// enclosed by the protected edges, then validates the mesh. If no segment was
// ever inserted, the convex hull of the points becomes the boundary.
//
// Regions are told apart by parity: starting from the faces on the outside of
// the bounding triangle at depth 0, crossing a protected edge adds one to the
// depth. Faces at even depth are outside, so holes inside holes come back as
// filled regions.
func (t *Triangulator) Finish() error {
	if t.finished {
		return ErrFinished
	}
	if t.segments == 0 {
		if err := t.insertHull(); err != nil {
			return err
		}
	}

	removed := t.carve()
	m := t.mesh
	for _, v := range t.bounds {
		m.SetVertexType(v, mesh.Deleted)
	}
	m.Tidy()
	m.ClassifyVertices()
	t.finished = true

	if err := m.Validate(); err != nil {
		throw.Fatalf("mesh invalid after triangulation: %v", err)
	}
	t.log.Debug("finished triangulation",
		zap.Int("removed", removed), zap.Int("faces", m.FaceCount()))
	return nil
}

func (t *Triangulator) insertHull() error {
	var (
		ids    []mesh.VertexID
		points []geom.Point2D
	)
	for v := range t.planar {
		id := mesh.VertexID(v)
		if t.mesh.IsVertexType(id, mesh.Bounds) {
			continue
		}
		ids = append(ids, id)
		points = append(points, t.planar[v])
	}

	hull := ConvexHull(points)
	if len(hull) < 3 {
		return errors.Wrapf(ErrDegenerateInput, "%d distinct points", len(hull))
	}
	for i, h := range hull {
		next := hull[(i+1)%len(hull)]
		if err := t.InsertBoundary(ids[h], ids[next]); err != nil {
			return errors.Wrap(err, "insert hull")
		}
	}
	return nil
}

// carve flood fills the faces by parity and removes the outside ones. It
// returns the number of faces removed.
func (t *Triangulator) carve() int {
	m := t.mesh
	m.ClearFlags(mesh.Visited | mesh.Outside)

	var level []mesh.EdgeID
	for _, f := range m.Faces() {
		for _, h := range face(m, f) {
			if m.IsBoundary(h) {
				level = append(level, f)
				break
			}
		}
	}

	// Faces reachable without crossing a protected edge share a depth, so each
	// level is filled completely before moving on to the next.
	for depth := 0; len(level) > 0; depth++ {
		var next []mesh.EdgeID
		stack := level
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if m.IsFlagged(f, mesh.Visited) {
				continue
			}
			for _, h := range face(m, f) {
				m.Flag(h, mesh.Visited)
				if depth%2 == 0 {
					m.Flag(h, mesh.Outside)
				}
			}
			for _, h := range face(m, f) {
				s := m.Sibling(h)
				if s == mesh.NoEdge || m.IsFlagged(s, mesh.Visited) {
					continue
				}
				if m.IsProtected(h) {
					next = append(next, s)
				} else {
					stack = append(stack, s)
				}
			}
		}
		level = next
	}

	removed := 0
	for _, f := range m.Faces() {
		if m.IsFlagged(f, mesh.Outside) {
			m.RemoveFace(f)
			removed++
		}
	}
	m.ClearFlags(mesh.Visited | mesh.Outside)
	return removed
}

func face(m *mesh.Mesh, e mesh.EdgeID) [3]mesh.EdgeID {
	return [3]mesh.EdgeID{e, m.Next(e), m.Prev(e)}
}
