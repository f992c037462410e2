package triangulate

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/predicates"
)

// CheckDelaunay verifies that every face is counterclockwise under proj and
// that every interior edge that is not protected is locally Delaunay: the
// corner opposite it in one face is not strictly inside the circumcircle of
// the other.
func CheckDelaunay(m *mesh.Mesh, proj geom.Projection) error {
	at := func(v mesh.VertexID) geom.Point2D {
		return proj.Project(m.Position(v))
	}

	var err error
	for _, f := range m.Faces() {
		v := m.FaceVertices(f)
		if predicates.Orient2D(at(v[0]), at(v[1]), at(v[2])) <= 0 {
			err = multierr.Append(err, errors.Errorf("face %d is not counterclockwise", f))
		}
	}
	for i := 0; i < m.NumEdges(); i++ {
		e := mesh.EdgeID(i)
		if !m.IsLive(e) {
			continue
		}
		s := m.Sibling(e)
		if s == mesh.NoEdge || s < e || m.IsProtected(e) {
			continue
		}
		a, b := m.Origin(e), m.Dest(e)
		c := m.Origin(m.Prev(e))
		d := m.Origin(m.Prev(s))
		if predicates.InCircle(at(a), at(b), at(c), at(d)) > 0 {
			err = multierr.Append(err, errors.Errorf("edge %d-%d is not locally Delaunay", a, b))
		}
	}
	return err
}
