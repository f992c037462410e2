package triangulate

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/predicates"
)

// Input is a planar straight line graph. Rings are closed polygons, either
// outer boundaries or holes in any winding; which is which follows from how
// they nest. Points are extra vertices for the interior.
type Input struct {
	Rings  [][]geom.Point3D
	Points []geom.Point3D
}

func (in Input) allPoints() []geom.Point3D {
	var all []geom.Point3D
	for _, ring := range in.Rings {
		all = append(all, ring...)
	}
	return append(all, in.Points...)
}

// Result is a finished triangulation. RingVertices and PointVertices give the
// vertex for each input point. Points that fell outside the rings map to
// vertices that are now Deleted.
type Result struct {
	Mesh          *mesh.Mesh
	Projection    geom.Projection
	RingVertices  [][]mesh.VertexID
	PointVertices []mesh.VertexID
}

// Triangulate builds the constrained Delaunay triangulation of in. With no
// rings, the points are triangulated up to their convex hull. 3D input is
// projected onto the coordinate plane it is most aligned with.
//
// The context is checked between insertions, so a deadline bounds the run.
func Triangulate(ctx context.Context, in Input, opts ...Option) (*Result, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	all := in.allPoints()
	for i, p := range all {
		if !validPoint(p) {
			return nil, errors.Wrapf(ErrInvalidPoint, "point %d %v", i, p)
		}
	}
	pr, basis, ok := geom.ProjectionFor(all)
	if !ok {
		return nil, errors.Wrapf(ErrDegenerateInput, "%d points", len(all))
	}
	if o.fixedProjection {
		pr = o.projection
	} else {
		opts = append(opts[:len(opts):len(opts)], WithProjection(pr))
	}
	if o.planarCheck {
		a, b, c := all[basis[0]], all[basis[1]], all[basis[2]]
		for i, p := range all {
			if predicates.Orient3D(a, b, c, p) != 0 {
				return nil, errors.Wrapf(ErrNotPlanar, "point %d %v", i, p)
			}
		}
	}

	t, err := New(geom.BoundingBox(pr.ProjectAll(all)), opts...)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Mesh:          t.Mesh(),
		Projection:    pr,
		RingVertices:  make([][]mesh.VertexID, len(in.Rings)),
		PointVertices: make([]mesh.VertexID, len(in.Points)),
	}

	insert := func(p geom.Point3D) (mesh.VertexID, error) {
		if err := ctx.Err(); err != nil {
			return mesh.NoVertex, errors.Wrap(err, "triangulate")
		}
		return t.InsertPoint(p)
	}
	for r, ring := range in.Rings {
		for _, p := range ring {
			v, err := insert(p)
			if err != nil {
				return nil, err
			}
			result.RingVertices[r] = append(result.RingVertices[r], v)
		}
	}
	for i, p := range in.Points {
		v, err := insert(p)
		if err != nil {
			return nil, err
		}
		result.PointVertices[i] = v
	}

	for r, ring := range result.RingVertices {
		for i, a := range ring {
			b := ring[(i+1)%len(ring)]
			if a == b {
				// repeated point, or the ring was closed explicitly
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrap(err, "triangulate")
			}
			if err := t.InsertConstraint(a, b); err != nil {
				return nil, errors.Wrapf(err, "ring %d", r)
			}
		}
	}

	if err := t.Finish(); err != nil {
		return nil, err
	}
	t.log.Info("triangulated",
		zap.Int("rings", len(in.Rings)),
		zap.Int("points", len(all)),
		zap.Int("faces", t.mesh.FaceCount()),
		zap.Int("vertices", t.mesh.VertexCount()))
	return result, nil
}
