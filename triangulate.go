// Package trimesh triangulates planar polygons, which may be non-convex, may
// be disjoint and may contain holes, into a half-edge mesh.
//
// Every geometric decision goes through adaptive exact predicates, so nearly
// degenerate input (almost collinear or cocircular points) is handled exactly
// rather than by luck. The result is the constrained Delaunay triangulation
// of the input.
//
// This package is the one-call entry point. The mesh kernel, predicates and
// the incremental triangulator live in the mesh, predicates and triangulate
// packages.
package trimesh

import (
	"context"

	"github.com/osuushi/trimesh/geom"
	"github.com/osuushi/trimesh/internal/throw"
	"github.com/osuushi/trimesh/mesh"
	"github.com/osuushi/trimesh/triangulate"
)

type Point = geom.Point3D
type Mesh = mesh.Mesh
type Input = triangulate.Input
type Result = triangulate.Result
type Option = triangulate.Option

var (
	WithLogger      = triangulate.WithLogger
	WithSeed        = triangulate.WithSeed
	WithPlanarCheck = triangulate.WithPlanarCheck
)

// Triangulate builds the constrained Delaunay triangulation of in. Rings may
// be given in any winding; whether a ring is a hole follows from how many
// rings contain it. Loose points inside the rings become interior vertices.
//
// Internal consistency failures are returned as errors rather than panics.
func Triangulate(ctx context.Context, in Input, opts ...Option) (result *Result, err error) {
	defer func() {
		recoveredErr := throw.HandlePanicRecover(recover())
		if recoveredErr != nil {
			result = nil
			err = recoveredErr
		}
	}()
	return triangulate.Triangulate(ctx, in, opts...)
}

// Triangles takes a set of point lists and converts them into triangles, each
// wound counterclockwise.
//
// The polygons must be simple and must not cross each other. The order of the
// polygons and their winding are irrelevant.
func Triangles(polygons ...[]Point) ([][3]Point, error) {
	res, err := Triangulate(context.Background(), Input{Rings: polygons})
	if err != nil {
		return nil, err
	}
	m := res.Mesh
	var triangles [][3]Point
	for _, f := range m.Faces() {
		triangles = append(triangles, m.FacePoints(f))
	}
	return triangles, nil
}
