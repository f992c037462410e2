package geom

import "math"

// Projection maps points of a (nearly) planar 3D point set onto a 2D working
// plane by dropping one coordinate. Dropping a coordinate is exact, so
// predicates evaluated on projected points are as trustworthy as the input.
//
// The kept coordinates are ordered so that a ring that is counterclockwise
// around the positive dominant axis stays counterclockwise after projection.
// Input lying in a plane of constant z projects to plain (x, y).
type Projection struct {
	Drop int // 0, 1 or 2 for x, y, z
}

var DropZ = Projection{Drop: 2}

func (pr Projection) Project(p Point3D) Point2D {
	switch pr.Drop {
	case 0:
		return Point2D{p.Y, p.Z}
	case 1:
		return Point2D{p.Z, p.X}
	}
	return Point2D{p.X, p.Y}
}

// Lift inverts Project, putting w in the dropped coordinate.
func (pr Projection) Lift(p Point2D, w float64) Point3D {
	switch pr.Drop {
	case 0:
		return Point3D{w, p.X, p.Y}
	case 1:
		return Point3D{p.Y, w, p.X}
	}
	return Point3D{p.X, p.Y, w}
}

func (pr Projection) ProjectAll(points []Point3D) []Point2D {
	result := make([]Point2D, len(points))
	for i, p := range points {
		result[i] = pr.Project(p)
	}
	return result
}

// Basis is a triple of indices into a point set whose points are not
// collinear. It spans the plane used for the projection and for planarity
// checks.
type Basis [3]int

// ProjectionFor picks the projection for a point set. ok is false when the
// points are all collinear (or there are fewer than three), in which case the
// z axis is dropped.
func ProjectionFor(points []Point3D) (pr Projection, basis Basis, ok bool) {
	if len(points) < 3 {
		return DropZ, basis, false
	}

	p0 := points[0]
	far, farDist := -1, 0.0
	for i, p := range points {
		if d := p.Sub(p0).Len(); d > farDist {
			far, farDist = i, d
		}
	}
	if far < 0 {
		return DropZ, basis, false
	}

	axis := points[far].Sub(p0)
	best, bestLen := -1, 0.0
	var normal Point3D
	for i, p := range points {
		n := axis.Cross(p.Sub(p0))
		if l := n.Len(); l > bestLen {
			best, bestLen, normal = i, l, n
		}
	}
	if best < 0 {
		return DropZ, basis, false
	}

	ax, ay, az := math.Abs(normal.X), math.Abs(normal.Y), math.Abs(normal.Z)
	switch {
	case az >= ax && az >= ay:
		pr = DropZ
	case ax >= ay:
		pr = Projection{Drop: 0}
	default:
		pr = Projection{Drop: 1}
	}
	return pr, Basis{0, far, best}, true
}
