package predicates

import (
	"math"

	"github.com/osuushi/trimesh/exact"
	"github.com/osuushi/trimesh/geom"
)

// Orient2D is positive if a, b, c wind counterclockwise, negative if they wind
// clockwise, and zero if they are collinear. The value approximates twice the
// signed area of the triangle.
func Orient2D(a, b, c geom.Point2D) float64 {
	detLeft := float64((a.X - c.X) * (b.Y - c.Y))
	detRight := float64((a.Y - c.Y) * (b.X - c.X))
	det := detLeft - detRight

	errBound := ccwErrBoundA * (math.Abs(detLeft) + math.Abs(detRight))
	if det > errBound || -det > errBound {
		return det
	}
	return orient2DExact(a, b, c)
}

func orient2DExact(a, b, c geom.Point2D) float64 {
	acx := exact.FromDiff(a.X, c.X)
	acy := exact.FromDiff(a.Y, c.Y)
	bcx := exact.FromDiff(b.X, c.X)
	bcy := exact.FromDiff(b.Y, c.Y)
	det := exact.Diff(exact.Mul(acx, bcy), exact.Mul(acy, bcx))
	return exact.MostSignificant(det)
}

// Orient3D is positive if d lies on the negative side of the plane through a,
// b, c, where the positive side is the one from which a, b, c appear
// counterclockwise. Equivalently, it is positive when the signed volume of the
// tetrahedron a, b, c, d is negative. It is zero exactly when the four points
// are coplanar.
func Orient3D(a, b, c, d geom.Point3D) float64 {
	adx, bdx, cdx := a.X-d.X, b.X-d.X, c.X-d.X
	ady, bdy, cdy := a.Y-d.Y, b.Y-d.Y, c.Y-d.Y
	adz, bdz, cdz := a.Z-d.Z, b.Z-d.Z, c.Z-d.Z

	bdxcdy := float64(bdx * cdy)
	cdxbdy := float64(cdx * bdy)

	cdxady := float64(cdx * ady)
	adxcdy := float64(adx * cdy)

	adxbdy := float64(adx * bdy)
	bdxady := float64(bdx * ady)

	det := float64(adz*(bdxcdy-cdxbdy)) +
		float64(bdz*(cdxady-adxcdy)) +
		float64(cdz*(adxbdy-bdxady))

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*math.Abs(adz) +
		(math.Abs(cdxady)+math.Abs(adxcdy))*math.Abs(bdz) +
		(math.Abs(adxbdy)+math.Abs(bdxady))*math.Abs(cdz)
	errBound := o3dErrBoundA * permanent
	if det > errBound || -det > errBound {
		return det
	}
	return orient3DExact(a, b, c, d)
}

func orient3DExact(a, b, c, d geom.Point3D) float64 {
	adx, bdx, cdx := exact.FromDiff(a.X, d.X), exact.FromDiff(b.X, d.X), exact.FromDiff(c.X, d.X)
	ady, bdy, cdy := exact.FromDiff(a.Y, d.Y), exact.FromDiff(b.Y, d.Y), exact.FromDiff(c.Y, d.Y)
	adz, bdz, cdz := exact.FromDiff(a.Z, d.Z), exact.FromDiff(b.Z, d.Z), exact.FromDiff(c.Z, d.Z)

	bc := exact.Diff(exact.Mul(bdx, cdy), exact.Mul(cdx, bdy))
	ca := exact.Diff(exact.Mul(cdx, ady), exact.Mul(adx, cdy))
	ab := exact.Diff(exact.Mul(adx, bdy), exact.Mul(bdx, ady))

	det := exact.Sum(
		exact.Sum(exact.Mul(adz, bc), exact.Mul(bdz, ca)),
		exact.Mul(cdz, ab),
	)
	return exact.MostSignificant(det)
}
