package predicates

import (
	"math"

	"github.com/osuushi/trimesh/exact"
	"github.com/osuushi/trimesh/geom"
)

// InCircle is positive if d lies inside the circle through a, b, c, negative
// if it lies outside, and zero if the four points are cocircular. a, b, c must
// wind counterclockwise or the sign is reversed.
func InCircle(a, b, c, d geom.Point2D) float64 {
	adx, bdx, cdx := a.X-d.X, b.X-d.X, c.X-d.X
	ady, bdy, cdy := a.Y-d.Y, b.Y-d.Y, c.Y-d.Y

	bdxcdy := float64(bdx * cdy)
	cdxbdy := float64(cdx * bdy)
	alift := float64(adx*adx) + float64(ady*ady)

	cdxady := float64(cdx * ady)
	adxcdy := float64(adx * cdy)
	blift := float64(bdx*bdx) + float64(bdy*bdy)

	adxbdy := float64(adx * bdy)
	bdxady := float64(bdx * ady)
	clift := float64(cdx*cdx) + float64(cdy*cdy)

	det := float64(alift*(bdxcdy-cdxbdy)) +
		float64(blift*(cdxady-adxcdy)) +
		float64(clift*(adxbdy-bdxady))

	permanent := (math.Abs(bdxcdy)+math.Abs(cdxbdy))*alift +
		(math.Abs(cdxady)+math.Abs(adxcdy))*blift +
		(math.Abs(adxbdy)+math.Abs(bdxady))*clift
	errBound := iccErrBoundA * permanent
	if det > errBound || -det > errBound {
		return det
	}
	return inCircleExact(a, b, c, d)
}

func inCircleExact(a, b, c, d geom.Point2D) float64 {
	adx, bdx, cdx := exact.FromDiff(a.X, d.X), exact.FromDiff(b.X, d.X), exact.FromDiff(c.X, d.X)
	ady, bdy, cdy := exact.FromDiff(a.Y, d.Y), exact.FromDiff(b.Y, d.Y), exact.FromDiff(c.Y, d.Y)

	alift := exact.Sum(exact.Mul(adx, adx), exact.Mul(ady, ady))
	blift := exact.Sum(exact.Mul(bdx, bdx), exact.Mul(bdy, bdy))
	clift := exact.Sum(exact.Mul(cdx, cdx), exact.Mul(cdy, cdy))

	bc := exact.Diff(exact.Mul(bdx, cdy), exact.Mul(cdx, bdy))
	ca := exact.Diff(exact.Mul(cdx, ady), exact.Mul(adx, cdy))
	ab := exact.Diff(exact.Mul(adx, bdy), exact.Mul(bdx, ady))

	det := exact.Sum(
		exact.Sum(exact.Mul(alift, bc), exact.Mul(blift, ca)),
		exact.Mul(clift, ab),
	)
	return exact.MostSignificant(det)
}

// InCircleOriented is InCircle made independent of the winding of a, b, c. It
// is zero when a, b, c are collinear.
func InCircleOriented(a, b, c, d geom.Point2D) float64 {
	switch SignOf(Orient2D(a, b, c)) {
	case Positive:
		return InCircle(a, b, c, d)
	case Negative:
		return -InCircle(a, b, c, d)
	}
	return 0
}

// InSphere is positive if e lies inside the sphere through a, b, c, d,
// negative if it lies outside, and zero if the five points are cospherical. It
// assumes Orient3D(a, b, c, d) > 0; otherwise the sign is reversed.
func InSphere(a, b, c, d, e geom.Point3D) float64 {
	aex, bex, cex, dex := a.X-e.X, b.X-e.X, c.X-e.X, d.X-e.X
	aey, bey, cey, dey := a.Y-e.Y, b.Y-e.Y, c.Y-e.Y, d.Y-e.Y
	aez, bez, cez, dez := a.Z-e.Z, b.Z-e.Z, c.Z-e.Z, d.Z-e.Z

	aexbey, bexaey := float64(aex*bey), float64(bex*aey)
	ab := aexbey - bexaey
	bexcey, cexbey := float64(bex*cey), float64(cex*bey)
	bc := bexcey - cexbey
	cexdey, dexcey := float64(cex*dey), float64(dex*cey)
	cd := cexdey - dexcey
	dexaey, aexdey := float64(dex*aey), float64(aex*dey)
	da := dexaey - aexdey
	aexcey, cexaey := float64(aex*cey), float64(cex*aey)
	ac := aexcey - cexaey
	bexdey, dexbey := float64(bex*dey), float64(dex*bey)
	bd := bexdey - dexbey

	abc := float64(aez*bc) - float64(bez*ac) + float64(cez*ab)
	bcd := float64(bez*cd) - float64(cez*bd) + float64(dez*bc)
	cda := float64(cez*da) + float64(dez*ac) + float64(aez*cd)
	dab := float64(dez*ab) + float64(aez*bd) + float64(bez*da)

	alift := float64(aex*aex) + float64(aey*aey) + float64(aez*aez)
	blift := float64(bex*bex) + float64(bey*bey) + float64(bez*bez)
	clift := float64(cex*cex) + float64(cey*cey) + float64(cez*cez)
	dlift := float64(dex*dex) + float64(dey*dey) + float64(dez*dez)

	det := (float64(dlift*abc) - float64(clift*dab)) + (float64(blift*cda) - float64(alift*bcd))

	aezp, bezp, cezp, dezp := math.Abs(aez), math.Abs(bez), math.Abs(cez), math.Abs(dez)
	aexbeyp, bexaeyp := math.Abs(aexbey), math.Abs(bexaey)
	bexceyp, cexbeyp := math.Abs(bexcey), math.Abs(cexbey)
	cexdeyp, dexceyp := math.Abs(cexdey), math.Abs(dexcey)
	dexaeyp, aexdeyp := math.Abs(dexaey), math.Abs(aexdey)
	aexceyp, cexaeyp := math.Abs(aexcey), math.Abs(cexaey)
	bexdeyp, dexbeyp := math.Abs(bexdey), math.Abs(dexbey)

	permanent := ((cexdeyp+dexceyp)*bezp+(dexbeyp+bexdeyp)*cezp+(bexceyp+cexbeyp)*dezp)*alift +
		((dexaeyp+aexdeyp)*cezp+(aexceyp+cexaeyp)*dezp+(cexdeyp+dexceyp)*aezp)*blift +
		((aexbeyp+bexaeyp)*dezp+(bexdeyp+dexbeyp)*aezp+(dexaeyp+aexdeyp)*bezp)*clift +
		((bexceyp+cexbeyp)*aezp+(cexaeyp+aexceyp)*bezp+(aexbeyp+bexaeyp)*cezp)*dlift
	errBound := ispErrBoundA * permanent
	if det > errBound || -det > errBound {
		return det
	}
	return inSphereExact(a, b, c, d, e)
}

func inSphereExact(a, b, c, d, e geom.Point3D) float64 {
	aex, bex, cex, dex := exact.FromDiff(a.X, e.X), exact.FromDiff(b.X, e.X), exact.FromDiff(c.X, e.X), exact.FromDiff(d.X, e.X)
	aey, bey, cey, dey := exact.FromDiff(a.Y, e.Y), exact.FromDiff(b.Y, e.Y), exact.FromDiff(c.Y, e.Y), exact.FromDiff(d.Y, e.Y)
	aez, bez, cez, dez := exact.FromDiff(a.Z, e.Z), exact.FromDiff(b.Z, e.Z), exact.FromDiff(c.Z, e.Z), exact.FromDiff(d.Z, e.Z)

	cross := func(px, py, qx, qy exact.Expansion) exact.Expansion {
		return exact.Diff(exact.Mul(px, qy), exact.Mul(qx, py))
	}
	ab := cross(aex, aey, bex, bey)
	bc := cross(bex, bey, cex, cey)
	cd := cross(cex, cey, dex, dey)
	da := cross(dex, dey, aex, aey)
	ac := cross(aex, aey, cex, cey)
	bd := cross(bex, bey, dex, dey)

	abc := exact.Sum(exact.Diff(exact.Mul(aez, bc), exact.Mul(bez, ac)), exact.Mul(cez, ab))
	bcd := exact.Sum(exact.Diff(exact.Mul(bez, cd), exact.Mul(cez, bd)), exact.Mul(dez, bc))
	cda := exact.Sum(exact.Sum(exact.Mul(cez, da), exact.Mul(dez, ac)), exact.Mul(aez, cd))
	dab := exact.Sum(exact.Sum(exact.Mul(dez, ab), exact.Mul(aez, bd)), exact.Mul(bez, da))

	lift := func(x, y, z exact.Expansion) exact.Expansion {
		return exact.Sum(exact.Sum(exact.Mul(x, x), exact.Mul(y, y)), exact.Mul(z, z))
	}
	alift := lift(aex, aey, aez)
	blift := lift(bex, bey, bez)
	clift := lift(cex, cey, cez)
	dlift := lift(dex, dey, dez)

	det := exact.Sum(
		exact.Diff(exact.Mul(dlift, abc), exact.Mul(clift, dab)),
		exact.Diff(exact.Mul(blift, cda), exact.Mul(alift, bcd)),
	)
	return exact.MostSignificant(det)
}

// InSphereOriented is InSphere made independent of the orientation of a, b,
// c, d. It is zero when a, b, c, d are coplanar, since they then do not define
// a sphere.
func InSphereOriented(a, b, c, d, e geom.Point3D) float64 {
	switch SignOf(Orient3D(a, b, c, d)) {
	case Positive:
		return InSphere(a, b, c, d, e)
	case Negative:
		return -InSphere(a, b, c, d, e)
	}
	return 0
}
