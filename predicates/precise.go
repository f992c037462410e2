package predicates

import (
	"math/big"

	"github.com/golang/geo/r3"

	"github.com/osuushi/trimesh/geom"
)

// The Precise variants evaluate the same determinants in arbitrary precision
// with big.Float. They are much slower than the adaptive predicates and exist
// as a reference to check them against.

// newBigFloat constructs a new big.Float with maximum precision.
func newBigFloat() *big.Float { return new(big.Float).SetPrec(big.MaxPrec) }

func precise2(p geom.Point2D) r3.PreciseVector {
	return r3.PreciseVectorFromVector(r3.Vector{X: p.X, Y: p.Y})
}

func precise3(p geom.Point3D) r3.PreciseVector {
	return r3.PreciseVectorFromVector(p.R3())
}

// triple is the determinant of the matrix with rows x, y, z.
func triple(x, y, z r3.PreciseVector) *big.Float {
	return x.Dot(y.Cross(z))
}

// lift replaces the z coordinate of a planar vector with its squared length,
// mapping the plane onto the paraboloid.
func lift(v r3.PreciseVector) r3.PreciseVector {
	return r3.PreciseVector{X: v.X, Y: v.Y, Z: v.Norm2()}
}

func Orient2DPrecise(a, b, c geom.Point2D) Sign {
	pc := precise2(c)
	ac := precise2(a).Sub(pc)
	bc := precise2(b).Sub(pc)
	return Sign(ac.Cross(bc).Z.Sign())
}

func InCirclePrecise(a, b, c, d geom.Point2D) Sign {
	pd := precise2(d)
	ad := lift(precise2(a).Sub(pd))
	bd := lift(precise2(b).Sub(pd))
	cd := lift(precise2(c).Sub(pd))
	return Sign(triple(ad, bd, cd).Sign())
}

func Orient3DPrecise(a, b, c, d geom.Point3D) Sign {
	pd := precise3(d)
	return Sign(triple(precise3(a).Sub(pd), precise3(b).Sub(pd), precise3(c).Sub(pd)).Sign())
}

func InSpherePrecise(a, b, c, d, e geom.Point3D) Sign {
	pe := precise3(e)
	ae := precise3(a).Sub(pe)
	be := precise3(b).Sub(pe)
	ce := precise3(c).Sub(pe)
	de := precise3(d).Sub(pe)

	term := func(l *big.Float, t *big.Float) *big.Float {
		return newBigFloat().Mul(l, t)
	}
	det := newBigFloat().Sub(term(de.Norm2(), triple(ae, be, ce)), term(ce.Norm2(), triple(de, ae, be)))
	det.Add(det, term(be.Norm2(), triple(ce, de, ae)))
	det.Sub(det, term(ae.Norm2(), triple(be, ce, de)))
	return Sign(det.Sign())
}
