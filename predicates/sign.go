// Package predicates implements adaptive geometric predicates. Each predicate
// first evaluates its determinant in plain floating point together with a
// conservative bound on the rounding error. When the result clears the bound
// its sign is certain and it is returned directly. Otherwise the determinant is
// recomputed exactly with expansion arithmetic. Either way the sign of the
// returned value is correct; its magnitude is only an approximation.
package predicates

// Sign is the tri-state outcome of a predicate. Degenerate means the input is
// exactly collinear, coplanar, cocircular or cospherical, and callers must
// handle it explicitly.
type Sign int

const (
	Negative   Sign = -1
	Degenerate Sign = 0
	Positive   Sign = 1
)

func SignOf(v float64) Sign {
	switch {
	case v > 0:
		return Positive
	case v < 0:
		return Negative
	}
	return Degenerate
}

func (s Sign) String() string {
	switch s {
	case Negative:
		return "negative"
	case Positive:
		return "positive"
	}
	return "degenerate"
}

// Error bound coefficients for the fast paths. epsilon is the unit roundoff of
// float64, 2^-53.
const (
	epsilon      = 1.0 / (1 << 53)
	ccwErrBoundA = (3 + 16*epsilon) * epsilon
	o3dErrBoundA = (7 + 56*epsilon) * epsilon
	iccErrBoundA = (10 + 96*epsilon) * epsilon
	ispErrBoundA = (16 + 224*epsilon) * epsilon
)
