// Package exact implements error-free floating point transformations and
// arithmetic on expansions: nonoverlapping sequences of doubles, ordered by
// increasing magnitude, whose exact sum is the represented value. A two
// component expansion is a double-double.
//
// Every routine here relies on IEEE 754 round-to-nearest-even. Explicit
// float64 conversions keep the compiler from fusing the operations whose
// rounding error is being captured.
package exact

import "math"

// TwoSum returns x = fl(a+b) and the exact rounding error y, so a+b = x+y.
func TwoSum(a, b float64) (x, y float64) {
	x = float64(a + b)
	bv := float64(x - a)
	av := float64(x - bv)
	br := float64(b - bv)
	ar := float64(a - av)
	y = ar + br
	return
}

// FastTwoSum is TwoSum for |a| >= |b|.
func FastTwoSum(a, b float64) (x, y float64) {
	x = float64(a + b)
	bv := float64(x - a)
	y = b - bv
	return
}

// TwoDiff returns x = fl(a-b) and the exact rounding error y, so a-b = x+y.
func TwoDiff(a, b float64) (x, y float64) {
	x = float64(a - b)
	bv := float64(a - x)
	av := float64(x + bv)
	br := float64(bv - b)
	ar := float64(a - av)
	y = ar + br
	return
}

// TwoProduct returns x = fl(a*b) and the exact rounding error y, so a*b = x+y.
func TwoProduct(a, b float64) (x, y float64) {
	x = float64(a * b)
	y = math.FMA(a, b, -x)
	return
}

// Expansion components are stored smallest first.
type Expansion []float64

// FromDiff is the exact difference a-b.
func FromDiff(a, b float64) Expansion {
	x, y := TwoDiff(a, b)
	return compact(Expansion{y, x})
}

// FromFloat wraps a single double.
func FromFloat(a float64) Expansion {
	return compact(Expansion{a})
}

func compact(e Expansion) Expansion {
	h := e[:0]
	for _, c := range e {
		if c != 0 {
			h = append(h, c)
		}
	}
	return h
}

// Sum adds two expansions by merging their components by magnitude. Zero
// components are dropped from the result.
func Sum(e, f Expansion) Expansion {
	if len(e) == 0 {
		return append(Expansion(nil), f...)
	}
	if len(f) == 0 {
		return append(Expansion(nil), e...)
	}

	h := make(Expansion, 0, len(e)+len(f))
	ei, fi := 0, 0
	enow, fnow := e[0], f[0]

	// smallerE reports whether the next e component is the smaller one.
	smallerE := func() bool {
		return (fnow > enow) == (fnow > -enow)
	}

	var q, hh float64
	if smallerE() {
		q = enow
		ei++
		if ei < len(e) {
			enow = e[ei]
		}
	} else {
		q = fnow
		fi++
		if fi < len(f) {
			fnow = f[fi]
		}
	}

	for ei < len(e) && fi < len(f) {
		if smallerE() {
			q, hh = TwoSum(q, enow)
			ei++
			if ei < len(e) {
				enow = e[ei]
			}
		} else {
			q, hh = TwoSum(q, fnow)
			fi++
			if fi < len(f) {
				fnow = f[fi]
			}
		}
		if hh != 0 {
			h = append(h, hh)
		}
	}
	for ; ei < len(e); ei++ {
		q, hh = TwoSum(q, e[ei])
		if hh != 0 {
			h = append(h, hh)
		}
	}
	for ; fi < len(f); fi++ {
		q, hh = TwoSum(q, f[fi])
		if hh != 0 {
			h = append(h, hh)
		}
	}
	if q != 0 || len(h) == 0 {
		h = append(h, q)
	}
	return compact(h)
}

// Diff is e-f.
func Diff(e, f Expansion) Expansion {
	return Sum(e, Neg(f))
}

// Scale multiplies an expansion by a single double.
func Scale(e Expansion, b float64) Expansion {
	if len(e) == 0 || b == 0 {
		return nil
	}
	h := make(Expansion, 0, 2*len(e))
	q, hh := TwoProduct(e[0], b)
	if hh != 0 {
		h = append(h, hh)
	}
	for _, c := range e[1:] {
		p1, p0 := TwoProduct(c, b)
		var sum float64
		sum, hh = TwoSum(q, p0)
		if hh != 0 {
			h = append(h, hh)
		}
		q, hh = FastTwoSum(p1, sum)
		if hh != 0 {
			h = append(h, hh)
		}
	}
	if q != 0 || len(h) == 0 {
		h = append(h, q)
	}
	return compact(h)
}

// Mul multiplies two expansions.
func Mul(e, f Expansion) Expansion {
	var result Expansion
	for _, c := range f {
		result = Sum(result, Scale(e, c))
	}
	return result
}

func Neg(e Expansion) Expansion {
	h := make(Expansion, len(e))
	for i, c := range e {
		h[i] = -c
	}
	return h
}

// Estimate approximates the value of e to within a few ulps.
func Estimate(e Expansion) float64 {
	var sum float64
	for _, c := range e {
		sum += c
	}
	return sum
}

// Sign is the exact sign of e: -1, 0 or 1.
func Sign(e Expansion) int {
	for i := len(e) - 1; i >= 0; i-- {
		switch {
		case e[i] > 0:
			return 1
		case e[i] < 0:
			return -1
		}
	}
	return 0
}

// MostSignificant is the largest component, which carries the sign of e and
// approximates its value. Zero for the empty expansion.
func MostSignificant(e Expansion) float64 {
	if len(e) == 0 {
		return 0
	}
	return e[len(e)-1]
}
