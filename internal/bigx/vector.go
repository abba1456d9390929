package bigx

import "math/big"

// Content returns the gcd of the (nonzero) entries of poly, always
// nonnegative. Content of an all-zero vector is zero.
func Content(poly []*big.Int) *big.Int {
	g := new(big.Int)
	for _, c := range poly {
		if c.Sign() == 0 {
			continue
		}
		g.GCD(nil, nil, g, new(big.Int).Abs(c))
	}
	return g
}

// IsZeroVec reports whether every entry of poly is zero.
func IsZeroVec(poly []*big.Int) bool {
	for _, c := range poly {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// DivExactVec sets dst[i] = src[i] / d for each i, where d is known to
// divide every entry exactly (an arithmetic invariant guaranteed by the
// caller, never checked at runtime: an inexact division here indicates a
// programmer bug, not a recoverable condition).
func DivExactVec(dst, src []*big.Int, d *big.Int) {
	for i := range src {
		dst[i].Div(src[i], d)
	}
}

// ScalarMulVec sets dst[i] = src[i] * s.
func ScalarMulVec(dst, src []*big.Int, s *big.Int) {
	for i := range src {
		dst[i].Mul(src[i], s)
	}
}

// HornerEval evaluates the integer polynomial poly (ascending-degree
// coefficients) at the integer point x using Horner's rule.
func HornerEval(poly []*big.Int, x *big.Int) *big.Int {
	result := new(big.Int)
	tmp := new(big.Int)
	for i := len(poly) - 1; i >= 0; i-- {
		tmp.Mul(result, x)
		result.Add(poly[i], tmp)
	}
	return result
}

// Derivative returns the formal derivative of poly (ascending-degree
// coefficients), i.e. coefficient i of the result is (i+1)*poly[i+1].
func Derivative(poly []*big.Int) []*big.Int {
	n := len(poly)
	if n <= 1 {
		return nil
	}
	out := make([]*big.Int, n-1)
	for i := 0; i < n-1; i++ {
		out[i] = new(big.Int).Mul(poly[i+1], big.NewInt(int64(i+1)))
	}
	return out
}
