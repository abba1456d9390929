// Package sturm decides whether an integer polynomial has all of its real
// roots confined to a closed interval (or to the whole real line), using an
// exact pseudoremainder sign-chain in the style of a Sturm sequence. Every
// division performed is an exact division extracted via content, so no
// rational arithmetic or floating point is ever needed.
package sturm

import (
	"math/big"

	"github.com/edgarcosta/weilpoly/internal/bigx"
)

// Result is the outcome of a Sturm-chain test. Ok means every real root of
// the tested polynomial lies in the target interval (or, for AllRootsReal,
// that every root is real). A non-Ok result carries a perturbation-stability
// index: StableBelow(j) for j>0 means the failure is robust against any
// change to coefficients of degree strictly less than j — callers use this
// to prune whole subtrees of a search instead of just one node.
type Result struct {
	ok     bool
	stable int // meaningful only when !ok; 0 is always a safe (uninformative) value
}

// Ok reports whether all roots lie in the target interval/line.
func (r Result) Ok() bool { return r.ok }

// StableBelow returns j such that, when !Ok(), the failure persists for any
// perturbation of coefficients at degree < j. Returns 0 when no such
// strengthened claim is available (the caller may only conclude "fails for
// the current polynomial").
func (r Result) StableBelow() int {
	if r.ok {
		return 0
	}
	return r.stable
}

var resultOk = Result{ok: true}

func resultFail(stable int) Result {
	if stable < 0 {
		stable = 0
	}
	return Result{ok: false, stable: stable}
}

// AllRootsInInterval decides whether poly (ascending-degree coefficients,
// poly[len(poly)-1] != 0, len(poly) >= 2) has all of its (necessarily real,
// if the answer is Ok) roots within the closed interval [a, b].
//
// This follows _fmpz_poly_all_roots_in_interval from the FLINT-derived
// reference implementation, substituted to operate on big.Int slices
// instead of fmpz vectors.
func AllRootsInInterval(poly []*big.Int, a, b *big.Int, scratch *bigx.Arena) Result {
	scratch.Reset()
	n := len(poly)
	f0 := clonePoly(poly)

	valA := bigx.HornerEval(f0, a)

	// Deflate all factors of (x-a).
	for valA.Sign() == 0 {
		f0, n = syntheticDivide(f0, n, a)
		valA = bigx.HornerEval(f0, a)
	}

	valB := bigx.HornerEval(f0, b)
	aMinusB := new(big.Int).Sub(a, b)

	// Deflate all factors of (x-b), keeping valA consistent via exact
	// division by (a-b) at each step instead of recomputing from scratch.
	for valB.Sign() == 0 {
		f0, n = syntheticDivide(f0, n, b)
		valA.Div(valA, aMinusB)
		valB = bigx.HornerEval(f0, b)
	}

	if n == 1 {
		return resultOk
	}

	f1 := bigx.Derivative(f0)
	n--
	val1A := bigx.HornerEval(f1, a)
	val1B := bigx.HornerEval(f1, b)

	sgnA := valA.Sign()
	sgnB := valB.Sign()

	for {
		// Invariant: n == len(f1) == len(f0)-1.
		sgnA = -sgnA
		if val1A.Sign() != sgnA || val1B.Sign() != sgnB {
			return resultFail(0)
		}

		l0 := f0[n]
		l1 := f1[n-1]

		// f2 := l0*x*f1 - l1*f0, a length-n vector (top-degree terms cancel).
		f2 := scratch.Ints(n)
		for i := 0; i < n-1; i++ {
			f2[i+1].Mul(f1[i], l0)
		}
		for i := 0; i < n; i++ {
			f2[i].Sub(f2[i], new(big.Int).Mul(f0[i], l1))
		}

		c := new(big.Int).Neg(f2[n-1])
		for i := 0; i < n-1; i++ {
			f2[i].Mul(f2[i], l1)
		}
		for i := 0; i < n-1; i++ {
			f2[i].Add(f2[i], new(big.Int).Mul(f1[i], c))
		}

		if bigx.IsZeroVec(f2[:n-1]) {
			return resultOk
		}

		n--
		if f2[n-1].Sign() == 0 {
			return resultFail(0)
		}

		d := bigx.Content(f2[:n])

		val2A := pseudoEval(valA, val1A, a, l0, l1, c, d)
		val2B := pseudoEval(valB, val1B, b, l0, l1, c, d)
		valA, val1A = val1A, val2A
		valB, val1B = val1B, val2B

		rotated := scratch.Ints(n)
		bigx.DivExactVec(rotated, f2[:n], d)
		f0, f1 = f1, rotated
	}
}

// pseudoEval computes the pseudoremainder's value at an endpoint without an
// explicit polynomial evaluation, reusing the closed-form update from the
// reference implementation: val2 = (c*val1 + l1*(l0*val1*pt - l1*val0)) / d.
func pseudoEval(val0, val1, pt, l0, l1, c, d *big.Int) *big.Int {
	inner := new(big.Int).Mul(l0, val1)
	inner.Mul(inner, pt)
	inner.Sub(inner, new(big.Int).Mul(l1, val0))

	res := new(big.Int).Mul(c, val1)
	res.Add(res, new(big.Int).Mul(l1, inner))

	return res.Div(res, d)
}

// AllRootsReal decides whether poly has all real roots, with no interval
// restriction. Mirrors _fmpz_poly_all_roots_real.
func AllRootsReal(poly []*big.Int, scratch *bigx.Arena) Result {
	scratch.Reset()
	n := len(poly)
	if n == 1 {
		return resultOk
	}

	f0 := clonePoly(poly)
	f1 := bigx.Derivative(f0)
	n--
	n0 := n
	sgnLead := f0[n].Sign()

	for {
		// Invariant: n == len(f0)-1, len(f1) <= n.
		l0 := f0[n]
		l1 := f1[n-1]
		sgn1 := l1.Sign()
		if sgn1 == 0 {
			return resultFail(0)
		}
		if sgn1 != sgnLead {
			j := 2*n - n0 + 1
			if j > 0 {
				return resultFail(j)
			}
			return resultFail(0)
		}

		f2 := scratch.Ints(n)
		for i := 0; i < n-1; i++ {
			f2[i+1].Mul(f1[i], l0)
		}
		for i := 0; i < n; i++ {
			f2[i].Sub(f2[i], new(big.Int).Mul(f0[i], l1))
		}

		c := new(big.Int).Set(f2[n-1])
		for i := 0; i < n-1; i++ {
			f2[i].Mul(f2[i], l1)
		}
		for i := 0; i < n-1; i++ {
			f2[i].Sub(f2[i], new(big.Int).Mul(f1[i], c))
		}

		if bigx.IsZeroVec(f2[:n-1]) {
			return resultOk
		}

		n--
		d := bigx.Content(f2[:n])
		rotated := scratch.Ints(n)
		bigx.DivExactVec(rotated, f2[:n], d)
		f0, f1 = f1, rotated
	}
}

func clonePoly(poly []*big.Int) []*big.Int {
	out := make([]*big.Int, len(poly))
	for i, c := range poly {
		out[i] = new(big.Int).Set(c)
	}
	return out
}

// syntheticDivide divides f0 (length n, leading coefficient f0[n-1]) by the
// monic linear factor (x-root) exactly, returning the length-(n-1)
// quotient. The caller guarantees root is an exact root of f0 (checked via
// HornerEval before calling), so the remainder is not computed.
func syntheticDivide(f0 []*big.Int, n int, root *big.Int) ([]*big.Int, int) {
	q := make([]*big.Int, n-1)
	carry := new(big.Int).Set(f0[n-1])
	for i := n - 2; i >= 0; i-- {
		q[i] = new(big.Int).Set(carry)
		carry.Mul(carry, root)
		carry.Add(carry, f0[i])
	}
	return q, n - 1
}
