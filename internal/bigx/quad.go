package bigx

import "math/big"

// IsqrtFloor returns floor(sqrt(v)) for v >= 0.
func IsqrtFloor(v *big.Int) *big.Int {
	return new(big.Int).Sqrt(v)
}

// IsqrtCeil returns ceil(sqrt(v)) for v >= 0.
func IsqrtCeil(v *big.Int) *big.Int {
	r := IsqrtFloor(v)
	check := new(big.Int).Mul(r, r)
	if check.Cmp(v) == 0 {
		return r
	}
	return new(big.Int).Add(r, big.NewInt(1))
}

// FloorRat returns floor(a) for a rational a.
func FloorRat(a *big.Rat) *big.Int {
	// big.Rat always normalizes to a positive denominator, so Euclidean
	// division (what big.Int.Div implements) coincides with floor division.
	return new(big.Int).Div(a.Num(), a.Denom())
}

// CeilRat returns ceil(a) for a rational a.
func CeilRat(a *big.Rat) *big.Int {
	neg := new(big.Rat).Neg(a)
	return new(big.Int).Neg(FloorRat(neg))
}

// floorMSqrtQ returns floor(m * sqrt(q)) exactly, for integer m (any sign)
// and positive integer q, without ever computing a floating-point root.
func floorMSqrtQ(m *big.Int, q int64) *big.Int {
	if m.Sign() == 0 {
		return new(big.Int)
	}
	v := new(big.Int).Mul(m, m)
	v.Mul(v, big.NewInt(q))
	if m.Sign() > 0 {
		return IsqrtFloor(v)
	}
	return new(big.Int).Neg(IsqrtCeil(v))
}

// FloorQuad returns floor(a + b*sqrt(q)) exactly, where a is rational, b is
// rational or nil (nil meaning "no sqrt(q) term", i.e. plain FloorRat(a)),
// and q is a positive integer. This is the core primitive behind the
// quadratic-field bound tightening in PowerSumRange when q > 1: it never
// canonicalizes a floating-point approximation of sqrt(q), instead reducing
// to an exact integer-square-root computation.
//
// Derivation: writing a = aNum/aDen, b = bNum/bDen in lowest terms with
// aDen, bDen > 0 (as big.Rat always stores them), combine over the common
// denominator D = aDen*bDen:
//
//	a + b*sqrt(q) = (N + M*sqrt(q)) / D,  N = aNum*bDen,  M = bNum*aDen.
//
// For any integer N, real x and positive integer D, floor((N+x)/D) =
// floorDiv(N + floor(x), D): writing x = floor(x) + frac with frac in
// [0,1), and r = N mod D in [0,D-1], the combined fractional contribution
// r/D + frac/D is strictly less than 1, so no carry ever occurs. Applying
// this with x = M*sqrt(q) reduces the problem to computing floor(M*sqrt(q))
// exactly, which floorMSqrtQ does via IsqrtFloor/IsqrtCeil on M^2*q.
func FloorQuad(a, b *big.Rat, q int64) *big.Int {
	if b == nil || b.Sign() == 0 {
		return FloorRat(a)
	}
	aNum, aDen := a.Num(), a.Denom()
	bNum, bDen := b.Num(), b.Denom()

	m := new(big.Int).Mul(bNum, aDen)
	n := new(big.Int).Mul(aNum, bDen)
	d := new(big.Int).Mul(aDen, bDen)

	sum := new(big.Int).Add(n, floorMSqrtQ(m, q))
	return sum.Div(sum, d)
}

// CeilQuad returns ceil(a + b*sqrt(q)) exactly, via the identity
// ceil(x) = -floor(-x), which holds for any real x.
func CeilQuad(a, b *big.Rat, q int64) *big.Int {
	negA := new(big.Rat).Neg(a)
	var negB *big.Rat
	if b != nil {
		negB = new(big.Rat).Neg(b)
	}
	return new(big.Int).Neg(FloorQuad(negA, negB, q))
}
