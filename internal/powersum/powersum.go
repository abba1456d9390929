// Package powersum computes, for a partially-determined Weil-candidate
// polynomial, the range of integer values the next coefficient may take
// without violating real-rootedness on the target circle. It is the
// pruning engine the search driver consults at every node.
package powersum

import (
	"math/big"

	"github.com/edgarcosta/weilpoly/internal/bigx"
	"github.com/edgarcosta/weilpoly/internal/sturm"
	"github.com/edgarcosta/weilpoly/internal/tables"
)

// SetRangeFromPowerSums computes (and, on success, applies) the bound for
// pol[n-1], given the already-fixed coefficients pol[n..d]. It mutates
// pol, upper and sumCol in place to reflect the chosen value of pol[n-1].
//
// Return values mirror set_range_from_power_sums in the reference
// implementation:
//
//	1       the n-1 coefficient was bounded and fixed to its new minimum.
//	0       the range is empty; this branch is dead.
//	-1      the Sturm test on a derived polynomial failed with no
//	        stability index; only the current node is ruled out.
//	-r, r>=2: the Sturm test on a derived polynomial failed in a way that
//	          is stable against perturbing coefficients below the current
//	          level; the driver should ascend r-1 levels.
//
// tb, modlist, q, a, b come from the (immutable) static context; pol,
// upper, sumCol belong to the caller's DynamicState and are advanced by
// exactly one coefficient on success.
func SetRangeFromPowerSums(tb *tables.Tables, modlist []int64, q int64, a, b *big.Int, pol, upper []*big.Int, sumCol []*big.Rat, n int, scratch *bigx.Arena) int {
	d := tb.D
	k := d + 1 - n

	// Divided n-th derivative of pol: tpolDeriv[i] = binom[n+i][n] * pol[n+i].
	tpolDeriv := make([]*big.Int, k)
	for i := 0; i < k; i++ {
		tpolDeriv[i] = new(big.Int).Mul(tb.Binom[n+i][n], pol[n+i])
	}

	res := sturm.AllRootsReal(tpolDeriv, scratch)
	if !res.Ok() {
		return -(res.StableBelow() + 1)
	}

	if k > d {
		return 1
	}

	modulus := modlist[n-1]

	updatePowerSum(sumCol, pol, d, k)

	prod := matVecMul(tb.SumMats[k], sumCol, d)

	f := tb.F[n-1]
	rb := &rangeBuilder{f: f, q: q}

	tier1(rb, prod[0], d, k, q)

	if rb.lower.Cmp(rb.upper) > 0 {
		return 0
	}

	tier2(rb, tpolDeriv, pol, d, k, n, q, a, b)

	if modulus == 0 {
		if rb.lower.Sign() > 0 || rb.upper.Sign() < 0 {
			return 0
		}
		rb.lower.SetInt64(0)
		rb.upper.SetInt64(0)
		finalize(pol, upper, sumCol, f, rb, n, k, 0)
		return 1
	}

	if q == 1 && rb.lower.Cmp(rb.upper) <= 0 && k >= 2 {
		tier3(rb, prod, sumCol, d, k, b)
	}

	if rb.lower.Cmp(rb.upper) > 0 {
		return 0
	}

	finalize(pol, upper, sumCol, f, rb, n, k, modulus)
	return 1
}

// updatePowerSum sets sumCol[k] via Newton's identity:
//
//	S_k = -k*pol[d-k]/pol[d] - sum_{i=1}^{k-1} (pol[d-i]/pol[d]) * S_{k-i}
func updatePowerSum(sumCol []*big.Rat, pol []*big.Int, d, k int) {
	s := new(big.Rat).SetFrac(pol[d-k], pol[d])
	s.Mul(s, big.NewRat(int64(-k), 1))
	for i := 1; i < k; i++ {
		ratio := new(big.Rat).SetFrac(pol[d-i], pol[d])
		ratio.Neg(ratio)
		term := new(big.Rat).Mul(ratio, sumCol[k-i])
		s.Add(s, term)
	}
	sumCol[k] = s
}

func matVecMul(mat [][]*big.Rat, col []*big.Rat, d int) []*big.Rat {
	out := make([]*big.Rat, 9)
	for r := 0; r < 9; r++ {
		acc := new(big.Rat)
		for j := 0; j <= d; j++ {
			acc.Add(acc, new(big.Rat).Mul(mat[r][j], col[j]))
		}
		out[r] = acc
	}
	return out
}

// rangeBuilder accumulates [lower, upper] for the coefficient being bound,
// dividing every candidate value by the scaling factor f before taking
// floor/ceil; reexpresses the reference implementation's closures over
// shared scratch as methods on a value that holds that scratch directly.
type rangeBuilder struct {
	f           *big.Rat
	q           int64
	lower, upper *big.Int
}

func (rb *rangeBuilder) setLower(val *big.Rat) {
	t := new(big.Rat).Quo(val, rb.f)
	rb.lower = bigx.CeilRat(t)
}

func (rb *rangeBuilder) setUpper(val *big.Rat) {
	t := new(big.Rat).Quo(val, rb.f)
	rb.upper = bigx.FloorRat(t)
}

func (rb *rangeBuilder) setLowerQuad(val1, val2 *big.Rat) {
	a := new(big.Rat).Quo(val1, rb.f)
	if val2 == nil {
		rb.lower = bigx.CeilRat(a)
		return
	}
	bb := new(big.Rat).Quo(val2, rb.f)
	rb.lower = bigx.CeilQuad(a, bb, rb.q)
}

func (rb *rangeBuilder) setUpperQuad(val1, val2 *big.Rat) {
	a := new(big.Rat).Quo(val1, rb.f)
	if val2 == nil {
		rb.upper = bigx.FloorRat(a)
		return
	}
	bb := new(big.Rat).Quo(val2, rb.f)
	rb.upper = bigx.FloorQuad(a, bb, rb.q)
}

func (rb *rangeBuilder) changeLower(val *big.Rat) {
	t := new(big.Rat).Quo(val, rb.f)
	c := bigx.CeilRat(t)
	if c.Cmp(rb.lower) > 0 {
		rb.lower = c
	}
}

func (rb *rangeBuilder) changeUpper(val *big.Rat) {
	t := new(big.Rat).Quo(val, rb.f)
	c := bigx.FloorRat(t)
	if c.Cmp(rb.upper) < 0 {
		rb.upper = c
	}
}

func (rb *rangeBuilder) changeLowerQuad(val1, val2 *big.Rat) {
	a := new(big.Rat).Quo(val1, rb.f)
	var c *big.Int
	if val2 == nil {
		c = bigx.CeilRat(a)
	} else {
		bb := new(big.Rat).Quo(val2, rb.f)
		c = bigx.CeilQuad(a, bb, rb.q)
	}
	if c.Cmp(rb.lower) > 0 {
		rb.lower = c
	}
}

func (rb *rangeBuilder) changeUpperQuad(val1, val2 *big.Rat) {
	a := new(big.Rat).Quo(val1, rb.f)
	var c *big.Int
	if val2 == nil {
		c = bigx.FloorRat(a)
	} else {
		bb := new(big.Rat).Quo(val2, rb.f)
		c = bigx.FloorQuad(a, bb, rb.q)
	}
	if c.Cmp(rb.upper) < 0 {
		rb.upper = c
	}
}

// tier1 applies the symmetrized power-sum bound from prod[0].
func tier1(rb *rangeBuilder, prod0 *big.Rat, d, k int, q int64) {
	if q == 1 {
		m := big.NewRat(int64(2*d), 1)
		rb.setLower(new(big.Rat).Sub(prod0, m))
		rb.setUpper(new(big.Rat).Add(prod0, m))
		return
	}
	if k%2 == 0 {
		pw := new(big.Int).Exp(big.NewInt(q), big.NewInt(int64(k/2)), nil)
		m := new(big.Rat).Mul(big.NewRat(int64(2*d), 1), new(big.Rat).SetInt(pw))
		rb.setLower(new(big.Rat).Sub(prod0, m))
		rb.setUpper(new(big.Rat).Add(prod0, m))
		return
	}
	pw := new(big.Int).Exp(big.NewInt(q), big.NewInt(int64(k/2)), nil)
	m2 := new(big.Rat).Mul(big.NewRat(int64(2*d), 1), new(big.Rat).SetInt(pw))
	rb.setUpperQuad(prod0, m2)
	negM2 := new(big.Rat).Neg(m2)
	rb.setLowerQuad(prod0, negM2)
}

// tier2 applies the Descartes-rule-of-signs endpoint evaluation.
func tier2(rb *rangeBuilder, tpolDeriv, pol []*big.Int, d, k, n int, q int64, a, b *big.Int) {
	t3 := new(big.Rat).SetFrac(big.NewInt(int64(-k)), pol[d])

	// Undo one derivative: tpol[i] = tpolDeriv[i-1]*n/i for i=1..k;
	// tpol[0] = pol[d-k].
	tpol := make([]*big.Int, k+1)
	tpol[0] = new(big.Int).Set(pol[d-k])
	for i := 1; i <= k; i++ {
		t := new(big.Int).Mul(tpolDeriv[i-1], big.NewInt(int64(n)))
		tpol[i] = t.Div(t, big.NewInt(int64(i)))
	}

	if q == 1 {
		valA := bigx.HornerEval(tpol, a)
		t1 := new(big.Rat).Mul(t3, new(big.Rat).SetInt(valA))
		if k%2 == 1 {
			rb.changeUpper(t1)
		} else {
			rb.changeLower(t1)
		}

		valB := bigx.HornerEval(tpol, b)
		t1b := new(big.Rat).Mul(t3, new(big.Rat).SetInt(valB))
		rb.changeLower(t1b)
		return
	}

	var even, odd []*big.Int
	for i := 0; 2*i <= k; i++ {
		even = append(even, tpol[2*i])
	}
	for i := 0; 2*i+1 <= k; i++ {
		odd = append(odd, tpol[2*i+1])
	}
	fourQ := big.NewInt(4 * q)
	valEven := bigx.HornerEval(even, fourQ)
	valOdd := bigx.HornerEval(odd, fourQ)
	valOdd = new(big.Int).Mul(valOdd, big.NewInt(2))

	t1q := new(big.Rat).Mul(t3, new(big.Rat).SetInt(valEven))
	t2q := new(big.Rat).Mul(t3, new(big.Rat).SetInt(valOdd))

	rb.changeLowerQuad(t1q, t2q)

	negT2q := new(big.Rat).Neg(t2q)
	if k%2 == 1 {
		rb.changeUpperQuad(t1q, negT2q)
	} else {
		rb.changeLowerQuad(t1q, negT2q)
	}
}

// tier3 applies the q=1-only Cauchy-Schwarz-style tightenings using rows
// 1..8 of prod and sumCol[k-2] (read before any tier-1 update to that
// index).
func tier3(rb *rangeBuilder, prod []*big.Rat, sumCol []*big.Rat, d, k int, b *big.Int) {
	t1 := new(big.Rat).Add(prod[1], prod[2])
	fourD := big.NewRat(int64(4*d), 1)

	t0 := new(big.Rat).Sub(t1, fourD)
	if k == 2 {
		t0.Quo(t0, new(big.Rat).SetInt(b))
	}
	rb.changeLower(t0)

	t0 = new(big.Rat).Add(t1, fourD)
	if k == 2 {
		t0.Quo(t0, new(big.Rat).SetInt(b))
	}
	rb.changeUpper(t0)

	p3, p4, p5 := prod[3], prod[4], prod[5]
	if p5.Sign() > 0 {
		sq := new(big.Rat).Mul(p4, p4)
		sq.Quo(sq, p5)
		t0 = new(big.Rat).Sub(p3, sq)
		rb.changeUpper(t0)
	}
	t0 = new(big.Rat).Mul(p4, big.NewRat(-4, 1))
	t0.Add(t0, p3)
	rb.changeLower(t0)

	p6, p7, p8 := prod[6], prod[7], prod[8]
	if k%2 == 0 && p8.Sign() > 0 {
		sq := new(big.Rat).Mul(p7, p7)
		sq.Quo(sq, p8)
		t0 = new(big.Rat).Sub(p6, sq)
		rb.changeUpper(t0)
	} else if k%2 == 1 && p8.Sign() < 0 {
		sq := new(big.Rat).Mul(p7, p7)
		sq.Quo(sq, p8)
		t0 = new(big.Rat).Sub(p6, sq)
		rb.changeLower(t0)
	}
	t0 = new(big.Rat).Mul(p7, big.NewRat(4, 1))
	t0.Add(t0, p6)
	if k%2 == 0 {
		rb.changeLower(t0)
	} else {
		rb.changeUpper(t0)
	}

	if k%2 == 0 {
		t0 = new(big.Rat).Mul(sumCol[k-2], big.NewRat(-4, 1))
		t0.Add(t0, sumCol[k])
		rb.changeLower(t0)
	}
}

// finalize commits the chosen [lower, upper] range: upper[n-1] records the
// top of the range relative to the current pol[n-1], sumCol[k] is corrected
// to reflect shifting pol[n-1] down to its new minimum, and pol[n-1] itself
// is advanced to that minimum.
func finalize(pol, upper []*big.Int, sumCol []*big.Rat, f *big.Rat, rb *rangeBuilder, n, k int, modulus int64) {
	upperDelta := new(big.Int).Mul(rb.upper, big.NewInt(modulus))
	upper[n-1] = new(big.Int).Add(pol[n-1], upperDelta)

	correction := new(big.Rat).Mul(f, new(big.Rat).SetInt(rb.lower))
	sumCol[k] = new(big.Rat).Sub(sumCol[k], correction)

	lowerDelta := new(big.Int).Mul(rb.lower, big.NewInt(modulus))
	pol[n-1] = new(big.Int).Add(pol[n-1], lowerDelta)
}
