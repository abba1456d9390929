// Package tables builds the immutable rational matrices the search engine
// consults on every node: the binomial triangle, the nine symmetrized
// power-sum matrices per derivative depth, and the coefficient scaling
// vector.
package tables

import "math/big"

// Tables holds everything that depends only on (d, lead, q, modlist) and
// never changes once built: one instance is shared (read-only) across every
// DynamicState produced by a search.
type Tables struct {
	D    int
	Q    int64
	Lead int64

	// Binom[i][j] = C(i,j), for 0 <= i,j <= d.
	Binom [][]*big.Int

	// SumMats[i] is a 9x(d+1) matrix of exact rationals; row semantics
	// are documented in buildSumMats.
	SumMats [][][]*big.Rat

	// F[n] = modlist[n]*(d-n)/lead, with modlist[n] treated as 1 when it
	// is actually 0 (a frozen coefficient still needs a nonzero scale
	// factor to keep the power-sum bookkeeping well-defined).
	F []*big.Rat
}

// Build constructs Tables for the given half-degree d, leading coefficient
// lead, Weil weight q, and per-coefficient modulus list (length d+1).
//
// Grounded on ps_static_init's binom_mat and sum_mats construction: row 0 of
// SumMats[i] carries the coefficients of 2*T_i(x/2) (scaled by q^{(i-j)/2}
// when q!=1 and i,j share parity); rows 1-8 are auxiliary quantities used
// only by the q=1 tier-3 tightening, built from shifted/scaled copies of
// row 0 and from expansions of (2+x)^i and (-2+x)^i.
func Build(d int, lead, q int64, modlist []int64) *Tables {
	t := &Tables{D: d, Q: q, Lead: lead}
	t.Binom = buildBinom(d)
	t.SumMats = buildSumMats(d, q, t.Binom)
	t.F = buildF(d, lead, modlist)
	return t
}

func buildBinom(d int) [][]*big.Int {
	binom := make([][]*big.Int, d+1)
	for i := 0; i <= d; i++ {
		binom[i] = make([]*big.Int, d+1)
		for j := 0; j <= d; j++ {
			binom[i][j] = binomial(i, j)
		}
	}
	return binom
}

func binomial(n, k int) *big.Int {
	if k < 0 || k > n {
		return new(big.Int)
	}
	num := big.NewInt(1)
	for i := 0; i < k; i++ {
		num.Mul(num, big.NewInt(int64(n-i)))
	}
	den := big.NewInt(1)
	for i := 1; i <= k; i++ {
		den.Mul(den, big.NewInt(int64(i)))
	}
	return num.Div(num, den)
}

// chebyshevT returns the coefficients (ascending degree) of the Chebyshev
// polynomial of the first kind T_i, via the standard three-term recurrence
// T_0=1, T_1=x, T_i = 2x*T_{i-1} - T_{i-2}.
func chebyshevT(i int) []*big.Int {
	t0 := []*big.Int{big.NewInt(1)}
	if i == 0 {
		return t0
	}
	t1 := []*big.Int{big.NewInt(0), big.NewInt(1)}
	if i == 1 {
		return t1
	}
	for n := 2; n <= i; n++ {
		next := make([]*big.Int, n+1)
		for k := range next {
			next[k] = new(big.Int)
		}
		for k, c := range t1 {
			next[k+1].Add(next[k+1], new(big.Int).Mul(c, big.NewInt(2)))
		}
		for k, c := range t0 {
			next[k].Sub(next[k], c)
		}
		t0, t1 = t1, next
	}
	return t1
}

// binomialExpansion returns the coefficients (ascending degree) of
// (offset + x)^i.
func binomialExpansion(i int, offset int64) []*big.Int {
	out := make([]*big.Int, i+1)
	off := big.NewInt(offset)
	for j := 0; j <= i; j++ {
		c := binomial(i, j)
		p := new(big.Int).Exp(off, big.NewInt(int64(i-j)), nil)
		out[j] = c.Mul(c, p)
	}
	return out
}

func newZeroMat(rows, cols int) [][]*big.Rat {
	m := make([][]*big.Rat, rows)
	for r := range m {
		m[r] = make([]*big.Rat, cols)
		for c := range m[r] {
			m[r][c] = new(big.Rat)
		}
	}
	return m
}

func buildSumMats(d int, q int64, binom [][]*big.Int) [][][]*big.Rat {
	mats := make([][][]*big.Rat, d+1)
	for i := 0; i <= d; i++ {
		mats[i] = newZeroMat(9, d+1)
		cheb := chebyshevT(i)
		plus2 := binomialExpansion(i, 2)
		minus2 := binomialExpansion(i, -2)

		for j := 0; j <= d; j++ {
			// Row 0: coeffs of 2*T_i(x/2), scaled by q^{(i-j)/2} when
			// q != 1 and i,j agree in parity.
			if j <= i {
				k1 := new(big.Rat).SetFrac(cheb[j], big.NewInt(int64(1)<<uint(j)))
				k1.Mul(k1, big.NewRat(2, 1))
				if q != 1 && (i-j)%2 == 0 {
					pw := new(big.Int).Exp(big.NewInt(q), big.NewInt(int64((i-j)/2)), nil)
					k1.Mul(k1, new(big.Rat).SetInt(pw))
				}
				mats[i][0][j] = k1
			}

			// Row 1: row 0 of SumMats[i-2], scaled by -2.
			if i >= 2 {
				k1 := new(big.Rat).Set(mats[i-2][0][j])
				k1.Mul(k1, big.NewRat(-2, 1))
				mats[i][1][j] = k1
			}

			// Row 2: row 0 of SumMats[i-2], shifted by two columns.
			if i >= 2 && j >= 2 {
				mats[i][2][j] = new(big.Rat).Set(mats[i-2][0][j-2])
			}

			// Row 3: coeffs of (2+x)^i.
			if j <= i {
				mats[i][3][j] = new(big.Rat).SetInt(plus2[j])
			}

			// Row 4: row 3 of SumMats[i-1].
			if i >= 1 {
				mats[i][4][j] = new(big.Rat).Set(mats[i-1][3][j])
			}

			// Row 5: row 3 of SumMats[i-2].
			if i >= 2 {
				mats[i][5][j] = new(big.Rat).Set(mats[i-2][3][j])
			}

			// Row 6: coeffs of (-2+x)^i.
			if j <= i {
				mats[i][6][j] = new(big.Rat).SetInt(minus2[j])
			}

			// Row 7: row 6 of SumMats[i-1].
			if i >= 1 {
				mats[i][7][j] = new(big.Rat).Set(mats[i-1][6][j])
			}

			// Row 8: row 6 of SumMats[i-2].
			if i >= 2 {
				mats[i][8][j] = new(big.Rat).Set(mats[i-2][6][j])
			}
		}
	}
	return mats
}

func buildF(d int, lead int64, modlist []int64) []*big.Rat {
	f := make([]*big.Rat, d+1)
	for n := 0; n <= d; n++ {
		m := modlist[n]
		if m == 0 {
			m = 1
		}
		f[n] = big.NewRat(m*int64(d-n), lead)
	}
	return f
}
