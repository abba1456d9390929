package powersum

import (
	"math/big"
	"testing"

	"github.com/edgarcosta/weilpoly/internal/bigx"
	"github.com/edgarcosta/weilpoly/internal/tables"
	"github.com/stretchr/testify/assert"
)

func buildTestTables(t *testing.T, d int, lead, q int64, modlist []int64) *tables.Tables {
	t.Helper()
	return tables.Build(d, lead, q, modlist)
}

// (x-1)(x-2)(x+3) = x^3 - 7x + 6, roots 1, 2, -3.
// Hand-computed power sums: S1 = 1+2-3 = 0, S2 = 1+4+9 = 14.
func TestUpdatePowerSumNewtonIdentity(t *testing.T) {
	a := assert.New(t)

	pol := []*big.Int{big.NewInt(6), big.NewInt(-7), big.NewInt(0), big.NewInt(1)}
	d := 3
	sumCol := make([]*big.Rat, d+2)
	sumCol[0] = big.NewRat(int64(d), 1)

	updatePowerSum(sumCol, pol, d, 1)
	a.Equal(0, sumCol[1].Cmp(big.NewRat(0, 1)))

	updatePowerSum(sumCol, pol, d, 2)
	a.Equal(0, sumCol[2].Cmp(big.NewRat(14, 1)))
}

func TestMatVecMul(t *testing.T) {
	a := assert.New(t)

	d := 1
	mat := make([][]*big.Rat, 9)
	for r := range mat {
		mat[r] = []*big.Rat{big.NewRat(1, 1), big.NewRat(2, 1)}
	}
	col := []*big.Rat{big.NewRat(3, 1), big.NewRat(5, 1)}

	out := matVecMul(mat, col, d)
	a.Len(out, 9)
	// 1*3 + 2*5 = 13 for every row, since every row is identical.
	for _, v := range out {
		a.Equal(0, v.Cmp(big.NewRat(13, 1)))
	}
}

func TestRangeBuilderPlainFloorCeil(t *testing.T) {
	a := assert.New(t)

	rb := &rangeBuilder{f: big.NewRat(1, 1), q: 1}
	rb.setLower(big.NewRat(-3, 2))
	rb.setUpper(big.NewRat(3, 2))
	a.Equal(int64(-1), rb.lower.Int64())
	a.Equal(int64(1), rb.upper.Int64())

	rb.changeLower(big.NewRat(-1, 2))
	a.Equal(int64(0), rb.lower.Int64())

	rb.changeUpper(big.NewRat(1, 2))
	a.Equal(int64(0), rb.upper.Int64())
}

func TestRangeBuilderQuad(t *testing.T) {
	a := assert.New(t)

	rb := &rangeBuilder{f: big.NewRat(1, 1), q: 2}
	// floor(2 + 1*sqrt(2)) = 3, ceil = 4.
	rb.setUpperQuad(big.NewRat(2, 1), big.NewRat(1, 1))
	a.Equal(int64(3), rb.upper.Int64())

	rb.setLowerQuad(big.NewRat(2, 1), big.NewRat(1, 1))
	a.Equal(int64(4), rb.lower.Int64())
}

// SetRangeFromPowerSums on a degree-1 case (d=1, lead=1, q=1) must not
// crash and must produce a non-empty, finite range since x+0 and x+-2..+2
// are all admissible leading candidates for the S1 scenario (x^2+bx+1).
func TestSetRangeFromPowerSumsDegreeOneRuns(t *testing.T) {
	a := assert.New(t)

	tb := buildTestTables(t, 1, 1, 1, []int64{1, 1})
	pol := []*big.Int{big.NewInt(0), big.NewInt(1)}
	upper := []*big.Int{big.NewInt(0), big.NewInt(0)}
	sumCol := []*big.Rat{big.NewRat(1, 1), nil, nil}

	arena := bigx.NewArena(16, 1)
	r := SetRangeFromPowerSums(tb, []int64{1, 1}, 1, big.NewInt(-2), big.NewInt(2), pol, upper, sumCol, 1, arena)
	a.Equal(1, r)
	a.True(upper[0].Cmp(pol[0]) >= 0)
}

// Same degree-1 shape but q=2, endpoint window [0, 4q]=[0,8]: exercises the
// q!=1 branches of tier1 (odd-k quadratic-field bound) and tier2
// (even-index Horner evaluation at 4q) that every q=1 test above never
// reaches.
func TestSetRangeFromPowerSumsQEqualsTwoRuns(t *testing.T) {
	a := assert.New(t)

	tb := buildTestTables(t, 1, 1, 2, []int64{1, 1})
	pol := []*big.Int{big.NewInt(0), big.NewInt(1)}
	upper := []*big.Int{big.NewInt(0), big.NewInt(0)}
	sumCol := []*big.Rat{big.NewRat(1, 1), nil, nil}

	arena := bigx.NewArena(16, 1)
	r := SetRangeFromPowerSums(tb, []int64{1, 1}, 2, big.NewInt(0), big.NewInt(8), pol, upper, sumCol, 1, arena)
	a.Equal(1, r)
	a.True(upper[0].Cmp(pol[0]) >= 0)
}
