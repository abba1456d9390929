package search

import (
	"math/big"
	"testing"

	"github.com/edgarcosta/weilpoly/internal/tables"
	"github.com/stretchr/testify/assert"
)

func newTestContext(d int, lead, q int64, modlist []int64, sign int64, cofactor []*big.Int) *Context {
	return &Context{
		Tables:    tables.Build(d, lead, q, modlist),
		Q:         q,
		A:         big.NewInt(-2),
		B:         big.NewInt(2),
		Modlist:   modlist,
		NodeLimit: -1,
		Sign:      sign,
		Cofactor:  cofactor,
	}
}

// d=1, lead=1, q=1: the degree-1 half of scenario S1. The y-space
// polynomial is y + pol[0] with pol[0] ranging over the admissible window
// [-2,2], producing x^2 + b x + 1 for b = pol[0] in ascending order.
func TestNextPolDegreeOneEnumeratesFive(t *testing.T) {
	a := assert.New(t)

	ctx := newTestContext(1, 1, 1, []int64{1, 1}, 1, []*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0)})
	ds := NewDynamicState(1, 1, nil)

	var bs []int64
	for {
		status := NextPol(ctx, ds)
		if status == Done {
			break
		}
		a.Equal(Found, status)
		bs = append(bs, ds.Pol[0].Int64())
	}

	a.Equal([]int64{-2, -1, 0, 1, 2}, bs)
}

// The first solution's symmetrized output for pol=[-2,1] is x^2-2x+1.
func TestComposeSympolFirstSolution(t *testing.T) {
	a := assert.New(t)

	ctx := newTestContext(1, 1, 1, []int64{1, 1}, 1, []*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0)})
	ds := NewDynamicState(1, 1, nil)

	status := NextPol(ctx, ds)
	a.Equal(Found, status)
	a.Equal(int64(-2), ds.Pol[0].Int64())

	got := make([]int64, len(ds.Sympol))
	for i, c := range ds.Sympol {
		got[i] = c.Int64()
	}
	a.Equal([]int64{1, -2, 1, 0, 0}, got)
}

func TestConvolve(t *testing.T) {
	a := assert.New(t)

	// (1+x) * (1+x) = 1+2x+x^2
	out := convolve([]*big.Int{big.NewInt(1), big.NewInt(1)}, []*big.Int{big.NewInt(1), big.NewInt(1)})
	a.Len(out, 3)
	a.Equal(int64(1), out[0].Int64())
	a.Equal(int64(2), out[1].Int64())
	a.Equal(int64(1), out[2].Int64())
}

// d=2, lead=1, q=2 (scenario S3's half): the endpoint window is [0, 4q]
// rather than [-2,2], driving tier1/tier2's q!=1 branches in
// internal/powersum and the q-scaled rows internal/tables builds. Every
// emitted sympol must have sympol[0]=q^d=4 and sympol[2d]=1.
func TestNextPolQEqualsTwoSatisfiesScenarioThree(t *testing.T) {
	a := assert.New(t)

	ctx := &Context{
		Tables:    tables.Build(2, 1, 2, []int64{1, 1, 1}),
		Q:         2,
		A:         big.NewInt(0),
		B:         big.NewInt(8),
		Modlist:   []int64{1, 1, 1},
		NodeLimit: -1,
		Sign:      1,
		Cofactor:  []*big.Int{big.NewInt(1), big.NewInt(0), big.NewInt(0)},
	}
	ds := NewDynamicState(2, 1, nil)

	count := 0
	for {
		status := NextPol(ctx, ds)
		if status == Done {
			break
		}
		a.Equal(Found, status)
		a.Equal(int64(4), ds.Sympol[0].Int64())
		a.Equal(int64(1), ds.Sympol[4].Int64())
		count++
	}
	a.True(count > 0)
}

func TestSplitProducesDisjointSibling(t *testing.T) {
	a := assert.New(t)

	ds := NewDynamicState(2, 1, nil)
	ds.N = 0
	ds.Upper[2] = big.NewInt(5)
	ds.Pol[2] = big.NewInt(1)

	sibling := ds.Split()
	if a.NotNil(sibling) {
		a.Equal(int64(1), ds.Upper[2].Int64()) // restricted to lower half
		a.Equal(1, sibling.N)
		a.Equal(1, sibling.Ascend)
	}
}
