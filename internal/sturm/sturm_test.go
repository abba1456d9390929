package sturm

import (
	"math/big"
	"testing"

	"github.com/edgarcosta/weilpoly/internal/bigx"
	"github.com/stretchr/testify/assert"
)

func ints(vals ...int64) []*big.Int {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		out[i] = big.NewInt(v)
	}
	return out
}

func TestAllRootsInInterval(t *testing.T) {
	a := assert.New(t)
	arena := bigx.NewArena(16, 1)

	// x^2 - 1, roots at -1 and 1, both within [-1, 1].
	r := AllRootsInInterval(ints(-1, 0, 1), big.NewInt(-1), big.NewInt(1), arena)
	a.True(r.Ok())

	// x^2 - 4, roots at -2 and 2, outside [-1, 1].
	r2 := AllRootsInInterval(ints(-4, 0, 1), big.NewInt(-1), big.NewInt(1), arena)
	a.False(r2.Ok())

	// x - 5, single root at 5, outside [-1, 1].
	r3 := AllRootsInInterval(ints(-5, 1), big.NewInt(-1), big.NewInt(1), arena)
	a.False(r3.Ok())

	// x, single root at 0, within [-1, 1].
	r4 := AllRootsInInterval(ints(0, 1), big.NewInt(-1), big.NewInt(1), arena)
	a.True(r4.Ok())

	// (x-1)*(x+1) again but degenerate tight interval [-1,1] touching both
	// endpoints exactly - still Ok since the interval is closed.
	r5 := AllRootsInInterval(ints(-1, 0, 1), big.NewInt(-1), big.NewInt(1), arena)
	a.True(r5.Ok())
}

func TestAllRootsReal(t *testing.T) {
	a := assert.New(t)
	arena := bigx.NewArena(16, 1)

	// x^2 - 1: two real roots.
	r := AllRootsReal(ints(-1, 0, 1), arena)
	a.True(r.Ok())

	// x^2 + 1: no real roots.
	r2 := AllRootsReal(ints(1, 0, 1), arena)
	a.False(r2.Ok())

	// x^3 - x = x(x-1)(x+1): three real roots.
	r3 := AllRootsReal(ints(0, -1, 0, 1), arena)
	a.True(r3.Ok())

	// x^3 + x = x(x^2+1): one real root, two complex.
	r4 := AllRootsReal(ints(0, 1, 0, 1), arena)
	a.False(r4.Ok())

	// Linear polynomial: trivially all-real.
	r5 := AllRootsReal(ints(3, 1), arena)
	a.True(r5.Ok())
}

// Worked degree-3 Weil-style case: (x-1)(x-2)(x+3) = x^3+0x^2-7x+6,
// expanding: (x-1)(x-2) = x^2-3x+2; times (x+3):
// x^3-3x^2+2x + 3x^2-9x+6 = x^3 -7x +6. Roots 1, 2, -3 all in [-3, 3].
func TestAllRootsInIntervalDegreeThree(t *testing.T) {
	a := assert.New(t)
	arena := bigx.NewArena(16, 1)

	r := AllRootsInInterval(ints(6, -7, 0, 1), big.NewInt(-3), big.NewInt(3), arena)
	a.True(r.Ok())

	// Narrowing the interval to [-2, 2] excludes the root at -3.
	r2 := AllRootsInInterval(ints(6, -7, 0, 1), big.NewInt(-2), big.NewInt(2), arena)
	a.False(r2.Ok())
}
