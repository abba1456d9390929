// Package bigx provides the exact-arithmetic primitives shared by the
// search engine: a bump-allocated arena of big.Int/big.Rat scratch cells,
// integer vector helpers (content, Horner evaluation), and floor/ceil
// arithmetic in Q and in the quadratic extension Q(sqrt(q)).
package bigx

import "math/big"

// Arena is a per-branch pool of big.Int/big.Rat cells, reused across calls
// to avoid allocating on every search step. A branch (one DynamicState)
// owns its Arena exclusively; cloning a branch deep-copies the values that
// matter and gets its own fresh Arena.
//
// Ints/Rats hand out pointers into pre-grown backing slices; Reset rewinds
// the bump pointers so the next call can reuse the same cells. Views handed
// out before a Reset must not be retained past it.
type Arena struct {
	ints    []big.Int
	intPos  int
	rats    []big.Rat
	ratsPos int
}

// NewArena preallocates enough cells for a search over polynomials of
// half-degree d: intCap and ratCap follow the scratch-length formulas
// for the widest Sturm call (3*n+8 ints) and a handful of rationals for
// the range-builder temporaries.
func NewArena(intCap, ratCap int) *Arena {
	if intCap < 1 {
		intCap = 1
	}
	if ratCap < 1 {
		ratCap = 1
	}
	return &Arena{
		ints: make([]big.Int, intCap),
		rats: make([]big.Rat, ratCap),
	}
}

// Reset rewinds the bump pointers, making all previously issued cells
// available for reuse. AllRootsInInterval and AllRootsReal each call it
// once on entry.
func (a *Arena) Reset() {
	a.intPos = 0
	a.ratsPos = 0
}

// Ints returns n zeroed *big.Int views, growing the backing slice if the
// arena is exhausted.
func (a *Arena) Ints(n int) []*big.Int {
	if a.intPos+n > len(a.ints) {
		grown := make([]big.Int, a.intPos+n)
		copy(grown, a.ints)
		a.ints = grown
	}
	out := make([]*big.Int, n)
	for i := 0; i < n; i++ {
		cell := &a.ints[a.intPos+i]
		cell.SetInt64(0)
		out[i] = cell
	}
	a.intPos += n
	return out
}

// Rats returns n zeroed *big.Rat views, growing the backing slice if the
// arena is exhausted.
func (a *Arena) Rats(n int) []*big.Rat {
	if a.ratsPos+n > len(a.rats) {
		grown := make([]big.Rat, a.ratsPos+n)
		copy(grown, a.rats)
		a.rats = grown
	}
	out := make([]*big.Rat, n)
	for i := 0; i < n; i++ {
		cell := &a.rats[a.ratsPos+i]
		cell.SetInt64(0)
		out[i] = cell
	}
	a.ratsPos += n
	return out
}
