// Package search implements the backtracking enumerator: a DynamicState
// descends and ascends through coefficient indices d, d-1, ..., 0, pruning
// via internal/powersum at every node and emitting one symmetrized
// polynomial per solution found.
package search

import (
	"math/big"

	"github.com/edgarcosta/weilpoly/internal/bigx"
	"github.com/edgarcosta/weilpoly/internal/powersum"
	"github.com/edgarcosta/weilpoly/internal/tables"
	"github.com/rs/zerolog/log"
)

// Status is the outcome of one NextPol call.
type Status int

const (
	// Done means the entire subtree rooted at this state has been
	// enumerated; no further calls will produce solutions.
	Done Status = iota
	// Found means a solution was produced; read Sympol.
	Found
	// NodeLimit means the node budget was exhausted; the state is
	// resumable by calling NextPol again.
	NodeLimit
)

// Context bundles the immutable, shared-across-branches configuration a
// DynamicState needs on every step: the precomputed tables, the Weil
// weight, the endpoint interval, the divisibility modulus list, the
// node-visit budget, and the output sign/cofactor.
type Context struct {
	Tables    *tables.Tables
	Q         int64
	A, B      *big.Int
	Modlist   []int64
	NodeLimit int64 // -1 means unbounded
	Sign      int64
	Cofactor  []*big.Int // length 3: (const, x-coeff, x^2-coeff)
}

// DynamicState is one branch of the search tree. It owns its buffers
// exclusively; Clone produces an independent deep copy and Split carves a
// sibling off the unexplored upper half of the current branch.
type DynamicState struct {
	D      int
	N      int
	Ascend int
	Count  int64

	// prevN records the n in effect the last time the non-ascend branch
	// of NextPol ran, so a later visit can tell whether the tree has
	// ascended past this level since then (the range-monotonicity check
	// that guards a stale bound from being reused). Mirrors the reference
	// implementation's reuse of its persistent "n" field for this purpose.
	prevN int

	Pol    []*big.Int // length d+1
	Upper  []*big.Int // length d+1
	SumCol []*big.Rat // length d+2

	Sympol []*big.Int // length 2d+3, valid after a Found result

	// Scratch is this branch's private arena of big.Int cells, reused
	// across every SetRangeFromPowerSums call this branch makes. Clone
	// and Split never copy it; each branch gets its own fresh arena.
	Scratch *bigx.Arena
}

// NewDynamicState builds the initial state for a search of half-degree d,
// with the optional prefix q0 (length d+1; pass nil for an all-zero
// prefix). pol[d] is always set to lead.
func NewDynamicState(d int, lead int64, q0 []int64) *DynamicState {
	ds := &DynamicState{
		D:       d,
		N:       d,
		prevN:   d,
		Ascend:  0,
		Count:   0,
		Pol:     make([]*big.Int, d+1),
		Upper:   make([]*big.Int, d+1),
		SumCol:  make([]*big.Rat, d+2),
		Sympol:  make([]*big.Int, 2*d+3),
		Scratch: bigx.NewArena(3*d+8, 1),
	}
	for i := range ds.Pol {
		if q0 != nil {
			ds.Pol[i] = big.NewInt(q0[i])
		} else {
			ds.Pol[i] = new(big.Int)
		}
		ds.Upper[i] = new(big.Int).Set(ds.Pol[i])
	}
	ds.Pol[d] = big.NewInt(lead)
	ds.Upper[d] = big.NewInt(lead)
	for i := range ds.SumCol {
		ds.SumCol[i] = new(big.Rat)
	}
	ds.SumCol[0].SetInt64(int64(d))
	for i := range ds.Sympol {
		ds.Sympol[i] = new(big.Int)
	}
	return ds
}

// Clone returns an independent deep copy of ds.
func (ds *DynamicState) Clone() *DynamicState {
	clone := &DynamicState{
		D:       ds.D,
		N:       ds.N,
		prevN:   ds.prevN,
		Ascend:  ds.Ascend,
		Count:   ds.Count,
		Pol:     make([]*big.Int, len(ds.Pol)),
		Upper:   make([]*big.Int, len(ds.Upper)),
		SumCol:  make([]*big.Rat, len(ds.SumCol)),
		Sympol:  make([]*big.Int, len(ds.Sympol)),
		Scratch: bigx.NewArena(3*ds.D+8, 1),
	}
	for i, v := range ds.Pol {
		clone.Pol[i] = new(big.Int).Set(v)
	}
	for i, v := range ds.Upper {
		clone.Upper[i] = new(big.Int).Set(v)
	}
	for i, v := range ds.SumCol {
		if v != nil {
			clone.SumCol[i] = new(big.Rat).Set(v)
		}
	}
	for i, v := range ds.Sympol {
		clone.Sympol[i] = new(big.Int).Set(v)
	}
	return clone
}

// Split scans coefficients from d down to n+2 for the first one with
// room above its current value; if found, it restricts ds to the lower
// half and returns a fresh sibling state covering the upper half. Returns
// nil if no such coefficient exists (the branch cannot be split further).
func (ds *DynamicState) Split() *DynamicState {
	for i := ds.D; i > ds.N+1; i-- {
		if ds.Pol[i].Cmp(ds.Upper[i]) < 0 {
			sibling := ds.Clone()
			ds.Upper[i] = new(big.Int).Set(ds.Pol[i])
			sibling.N = i - 1
			sibling.prevN = i - 1
			sibling.Ascend = 1
			sibling.Count = 0
			return sibling
		}
	}
	return nil
}

// NextPol advances ds until it finds a solution, exhausts the subtree, or
// hits ctx.NodeLimit. Resumable: calling NextPol again after a NodeLimit
// result continues exactly where the previous call left off.
func NextPol(ctx *Context, ds *DynamicState) Status {
	d := ds.D
	if ds.N > d {
		return Done
	}

	for {
		if ds.Ascend > 0 {
			ds.N++
			if ds.N > d {
				return Done
			}
		} else {
			prevN := ds.prevN
			ds.prevN = ds.N
			r := powersum.SetRangeFromPowerSums(ctx.Tables, ctx.Modlist, ctx.Q, ctx.A, ctx.B, ds.Pol, ds.Upper, ds.SumCol, ds.N, ds.Scratch)
			if r > 0 {
				ds.N--
				if ds.N < 0 {
					composeSympol(ctx, ds)
					ds.Ascend = 1
					return Found
				}
				continue
			}

			ds.Count++
			if ctx.NodeLimit != -1 && ds.Count >= ctx.NodeLimit {
				return NodeLimit
			}
			if r < -1 {
				ds.Ascend = -r - 1
				log.Trace().Int("n", ds.N).Int("ascend", ds.Ascend).Msg("stable sturm failure, pruning subtree")
				continue
			}
			if r == -1 && prevN < ds.N {
				ds.Ascend = 1
				continue
			}
		}

		if ds.Ascend > 1 {
			ds.Ascend--
		} else if ctx.Modlist[ds.N] == 0 {
			ds.Ascend = 1
		} else {
			ds.Pol[ds.N].Add(ds.Pol[ds.N], big.NewInt(ctx.Modlist[ds.N]))
			if ds.Pol[ds.N].Cmp(ds.Upper[ds.N]) > 0 {
				ds.Ascend = 1
			} else {
				ds.Ascend = 0
				k := d - ds.N
				ds.SumCol[k] = new(big.Rat).Sub(ds.SumCol[k], ctx.Tables.F[ds.N])
			}
		}
	}
}

// composeSympol rebuilds the symmetrized (reciprocal) polynomial from the
// just-completed pol[0..d] and multiplies in sign and cofactor.
func composeSympol(ctx *Context, ds *DynamicState) {
	d := ds.D
	q := ctx.Q

	raw := make([]*big.Int, 2*d+1)
	for i := range raw {
		raw[i] = new(big.Int)
	}

	for i := 0; i <= d; i++ {
		temp := big.NewInt(1)
		for j := 0; j <= i; j++ {
			idx := 2*d - (d - i + 2*j)
			term := new(big.Int).Mul(ds.Pol[i], temp)
			raw[idx].Add(raw[idx], term)
			if j < i {
				temp.Mul(temp, big.NewInt(q))
				temp.Mul(temp, big.NewInt(int64(i-j)))
				temp.Div(temp, big.NewInt(int64(j+1)))
			}
		}
	}

	if ctx.Sign < 0 {
		bigx.ScalarMulVec(raw, raw, big.NewInt(ctx.Sign))
	}

	out := convolve(raw, ctx.Cofactor)
	copy(ds.Sympol, out)
}

// convolve returns the coefficient vector of a*b (ascending degree).
func convolve(a, b []*big.Int) []*big.Int {
	out := make([]*big.Int, len(a)+len(b)-1)
	for i := range out {
		out[i] = new(big.Int)
	}
	for i, av := range a {
		if av.Sign() == 0 {
			continue
		}
		for j, bv := range b {
			if bv.Sign() == 0 {
				continue
			}
			out[i+j].Add(out[i+j], new(big.Int).Mul(av, bv))
		}
	}
	return out
}
