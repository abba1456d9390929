package weilpoly

import (
	"context"
	"math/big"

	"github.com/edgarcosta/weilpoly/internal/scheduler"
	"github.com/edgarcosta/weilpoly/internal/search"
)

// Next advances ds and returns a copy of the emitted symmetrized
// polynomial on search.Found (nil otherwise), along with the resulting
// status. It is the resumable, single-step primitive Enumerate is built
// on: callers that need to interleave enumeration with other work, or
// resume after a NodeLimit, should call Next directly.
func Next(sc *StaticContext, ds *search.DynamicState) ([]*big.Int, search.Status) {
	status := search.NextPol(sc.sctx, ds)
	if status != search.Found {
		return nil, status
	}
	out := make([]*big.Int, len(ds.Sympol))
	for i, c := range ds.Sympol {
		out[i] = new(big.Int).Set(c)
	}
	return out, status
}

// Enumerate drives a single branch to completion, single-threaded,
// streaming every emitted polynomial on the returned channel. The channel
// is closed when the branch reaches Done or sc.NodeLimit is exhausted; the
// final status is returned once the channel has closed (poll it after the
// range over the channel completes, not during).
func Enumerate(sc *StaticContext) (<-chan []*big.Int, *search.Status) {
	ds := sc.NewInitialState()
	out := make(chan []*big.Int)
	status := new(search.Status)

	go func() {
		defer close(out)
		for {
			sympol, s := Next(sc, ds)
			if sympol != nil {
				out <- sympol
			}
			if s == search.Found {
				continue
			}
			*status = s
			return
		}
	}()

	return out, status
}

// EnumerateParallel runs the same configuration across numWorkers
// goroutines via internal/scheduler's work-stealing driver, streaming
// every emitted polynomial on the returned channel. The returned func
// blocks until every worker has finished and reports the first worker
// error, if any (cancellation of ctx being the only source of one).
func EnumerateParallel(ctx context.Context, sc *StaticContext, numWorkers int) (<-chan []*big.Int, func() error) {
	initial := sc.NewInitialState()
	results, wait := scheduler.Run(ctx, sc.sctx, initial, numWorkers)

	out := make(chan []*big.Int)
	go func() {
		defer close(out)
		for r := range results {
			out <- r.Sympol
		}
	}()

	return out, wait
}
