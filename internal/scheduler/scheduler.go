// Package scheduler fans a single search branch out across goroutines.
// Workers share a work queue of splittable branches; a worker that burns
// through its node budget without finishing carves a sibling off its own
// unexplored range via internal/search's Split and pushes it back for an
// idle peer, rather than ever touching another worker's DynamicState.
package scheduler

import (
	"context"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/edgarcosta/weilpoly/internal/search"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Result is one emitted symmetrized polynomial, tagged with the worker
// that produced it.
type Result struct {
	Sympol []*big.Int
	Worker int
}

// chunk bounds how many nodes a worker visits between opportunities to
// split off work for idle peers. Small enough to keep the queue fed under
// an uneven branch distribution, large enough that the per-chunk overhead
// of copying ctx and checking the queue stays negligible.
const chunk = 1 << 12

// Run drains the branch rooted at initial across numWorkers goroutines and
// streams every emitted polynomial on the returned channel, which is
// closed once the whole tree is exhausted, sctx.NodeLimit is reached on
// every live branch, or ctx is cancelled. The returned error is nil unless
// ctx was cancelled or a worker's context deadline elapsed; callers should
// still drain the channel to completion before inspecting it.
func Run(ctx context.Context, sctx *search.Context, initial *search.DynamicState, numWorkers int) (<-chan Result, func() error) {
	if numWorkers < 1 {
		numWorkers = 1
	}

	workChan := make(chan *search.DynamicState, 4*numWorkers)
	solutionChan := make(chan Result, 2*numWorkers)
	var pending atomic.Int64
	var active atomic.Int64
	var closeOnce sync.Once

	workChan <- initial
	pending.Add(1)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < numWorkers; i++ {
		workerID := i
		g.Go(func() error {
			return runWorker(gctx, sctx, workerID, workChan, solutionChan, &pending, &active, &closeOnce)
		})
	}

	go func() {
		_ = g.Wait()
		close(solutionChan)
	}()

	return solutionChan, g.Wait
}

// runWorker repeatedly pulls a branch from workChan and drives it until
// the branch is exhausted, the shared node limit is hit, or the queue
// empties out with no worker still holding a branch (the global
// termination condition, detected via the active/pending counter pair).
func runWorker(gctx context.Context, sctx *search.Context, workerID int, workChan chan *search.DynamicState, solutionChan chan<- Result, pending, active *atomic.Int64, closeOnce *sync.Once) error {
	for {
		select {
		case <-gctx.Done():
			return gctx.Err()
		case ds, ok := <-workChan:
			if !ok {
				return nil
			}
			pending.Add(-1)
			active.Add(1)

			err := runBranch(gctx, sctx, ds, workerID, workChan, solutionChan, pending)

			active.Add(-1)
			if err != nil {
				return err
			}
			if active.Load() == 0 && pending.Load() == 0 {
				closeOnce.Do(func() { close(workChan) })
				return nil
			}
		}
	}
}

// runBranch drives a single branch in chunk-sized steps, splitting off a
// sibling for the shared queue whenever the chunk budget runs out before
// the branch is either exhausted or found.
func runBranch(gctx context.Context, sctx *search.Context, ds *search.DynamicState, workerID int, workChan chan<- *search.DynamicState, solutionChan chan<- Result, pending *atomic.Int64) error {
	local := *sctx
	for {
		select {
		case <-gctx.Done():
			return gctx.Err()
		default:
		}

		local.NodeLimit = ds.Count + chunk
		if sctx.NodeLimit != -1 && sctx.NodeLimit < local.NodeLimit {
			local.NodeLimit = sctx.NodeLimit
		}

		switch search.NextPol(&local, ds) {
		case search.Found:
			sympol := make([]*big.Int, len(ds.Sympol))
			for i, c := range ds.Sympol {
				sympol[i] = new(big.Int).Set(c)
			}
			select {
			case solutionChan <- Result{Sympol: sympol, Worker: workerID}:
			case <-gctx.Done():
				return gctx.Err()
			}

		case search.Done:
			log.Debug().Int("worker", workerID).Int64("nodes", ds.Count).Msg("branch exhausted")
			return nil

		case search.NodeLimit:
			if sctx.NodeLimit != -1 && ds.Count >= sctx.NodeLimit {
				log.Debug().Int("worker", workerID).Msg("branch hit global node limit")
				return nil
			}
			if sibling := ds.Split(); sibling != nil {
				pending.Add(1)
				select {
				case workChan <- sibling:
					log.Trace().Int("worker", workerID).Int("sibling_n", sibling.N).Msg("split off sibling branch")
				case <-gctx.Done():
					pending.Add(-1)
					return gctx.Err()
				}
			}
		}
	}
}
