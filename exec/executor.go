// SPDX-License-Identifier: MIT
package exec

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/optionlab/mcoptions/rng"
)

// Accumulator collects one thread's local contribution to a reduction. Work
// functions write into their own Accumulator only; no locking is needed
// until Merge runs in the single reducing goroutine.
type Accumulator struct {
	Sum    float64
	SumSq  float64
	Count  int
	Extra  []float64 // scratch for payoff-specific side sums (e.g. control variate)
}

// Merge folds other into a, used by the single-point end-of-run reduction.
func (a *Accumulator) Merge(other Accumulator) {
	a.Sum += other.Sum
	a.SumSq += other.SumSq
	a.Count += other.Count
	if len(other.Extra) > len(a.Extra) {
		grown := make([]float64, len(other.Extra))
		copy(grown, a.Extra)
		a.Extra = grown
	}
	for i, v := range other.Extra {
		a.Extra[i] += v
	}
}

// Work is the per-thread simulation body: given an independent PRNG
// substream and the number of simulations assigned to this thread, it
// returns this thread's local accumulation.
type Work func(st *rng.State, count int) (Accumulator, error)

// Result is the reduced output of a parallel run.
type Result struct {
	Total Accumulator
}

// Mean returns Total.Sum / Total.Count, or zero if no simulations ran.
func (r Result) Mean() float64 {
	if r.Total.Count == 0 {
		return 0
	}
	return r.Total.Sum / float64(r.Total.Count)
}

// Variance returns the sample variance of the per-path contributions folded
// into Total.Sum/Total.SumSq, or zero if fewer than two samples ran.
func (r Result) Variance() float64 {
	n := float64(r.Total.Count)
	if n < 2 {
		return 0
	}
	mean := r.Total.Sum / n
	return r.Total.SumSq/n - mean*mean
}

// StdError returns the Monte Carlo standard error of the mean,
// sqrt(Variance/N) — the quantity the O(1/sqrt(N))*stdev convergence
// guarantee is stated in terms of.
func (r Result) StdError() float64 {
	n := float64(r.Total.Count)
	if n < 2 {
		return 0
	}
	v := r.Variance()
	if v < 0 {
		v = 0
	}
	return math.Sqrt(v / n)
}

// Run partitions numSimulations across the given thread count, derives each
// thread's PRNG substream from master via rng.Jumped, runs fn concurrently
// via errgroup, and reduces all thread-local accumulators into one Result
// after every goroutine has returned successfully. If any thread's fn
// returns an error, the whole run is cancelled and that error is returned;
// no partial Result is produced.
func Run(ctx context.Context, master *rng.State, numSimulations, numThreads int, fn Work) (Result, error) {
	counts := Partition(numSimulations, numThreads)

	group, gctx := errgroup.WithContext(ctx)
	partials := make([]Accumulator, len(counts))

	for i, count := range counts {
		i, count := i, count
		if count == 0 {
			continue
		}

		substream := rng.Jumped(master, i)

		group.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			acc, err := fn(substream, count)
			if err != nil {
				return err
			}
			partials[i] = acc
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	var total Accumulator
	for _, p := range partials {
		total.Merge(p)
	}

	return Result{Total: total}, nil
}
