// SPDX-License-Identifier: MIT
package exec

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optionlab/mcoptions/rng"
)

func TestPartitionSumsToN(t *testing.T) {
	for _, tc := range []struct{ n, t int }{
		{100, 4}, {101, 4}, {1, 8}, {0, 4}, {7, 3},
	} {
		counts := Partition(tc.n, tc.t)
		require.Len(t, counts, tc.t)

		sum := 0
		for _, c := range counts {
			sum += c
		}
		require.Equal(t, tc.n, sum)
	}
}

func TestPartitionDistributesRemainderToFirstThreads(t *testing.T) {
	counts := Partition(10, 3)
	require.Equal(t, []int{4, 3, 3}, counts)
}

func TestPartitionClampsThreadsBelowOne(t *testing.T) {
	counts := Partition(10, 0)
	require.Len(t, counts, 1)
	require.Equal(t, 10, counts[0])
}

func TestRunReducesAcrossThreads(t *testing.T) {
	master := rng.NewState(42)

	result, err := Run(context.Background(), master, 10000, 4, func(st *rng.State, count int) (Accumulator, error) {
		var acc Accumulator
		for i := 0; i < count; i++ {
			x := st.Normal()
			acc.Sum += x
			acc.SumSq += x * x
			acc.Count++
		}
		return acc, nil
	})

	require.NoError(t, err)
	require.Equal(t, 10000, result.Total.Count)
	require.InDelta(t, 0, result.Mean(), 0.05)
}

func TestRunPropagatesThreadError(t *testing.T) {
	master := rng.NewState(1)
	sentinel := errors.New("boom")

	_, err := Run(context.Background(), master, 100, 4, func(st *rng.State, count int) (Accumulator, error) {
		return Accumulator{}, sentinel
	})

	require.ErrorIs(t, err, sentinel)
}

func TestResultVarianceAndStdErrorOfKnownDistribution(t *testing.T) {
	master := rng.NewState(5)

	result, err := Run(context.Background(), master, 20000, 4, func(st *rng.State, count int) (Accumulator, error) {
		var acc Accumulator
		for i := 0; i < count; i++ {
			x := st.Normal()
			acc.Sum += x
			acc.SumSq += x * x
			acc.Count++
		}
		return acc, nil
	})

	require.NoError(t, err)
	require.InDelta(t, 1.0, result.Variance(), 0.1)
	require.InDelta(t, math.Sqrt(1.0/20000.0), result.StdError(), 0.005)
}

func TestResultVarianceZeroBelowTwoSamples(t *testing.T) {
	r := Result{Total: Accumulator{Sum: 1, SumSq: 1, Count: 1}}
	require.Equal(t, 0.0, r.Variance())
	require.Equal(t, 0.0, r.StdError())
}

func TestRunTotalCountIsSameAcrossThreadCounts(t *testing.T) {
	work := func(st *rng.State, count int) (Accumulator, error) {
		var acc Accumulator
		for i := 0; i < count; i++ {
			acc.Sum += st.Normal()
			acc.Count++
		}
		return acc, nil
	}

	r1, err1 := Run(context.Background(), rng.NewState(7), 4000, 1, work)
	r2, err2 := Run(context.Background(), rng.NewState(7), 4000, 4, work)

	require.NoError(t, err1)
	require.NoError(t, err2)
	require.Equal(t, r1.Total.Count, r2.Total.Count)
}
