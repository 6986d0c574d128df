// SPDX-License-Identifier: MIT
package variance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPairCountFloorsToOne(t *testing.T) {
	require.Equal(t, 1, PairCount(0))
	require.Equal(t, 1, PairCount(1))
	require.Equal(t, 2, PairCount(5))
	require.Equal(t, 50, PairCount(100))
}

func TestControlVariateEstimateWithPerfectCorrelation(t *testing.T) {
	stats := NewControlVariateStats(0.0)
	for i := -50; i <= 50; i++ {
		x := float64(i)
		z := float64(i) // perfectly correlated, E[Z]=0
		stats.Add(x, z)
	}
	require.InDelta(t, 0.0, stats.Estimate(), 1e-9)
	require.InDelta(t, 0.0, stats.VarianceReductionFactor(), 1e-9)
}

func TestControlVariateDegenerateFallsBackToMean(t *testing.T) {
	stats := NewControlVariateStats(5.0)
	stats.Add(1.0, 5.0)
	stats.Add(3.0, 5.0)
	stats.Add(2.0, 5.0)

	require.InDelta(t, 2.0, stats.Estimate(), 1e-9)
	require.Equal(t, 1.0, stats.VarianceReductionFactor())
}

func TestGeometricAsianAdjustedParams(t *testing.T) {
	adjRate, adjVolSq := GeometricAsianAdjustedParams(0.05, 0.2, 12)
	require.False(t, math.IsNaN(adjRate))
	require.Greater(t, adjVolSq, 0.0)
}
