// SPDX-License-Identifier: MIT
package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optionlab/mcoptions/rng"
)

func TestGBMTerminalDeterministic(t *testing.T) {
	m := NewGBM(100, 0.05, 0.2, 1.0)
	a := rng.NewState(42)
	b := rng.NewState(42)

	require.Equal(t, m.SimulateTerminal(a), m.SimulateTerminal(b))
}

func TestGBMAntitheticSymmetry(t *testing.T) {
	m := NewGBM(100, 0.05, 0.2, 1.0)
	st := rng.NewState(7)

	plus, minus := m.SimulateAntithetic(st)

	// geometric mean of the antithetic pair equals spot*exp(drift)
	geomMean := math.Sqrt(plus * minus)
	require.InDelta(t, m.Spot*math.Exp(m.drift), geomMean, 1e-9)
}

func TestGBMPathStartsAtSpot(t *testing.T) {
	m := NewGBMPath(100, 0.05, 0.2, 1.0, 50)
	st := rng.NewState(1)
	path := make([]float64, 51)
	m.SimulatePath(st, path)

	require.Equal(t, 100.0, path[0])
	for _, p := range path {
		require.Greater(t, p, 0.0)
	}
}

func TestSABRAbsorptionAtZero(t *testing.T) {
	m := NewSABR(0.0, 0.3, 0.5, 0.0, 0.4, 1.0, 10)
	st := rng.NewState(3)
	require.Equal(t, 0.0, m.SimulateTerminal(st))
}

func TestHestonFellerCheck(t *testing.T) {
	ok := NewHeston(100, 0.04, 0.05, 2, 0.04, 0.3, -0.5, 1, 100)
	bad := NewHeston(100, 0.04, 0.05, 2, 0.04, 1.0, -0.5, 1, 100)

	require.True(t, ok.FellerSatisfied())
	require.False(t, bad.FellerSatisfied())
}

func TestMertonZeroIntensityMatchesDiffusionMean(t *testing.T) {
	m := NewMerton(100, 0.05, 0.2, 0.0, 0.0, 0.0, 1.0, 252)
	st := rng.NewState(11)

	const n = 20000
	var sum float64
	for i := 0; i < n; i++ {
		sum += m.SimulateTerminal(st)
	}
	mean := sum / n

	// E[S(T)] = S0*exp(rate*T) regardless of diffusion, as long as the
	// jump compensator keeps E[dS/S]=rate*dt; at lambda=0 that reduces to
	// plain risk-neutral GBM drift.
	require.InDelta(t, 100*math.Exp(0.05), mean, 1.0)
}
