// SPDX-License-Identifier: MIT
package payoff

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/rng"
)

func TestVanilla(t *testing.T) {
	require.Equal(t, 10.0, Vanilla(110, 100, Call))
	require.Equal(t, 0.0, Vanilla(90, 100, Call))
	require.Equal(t, 10.0, Vanilla(90, 100, Put))
}

func TestArithmeticVsGeometricAverageOrdering(t *testing.T) {
	path := []float64{100, 90, 110, 95, 120}
	require.GreaterOrEqual(t, ArithmeticAverage(path), GeometricAverage(path))
}

func TestPathExtremaIncludesIndexZero(t *testing.T) {
	path := []float64{100, 101, 102, 103}
	min, max := PathExtrema(path)
	require.Equal(t, 100.0, min)
	require.Equal(t, 103.0, max)
}

func TestLookbackFloatingNonNegative(t *testing.T) {
	path := []float64{100, 90, 120, 80, 115}
	min, max := PathExtrema(path)
	terminal := path[len(path)-1]

	require.GreaterOrEqual(t, LookbackFloating(terminal, min, max, Call), 0.0)
	require.GreaterOrEqual(t, LookbackFloating(terminal, min, max, Put), 0.0)
}

func TestDigitalCashPayout(t *testing.T) {
	require.Equal(t, 5.0, DigitalCash(110, 100, 5.0, Call))
	require.Equal(t, 0.0, DigitalCash(90, 100, 5.0, Call))
}

func TestBarrierKnockInKnockOutComplementarity(t *testing.T) {
	model := models.NewGBMPath(100, 0.05, 0.2, 1.0, 50)
	seed := uint64(123)

	a := rng.NewState(seed)
	outcomeIn := SimulatePath(model, a, 0.2, 80, DownIn)

	b := rng.NewState(seed)
	outcomeOut := SimulatePath(model, b, 0.2, 80, DownOut)

	require.Equal(t, outcomeIn.Hit, outcomeOut.Hit)
	require.Equal(t, outcomeIn.Terminal, outcomeOut.Terminal)

	strike, rebate := 100.0, 0.0
	in := DownIn.Price(outcomeIn, strike, rebate, Call)
	out := DownOut.Price(outcomeOut, strike, rebate, Call)
	vanilla := Vanilla(outcomeIn.Terminal, strike, Call)

	require.InDelta(t, vanilla, in+out, 1e-9)
}

func TestSimulatePathAntitheticKnockInOutComplementarityBothLegs(t *testing.T) {
	model := models.NewGBMPath(100, 0.05, 0.2, 1.0, 50)
	seed := uint64(321)

	a := rng.NewState(seed)
	inPlus, inMinus := SimulatePathAntithetic(model, a, 0.2, 80, DownIn)

	b := rng.NewState(seed)
	outPlus, outMinus := SimulatePathAntithetic(model, b, 0.2, 80, DownOut)

	require.Equal(t, inPlus.Hit, outPlus.Hit)
	require.Equal(t, inPlus.Terminal, outPlus.Terminal)
	require.Equal(t, inMinus.Hit, outMinus.Hit)
	require.Equal(t, inMinus.Terminal, outMinus.Terminal)

	strike, rebate := 100.0, 0.0

	vanillaPlus := Vanilla(inPlus.Terminal, strike, Call)
	inPricePlus := DownIn.Price(inPlus, strike, rebate, Call)
	outPricePlus := DownOut.Price(outPlus, strike, rebate, Call)
	require.InDelta(t, vanillaPlus, inPricePlus+outPricePlus, 1e-9)

	vanillaMinus := Vanilla(inMinus.Terminal, strike, Call)
	inPriceMinus := DownIn.Price(inMinus, strike, rebate, Call)
	outPriceMinus := DownOut.Price(outMinus, strike, rebate, Call)
	require.InDelta(t, vanillaMinus, inPriceMinus+outPriceMinus, 1e-9)
}

func TestSimulatePathAntitheticLegsCanDiffer(t *testing.T) {
	model := models.NewGBMPath(100, 0.05, 0.2, 1.0, 50)
	st := rng.NewState(9001)

	plus, minus := SimulatePathAntithetic(model, st, 0.2, 80, DownOut)

	require.NotEqual(t, plus.Terminal, minus.Terminal)
}
