// SPDX-License-Identifier: MIT
package analytic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBlackScholesCallPutParity(t *testing.T) {
	spot, strike, rate, vol, time := 100.0, 100.0, 0.05, 0.2, 1.0

	call := BlackScholesCall(spot, strike, rate, vol, time)
	put := BlackScholesPut(spot, strike, rate, vol, time)

	parity := call - put
	expected := spot - strike*math.Exp(-rate*time)

	require.InDelta(t, expected, parity, 1e-9)
}

func TestBlackScholesZeroTimeIsIntrinsic(t *testing.T) {
	require.InDelta(t, 10.0, BlackScholesCall(110, 100, 0.05, 0.2, 0), 1e-12)
	require.InDelta(t, 0.0, BlackScholesCall(90, 100, 0.05, 0.2, 0), 1e-12)
}

func TestBlackScholesZeroVolIsDiscountedIntrinsic(t *testing.T) {
	price := BlackScholesCall(110, 100, 0.05, 0, 1.0)
	require.InDelta(t, math.Exp(-0.05)*10, price, 1e-9)
}

func TestBlack76AtmCallEqualsPut(t *testing.T) {
	forward, strike, rate, vol, time := 100.0, 100.0, 0.05, 0.2, 1.0

	call := Black76Call(forward, strike, rate, vol, time)
	put := Black76Put(forward, strike, rate, vol, time)

	require.InDelta(t, call, put, 1e-9)
	require.InDelta(t, 7.5771, call, 0.01)
}

func TestBlack76ImpliedVolRoundTrip(t *testing.T) {
	forward, strike, rate, time := 100.0, 105.0, 0.03, 0.75
	trueVol := 0.28

	price := Black76Call(forward, strike, rate, trueVol, time)
	recovered := Black76ImpliedVol(forward, strike, rate, time, price, true)

	require.InDelta(t, trueVol, recovered, 1e-4)
}

func TestBarrierKnockInPlusKnockOutEqualsVanilla(t *testing.T) {
	spot, strike, barrier, rate, vol, time := 100.0, 100.0, 90.0, 0.05, 0.2, 1.0

	vanilla := BlackScholesCall(spot, strike, rate, vol, time)
	out := BarrierDownOutCall(spot, strike, barrier, 0, rate, vol, time)
	in := BarrierDownInCall(spot, strike, barrier, 0, rate, vol, time)

	require.InDelta(t, vanilla, in+out, 1e-9)
}

func TestBarrierAlreadyBreachedPaysRebate(t *testing.T) {
	price := BarrierDownOutCall(85, 100, 90, 5, 0.05, 0.2, 1.0)
	require.InDelta(t, 5*math.Exp(-0.05), price, 1e-9)
}

func TestSABRAtmMatchesGeneralNearAtm(t *testing.T) {
	forward, time, alpha, beta, rho, nu := 100.0, 1.0, 0.3, 0.5, -0.3, 0.4

	atm := SABRAtmVol(forward, time, alpha, beta, rho, nu)
	near := SABRImpliedVol(forward, forward*1.0000001, time, alpha, beta, rho, nu)

	require.InDelta(t, atm, near, 1e-3)
}

func TestMertonZeroIntensityMatchesBlackScholes(t *testing.T) {
	spot, strike, rate, sigma, time := 100.0, 100.0, 0.05, 0.2, 1.0

	merton := MertonCall(spot, strike, rate, sigma, 0, 0, 0, time)
	bs := BlackScholesCall(spot, strike, rate, sigma, time)

	require.InDelta(t, bs, merton, 1e-6)
}

func TestMertonPutCallParity(t *testing.T) {
	spot, strike, rate, sigma, lambda, muJ, sigmaJ, time := 100.0, 100.0, 0.05, 0.2, 0.3, -0.1, 0.15, 1.0

	call := MertonCall(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time)
	put := MertonPut(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time)

	parity := call - put
	expected := spot - strike*math.Exp(-rate*time)

	require.InDelta(t, expected, parity, 1e-6)
}

func TestHestonReducesNearBlackScholesWhenVolOfVolIsSmall(t *testing.T) {
	spot, strike, rate, time := 100.0, 100.0, 0.05, 1.0
	v0, kappa, theta, sigmaV, rho := 0.04, 2.0, 0.04, 0.01, 0.0

	heston := HestonCall(spot, strike, rate, v0, kappa, theta, sigmaV, rho, time)
	bs := BlackScholesCall(spot, strike, rate, math.Sqrt(v0), time)

	require.InDelta(t, bs, heston, 0.2)
}

func TestLookbackFloatingCallAtInceptionNonNegative(t *testing.T) {
	price := LookbackFloatingCall(100, 100, 0.05, 0.2, 1.0)
	require.Greater(t, price, 0.0)
}

func TestLookbackFloatingPutAtInceptionNonNegative(t *testing.T) {
	price := LookbackFloatingPut(100, 100, 0.05, 0.2, 1.0)
	require.Greater(t, price, 0.0)
}

func TestLookbackFixedCallStrikeAtRunningMaxIsPositive(t *testing.T) {
	price := LookbackFixedCall(100, 100, 100, 0.05, 0.2, 1.0)
	require.Greater(t, price, 0.0)
}

func TestLookbackFixedCallBelowRunningMaxIncludesIntrinsic(t *testing.T) {
	below := LookbackFixedCall(100, 80, 110, 0.05, 0.2, 1.0)
	intrinsic := math.Exp(-0.05) * (110 - 80)

	require.Greater(t, below, intrinsic)
}

func TestAsianGeometricCallBelowArithmeticBlackScholes(t *testing.T) {
	spot, strike, rate, vol, time := 100.0, 100.0, 0.05, 0.3, 1.0

	geo := AsianGeometricCall(spot, strike, rate, vol, time, 252)
	vanilla := BlackScholesCall(spot, strike, rate, vol, time)

	require.Less(t, geo, vanilla)
	require.Greater(t, geo, 0.0)
}

func TestAsianGeometricPutCallParity(t *testing.T) {
	spot, strike, rate, vol, time := 100.0, 100.0, 0.05, 0.25, 1.0
	numObs := 12

	call := AsianGeometricCall(spot, strike, rate, vol, time, numObs)
	put := AsianGeometricPut(spot, strike, rate, vol, time, numObs)

	n := float64(numObs)
	meanLog := (rate - 0.5*vol*vol) * time * (n + 1) / (2 * n)
	varLog := vol * vol * time * (n + 1) * (2*n + 1) / (6 * n * n)
	expectedAverage := spot * math.Exp(meanLog+0.5*varLog)

	require.Greater(t, call, 0.0)
	require.Greater(t, put, 0.0)
	require.InDelta(t, call, put+math.Exp(-rate*time)*(expectedAverage-strike), 1.0)
}
