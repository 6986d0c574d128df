// SPDX-License-Identifier: MIT
// Package analytic implements the closed-form companion pricers: Black-
// Scholes, Black-76 with Greeks and implied vol, Reiner-Rubinstein barrier,
// Hagan SABR implied vol, the Merton jump-diffusion series, the Heston
// characteristic-function price via Fourier inversion, a freshly derived
// Goldman-Sosin-Gatto lookback, and the geometric-Asian closed form. These
// are mathematical identities used standalone, as control-variate targets,
// and as Monte Carlo validation references.
//
// The Black-Scholes, Black-76, lookback and geometric-Asian pricers check
// time<=0 (intrinsic) and volatility<=0 (discounted intrinsic) before the
// general formula, and the Merton series inherits both through its
// Black-Scholes terms. The barrier, Heston and SABR functions have no such
// branches and evaluate their general formulas for every input.
package analytic

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

var stdNormal = distuv.UnitNormal

func normCDF(x float64) float64 { return stdNormal.CDF(x) }
func normPDF(x float64) float64 { return stdNormal.Prob(x) }

// BlackScholesCall returns the Black-Scholes call price.
func BlackScholesCall(spot, strike, rate, vol, time float64) float64 {
	if time <= 0 {
		return math.Max(spot-strike, 0)
	}
	if vol <= 0 {
		return math.Exp(-rate*time) * math.Max(spot-strike, 0)
	}

	d1, d2 := blackScholesD(spot, strike, rate, vol, time)
	df := math.Exp(-rate * time)

	return spot*normCDF(d1) - strike*df*normCDF(d2)
}

// BlackScholesPut returns the Black-Scholes put price.
func BlackScholesPut(spot, strike, rate, vol, time float64) float64 {
	if time <= 0 {
		return math.Max(strike-spot, 0)
	}
	if vol <= 0 {
		return math.Exp(-rate*time) * math.Max(strike-spot, 0)
	}

	d1, d2 := blackScholesD(spot, strike, rate, vol, time)
	df := math.Exp(-rate * time)

	return strike*df*normCDF(-d2) - spot*normCDF(-d1)
}

func blackScholesD(spot, strike, rate, vol, time float64) (d1, d2 float64) {
	sqrtT := math.Sqrt(time)
	d1 = (math.Log(spot/strike) + (rate+0.5*vol*vol)*time) / (vol * sqrtT)
	d2 = d1 - vol*sqrtT
	return d1, d2
}
