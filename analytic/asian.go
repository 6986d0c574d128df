// SPDX-License-Identifier: MIT
package analytic

import (
	"math"

	"github.com/optionlab/mcoptions/variance"
)

// AsianGeometricCall prices a fixed-strike arithmetic-average-free Asian
// call under the exact lognormal closed form for the *geometric* average
// (Kemna-Vorst), using the drift/variance adjustment shared with the
// arithmetic-Asian control variate.
func AsianGeometricCall(spot, strike, rate, vol, time float64, numObs int) float64 {
	if time <= 0 {
		return math.Max(spot-strike, 0)
	}

	adjRate, adjVolSq := variance.GeometricAsianAdjustedParams(rate, vol, numObs)
	if adjVolSq <= 0 {
		return math.Exp(-rate*time) * math.Max(spot*math.Exp(adjRate*time)-strike, 0)
	}

	sigmaT := math.Sqrt(adjVolSq * time)
	d1 := (math.Log(spot/strike) + adjRate*time) / sigmaT
	d2 := d1 - sigmaT

	forward := spot * math.Exp(adjRate*time-0.5*adjVolSq*time)

	return math.Exp(-rate*time) * (forward*normCDF(d1) - strike*normCDF(d2))
}

// AsianGeometricPut prices a fixed-strike geometric-average Asian put via
// put-call parity against the forward defined by the same adjusted
// lognormal parameters.
func AsianGeometricPut(spot, strike, rate, vol, time float64, numObs int) float64 {
	if time <= 0 {
		return math.Max(strike-spot, 0)
	}

	adjRate, adjVolSq := variance.GeometricAsianAdjustedParams(rate, vol, numObs)
	forward := spot * math.Exp(adjRate*time-0.5*adjVolSq*time)

	call := AsianGeometricCall(spot, strike, rate, vol, time, numObs)
	return call - math.Exp(-rate*time)*(forward-strike)
}
