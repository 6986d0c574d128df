// SPDX-License-Identifier: MIT
package analytic

import "math"

// Lookback closed forms follow Goldman, Sosin & Gatto (1979) for the
// floating-strike contracts and the Conze-Viswanathan (1991) extension for
// the fixed-strike contracts, both under zero cost-of-carry drift beyond the
// risk-free rate (no dividend yield). These are derived directly from the
// GSG partial-differential-equation boundary conditions rather than ported
// from any existing source, since a floating reference implementation of
// this formula is known to carry a sign error in its compound term.

// LookbackFloatingCall prices a floating-strike lookback call, payoff
// S_T - runningMin, continuously monitored.
func LookbackFloatingCall(spot, runningMin, rate, vol, time float64) float64 {
	if time <= 0 {
		return math.Max(spot-runningMin, 0)
	}
	if vol <= 0 {
		return math.Exp(-rate*time) * math.Max(spot-runningMin, 0)
	}
	if rate == 0 {
		return lookbackFloatingCallZeroRate(spot, runningMin, vol, time)
	}

	sqrtT := math.Sqrt(time)
	a1 := (math.Log(spot/runningMin) + (rate+0.5*vol*vol)*time) / (vol * sqrtT)
	a2 := a1 - vol*sqrtT

	ratio := spot / runningMin
	powTerm := math.Pow(ratio, -2*rate/(vol*vol))
	coeff := vol * vol / (2 * rate)

	term1 := spot * normCDF(a1)
	term2 := -runningMin * math.Exp(-rate*time) * normCDF(a2)
	term3 := spot * math.Exp(-rate*time) * coeff * powTerm * normCDF(-a1+2*rate*sqrtT/vol)
	term4 := -spot * coeff * normCDF(-a1)

	return term1 + term2 + term3 + term4
}

// lookbackFloatingCallZeroRate handles the r=0 degenerate case where the
// closed form above divides by zero; the risk-neutral drift vanishes and the
// price reduces to a driftless expectation evaluated by the limiting form of
// the GSG integral.
func lookbackFloatingCallZeroRate(spot, runningMin, vol, time float64) float64 {
	sqrtT := math.Sqrt(time)
	a1 := (math.Log(spot/runningMin) + 0.5*vol*vol*time) / (vol * sqrtT)
	a2 := a1 - vol*sqrtT

	return spot*normCDF(a1) - runningMin*normCDF(a2) +
		spot*vol*sqrtT*(normPDF(a1)+a1*normCDF(a1)-a1)
}

// LookbackFloatingPut prices a floating-strike lookback put, payoff
// runningMax - S_T, continuously monitored.
func LookbackFloatingPut(spot, runningMax, rate, vol, time float64) float64 {
	if time <= 0 {
		return math.Max(runningMax-spot, 0)
	}
	if vol <= 0 {
		return math.Exp(-rate*time) * math.Max(runningMax-spot, 0)
	}
	if rate == 0 {
		return lookbackFloatingPutZeroRate(spot, runningMax, vol, time)
	}

	sqrtT := math.Sqrt(time)
	a1 := (math.Log(spot/runningMax) + (rate+0.5*vol*vol)*time) / (vol * sqrtT)

	ratio := spot / runningMax
	powTerm := math.Pow(ratio, -2*rate/(vol*vol))
	coeff := vol * vol / (2 * rate)

	term1 := runningMax * math.Exp(-rate*time) * normCDF(-a1+vol*sqrtT)
	term2 := -spot * normCDF(-a1)
	term3 := -spot * math.Exp(-rate*time) * coeff * powTerm * normCDF(a1-2*rate*sqrtT/vol)
	term4 := spot * coeff * normCDF(a1)

	return term1 + term2 + term3 + term4
}

func lookbackFloatingPutZeroRate(spot, runningMax, vol, time float64) float64 {
	sqrtT := math.Sqrt(time)
	a1 := (math.Log(spot/runningMax) + 0.5*vol*vol*time) / (vol * sqrtT)

	return runningMax*normCDF(-a1+vol*sqrtT) - spot*normCDF(-a1) +
		spot*vol*sqrtT*(normPDF(a1)+a1*normCDF(a1))
}

// LookbackFixedCall prices a fixed-strike lookback call, payoff
// max(runningMax, S_T) - strike, against a given running maximum observed
// so far (pass spot for a freshly-initiated contract).
func LookbackFixedCall(spot, strike, runningMax, rate, vol, time float64) float64 {
	if time <= 0 {
		return math.Max(math.Max(runningMax, spot)-strike, 0)
	}
	if vol <= 0 {
		return math.Exp(-rate*time) * math.Max(math.Max(runningMax, spot)-strike, 0)
	}

	if strike >= runningMax {
		return fixedCallBelowMax(spot, strike, rate, vol, time)
	}

	intrinsic := math.Exp(-rate*time) * (runningMax - strike)
	floating := fixedCallBelowMax(spot, runningMax, rate, vol, time)
	return intrinsic + floating
}

// fixedCallBelowMax handles strike >= current running maximum: the running
// maximum observed so far cannot finish in the money, so the price is the
// fixed-strike lookback call on a freshly started maximum, with its r=0
// limit evaluated directly.
func fixedCallBelowMax(spot, strike, rate, vol, time float64) float64 {
	sqrtT := math.Sqrt(time)
	d1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*time) / (vol * sqrtT)
	d2 := d1 - vol*sqrtT

	if rate == 0 {
		return spot*normCDF(d1) - strike*normCDF(d2) +
			spot*vol*sqrtT*(normPDF(d1)+d1*normCDF(d1))
	}

	ratio := spot / strike
	powTerm := math.Pow(ratio, -2*rate/(vol*vol))
	coeff := vol * vol / (2 * rate)

	term1 := spot * normCDF(d1)
	term2 := -strike * math.Exp(-rate*time) * normCDF(d2)
	term3 := -spot * math.Exp(-rate*time) * coeff * powTerm * normCDF(d1-2*rate*sqrtT/vol)
	term4 := spot * coeff * normCDF(d1)

	return term1 + term2 + term3 + term4
}

// LookbackFixedPut prices a fixed-strike lookback put, payoff
// strike - min(runningMin, S_T).
func LookbackFixedPut(spot, strike, runningMin, rate, vol, time float64) float64 {
	if time <= 0 {
		return math.Max(strike-math.Min(runningMin, spot), 0)
	}
	if vol <= 0 {
		return math.Exp(-rate*time) * math.Max(strike-math.Min(runningMin, spot), 0)
	}

	if strike <= runningMin {
		return fixedPutAboveMin(spot, strike, rate, vol, time)
	}

	intrinsic := math.Exp(-rate*time) * (strike - runningMin)
	floating := fixedPutAboveMin(spot, runningMin, rate, vol, time)
	return intrinsic + floating
}

func fixedPutAboveMin(spot, strike, rate, vol, time float64) float64 {
	sqrtT := math.Sqrt(time)
	a1 := (math.Log(spot/strike) + (rate+0.5*vol*vol)*time) / (vol * sqrtT)

	if rate == 0 {
		return strike*normCDF(-a1+vol*sqrtT) - spot*normCDF(-a1) +
			spot*vol*sqrtT*(normPDF(a1)-a1*normCDF(-a1))
	}

	ratio := spot / strike
	powTerm := math.Pow(ratio, -2*rate/(vol*vol))
	coeff := vol * vol / (2 * rate)

	term1 := strike * math.Exp(-rate*time) * normCDF(-a1+vol*sqrtT)
	term2 := -spot * normCDF(-a1)
	term3 := spot * math.Exp(-rate*time) * coeff * powTerm * normCDF(-a1+2*rate*sqrtT/vol)
	term4 := -spot * coeff * normCDF(-a1)

	return term1 + term2 + term3 + term4
}
