// SPDX-License-Identifier: MIT
package analytic

import "math"

// mertonTruncationProb is the Poisson-weight threshold below which the
// series is truncated, once at least 11 terms have been summed.
const mertonTruncationProb = 1e-15

// MertonCall prices a European call under Merton jump-diffusion via the
// closed-form Poisson mixture of Black-Scholes prices:
//
//	Sum_n [e^{-lambda'T}(lambda'T)^n/n!] * BS(S,K,r_n,sigma_n,T)
//
// where lambda' = lambda*(1+k), r_n = r - lambda*k + n*ln(1+k)/T,
// sigma_n^2 = sigma^2 + n*sigmaJ^2/T.
func MertonCall(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time float64) float64 {
	return mertonSeries(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time, BlackScholesCall)
}

// MertonPut prices a European put via put-call parity against MertonCall.
func MertonPut(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time float64) float64 {
	call := MertonCall(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time)
	return call - spot + strike*math.Exp(-rate*time)
}

func mertonSeries(spot, strike, rate, sigma, lambda, muJ, sigmaJ, time float64, bs func(s, k, r, v, t float64) float64) float64 {
	k := math.Exp(muJ+0.5*sigmaJ*sigmaJ) - 1
	lambdaPrime := lambda * (1 + k)

	sum := 0.0
	poissonWeight := math.Exp(-lambdaPrime * time)

	for n := 0; n < 50; n++ {
		if n > 0 {
			poissonWeight *= (lambdaPrime * time) / float64(n)
		}

		rn := rate - lambda*k + float64(n)*math.Log(1+k)/time
		sigmaNSq := sigma*sigma + float64(n)*sigmaJ*sigmaJ/time
		sigmaN := math.Sqrt(math.Max(sigmaNSq, 0))

		sum += poissonWeight * bs(spot, strike, rn, sigmaN, time)

		if poissonWeight < mertonTruncationProb && n > 10 {
			break
		}
	}

	return sum
}
