// SPDX-License-Identifier: MIT
// Package lsm implements Least-Squares Monte Carlo (Longstaff-Schwartz)
// pricing for American and Bermudan early-exercise contracts: backward
// induction over simulated paths, an in-the-money regression at each
// exercise date, and the exercise-decision rule that compares immediate
// payoff against estimated continuation value.
package lsm

// NumBasis is the fixed count of regression basis functions. Three
// unweighted Laguerre-like polynomials are used in place of the classic
// exp(-x/2)*L(x) form to avoid catastrophic precision loss at moderate x;
// more basis functions increase the variance of the fitted coefficients
// without a meaningful bias reduction at this path-count scale.
const NumBasis = 3

// Basis evaluates the three regression basis functions at x = S(t)/K:
// L0(x)=1, L1(x)=1-x, L2(x)=1-2x+x^2/2.
func Basis(x float64) [NumBasis]float64 {
	return [NumBasis]float64{
		1,
		1 - x,
		1 - 2*x + 0.5*x*x,
	}
}
