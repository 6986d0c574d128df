// SPDX-License-Identifier: MIT
package lsm

import (
	"math"

	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
)

// DefaultAmericanSteps is used when a caller passes numSteps=0: weekly
// exercise opportunities over a one-year horizon.
const DefaultAmericanSteps = 52

// American prices an American option via Longstaff-Schwartz LSM. numSteps
// is both the discretisation and exercise-opportunity count: every step is
// an exercise date.
func American(st *rng.State, spot, strike, rate, vol, time float64, numSteps int, numPaths int, t payoff.Type) float64 {
	if numSteps == 0 {
		numSteps = DefaultAmericanSteps
	}

	model := models.NewGBMPath(spot, rate, vol, time, numSteps)
	dt := model.Dt()
	df := math.Exp(-rate * dt)

	paths := make([][]float64, numPaths)
	for p := range paths {
		paths[p] = make([]float64, numSteps+1)
		model.SimulatePath(st, paths[p])
	}

	cashflow := make([]float64, numPaths)
	for p := range paths {
		cashflow[p] = payoff.Vanilla(paths[p][numSteps], strike, t)
	}

	for step := numSteps - 1; step >= 1; step-- {
		for p := range cashflow {
			cashflow[p] *= df
		}

		var itmIdx []int
		var x, y []float64
		for p, path := range paths {
			immediate := payoff.Vanilla(path[step], strike, t)
			if immediate > 0 {
				itmIdx = append(itmIdx, p)
				x = append(x, path[step]/strike)
				y = append(y, cashflow[p])
			}
		}

		if len(itmIdx) < NumBasis {
			continue
		}

		beta, ok := Regress(x, y)
		if !ok {
			continue
		}

		for i, p := range itmIdx {
			immediate := payoff.Vanilla(paths[p][step], strike, t)
			continuation := Continuation(beta, x[i])
			if immediate > continuation {
				cashflow[p] = immediate
			}
		}
	}

	sum := 0.0
	for _, cf := range cashflow {
		sum += cf * df
	}

	return sum / float64(numPaths)
}
