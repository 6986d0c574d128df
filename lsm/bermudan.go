// SPDX-License-Identifier: MIT
package lsm

import (
	"math"

	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
)

// Bermudan prices a Bermudan option via LSM restricted to a discrete set of
// exercise dates. exerciseTimes are fractions of time (each clamped to
// [0,1]), in increasing order, with the last conventionally equal to 1.0
// (maturity). The path discretisation step count is chosen independently
// of the exercise count: at least 10 sub-steps per exercise date and at
// least 50 overall, so exercise dates map cleanly onto simulation steps.
func Bermudan(st *rng.State, spot, strike, rate, vol, time float64, exerciseTimes []float64, numPaths int, t payoff.Type) float64 {
	numExercise := len(exerciseTimes)
	simSteps := numExercise * 10
	if simSteps < 50 {
		simSteps = 50
	}

	model := models.NewGBMPath(spot, rate, vol, time, simSteps)

	exStep := make([]int, numExercise)
	for i, frac := range exerciseTimes {
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		exStep[i] = int(math.Round(frac * float64(simSteps)))
	}

	spotAtEx := make([][]float64, numPaths)
	for p := range spotAtEx {
		path := make([]float64, simSteps+1)
		model.SimulatePath(st, path)

		row := make([]float64, numExercise)
		for i, s := range exStep {
			row[i] = path[s]
		}
		spotAtEx[p] = row
	}

	cashflow := make([]float64, numPaths)
	for p := range cashflow {
		cashflow[p] = payoff.Vanilla(spotAtEx[p][numExercise-1], strike, t)
	}

	for exIdx := numExercise - 2; exIdx >= 0; exIdx-- {
		dt := (exerciseTimes[exIdx+1] - exerciseTimes[exIdx]) * time
		df := math.Exp(-rate * dt)

		for p := range cashflow {
			cashflow[p] *= df
		}

		var itmIdx []int
		var x, y []float64
		for p := range spotAtEx {
			s := spotAtEx[p][exIdx]
			immediate := payoff.Vanilla(s, strike, t)
			if immediate > 0 {
				itmIdx = append(itmIdx, p)
				x = append(x, s/strike)
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
			immediate := payoff.Vanilla(spotAtEx[p][exIdx], strike, t)
			continuation := Continuation(beta, x[i])
			if immediate > continuation {
				cashflow[p] = immediate
			}
		}
	}

	dfFirst := math.Exp(-rate * exerciseTimes[0] * time)

	sum := 0.0
	for _, cf := range cashflow {
		sum += cf * dfFirst
	}

	return sum / float64(numPaths)
}

// UniformExerciseTimes returns numExercise equally spaced exercise-time
// fractions ending at 1.0: (i+1)/numExercise for i=0..numExercise-1.
func UniformExerciseTimes(numExercise int) []float64 {
	times := make([]float64, numExercise)
	for i := range times {
		times[i] = float64(i+1) / float64(numExercise)
	}
	return times
}
