// SPDX-License-Identifier: MIT
package mcoptions

import (
	gocontext "context"
	"fmt"

	"github.com/optionlab/mcoptions/exec"
	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
	"github.com/optionlab/mcoptions/variance"
)

// LookbackFloatingCall prices a floating-strike lookback call by simulation:
// payoff = terminal - running minimum.
func LookbackFloatingCall(ctx *Context, spot, rate, vol, t float64, steps int) (float64, error) {
	return lookbackFloatingPrice(ctx, spot, rate, vol, t, steps, payoff.Call)
}

// LookbackFloatingPut prices a floating-strike lookback put: payoff =
// running maximum - terminal.
func LookbackFloatingPut(ctx *Context, spot, rate, vol, t float64, steps int) (float64, error) {
	return lookbackFloatingPrice(ctx, spot, rate, vol, t, steps, payoff.Put)
}

func lookbackFloatingPrice(ctx *Context, spot, rate, vol, t float64, steps int, kind payoff.Type) (float64, error) {
	if err := validatePositive("spot", spot); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateNonNegative("volatility", vol); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateNonNegative("time", t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if steps < 1 {
		err := fmt.Errorf("steps must be at least 1, got %d: %w", steps, ErrInvalidArgument)
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return 0, nil
	}

	model := models.NewGBMPath(spot, rate, vol, t, steps)
	discount := model.Discount()

	antithetic := ctx.Antithetic()
	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		if antithetic {
			pathPlus := make([]float64, steps+1)
			pathMinus := make([]float64, steps+1)
			pairs := variance.PairCount(count)
			for i := 0; i < pairs; i++ {
				model.SimulateAntitheticPaths(st, pathPlus, pathMinus)
				minP, maxP := payoff.PathExtrema(pathPlus)
				minM, maxM := payoff.PathExtrema(pathMinus)
				p1 := payoff.LookbackFloating(pathPlus[steps], minP, maxP, kind)
				p2 := payoff.LookbackFloating(pathMinus[steps], minM, maxM, kind)
				acc.Sum += p1 + p2
				acc.SumSq += p1*p1 + p2*p2
				acc.Count += 2
			}
			return acc, nil
		}

		path := make([]float64, steps+1)
		for i := 0; i < count; i++ {
			model.SimulatePath(st, path)
			min, max := payoff.PathExtrema(path)
			terminal := path[steps]
			p := payoff.LookbackFloating(terminal, min, max, kind)
			acc.Sum += p
			acc.SumSq += p * p
			acc.Count++
		}
		return acc, nil
	}

	result, err := exec.Run(gocontext.Background(), ctx.masterState(), ctx.Simulations(), ctx.Threads(), work)
	if err != nil {
		wrapped := wrapThreadingError(err)
		ctx.setLastError(wrapped)
		return 0, wrapped
	}

	ctx.setLastError(nil)
	return discount * result.Mean(), nil
}

// LookbackFixedCall prices a fixed-strike lookback call: payoff =
// max(running maximum - strike, 0).
func LookbackFixedCall(ctx *Context, spot, strike, rate, vol, t float64, steps int) (float64, error) {
	return lookbackFixedPrice(ctx, spot, strike, rate, vol, t, steps, payoff.Call)
}

// LookbackFixedPut prices a fixed-strike lookback put: payoff =
// max(strike - running minimum, 0).
func LookbackFixedPut(ctx *Context, spot, strike, rate, vol, t float64, steps int) (float64, error) {
	return lookbackFixedPrice(ctx, spot, strike, rate, vol, t, steps, payoff.Put)
}

func lookbackFixedPrice(ctx *Context, spot, strike, rate, vol, t float64, steps int, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if steps < 1 {
		err := fmt.Errorf("steps must be at least 1, got %d: %w", steps, ErrInvalidArgument)
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	model := models.NewGBMPath(spot, rate, vol, t, steps)
	discount := model.Discount()

	antithetic := ctx.Antithetic()
	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		if antithetic {
			pathPlus := make([]float64, steps+1)
			pathMinus := make([]float64, steps+1)
			pairs := variance.PairCount(count)
			for i := 0; i < pairs; i++ {
				model.SimulateAntitheticPaths(st, pathPlus, pathMinus)
				minP, maxP := payoff.PathExtrema(pathPlus)
				minM, maxM := payoff.PathExtrema(pathMinus)
				p1 := payoff.LookbackFixed(minP, maxP, strike, kind)
				p2 := payoff.LookbackFixed(minM, maxM, strike, kind)
				acc.Sum += p1 + p2
				acc.SumSq += p1*p1 + p2*p2
				acc.Count += 2
			}
			return acc, nil
		}

		path := make([]float64, steps+1)
		for i := 0; i < count; i++ {
			model.SimulatePath(st, path)
			min, max := payoff.PathExtrema(path)
			p := payoff.LookbackFixed(min, max, strike, kind)
			acc.Sum += p
			acc.SumSq += p * p
			acc.Count++
		}
		return acc, nil
	}

	result, err := exec.Run(gocontext.Background(), ctx.masterState(), ctx.Simulations(), ctx.Threads(), work)
	if err != nil {
		wrapped := wrapThreadingError(err)
		ctx.setLastError(wrapped)
		return 0, wrapped
	}

	ctx.setLastError(nil)
	return discount * result.Mean(), nil
}
