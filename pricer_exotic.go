// SPDX-License-Identifier: MIT
// pricer_exotic.go — European pricing under the three non-GBM model
// dispatches (Heston, Merton, SABR), each simulated via its own Euler
// discretisation kernel in the models package and reduced through the same
// parallel executor as the GBM instruments.
package mcoptions

import (
	gocontext "context"
	"math"

	"github.com/optionlab/mcoptions/exec"
	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
)

// HestonEuropeanCall prices a European call under Heston stochastic
// variance, simulated via full-truncation Euler with ctx.Steps() steps.
func HestonEuropeanCall(ctx *Context, spot, strike, rate, v0, kappa, theta, sigma, rho, t float64) (float64, error) {
	return hestonEuropeanPrice(ctx, spot, strike, rate, v0, kappa, theta, sigma, rho, t, payoff.Call)
}

// HestonEuropeanPut prices a European put under Heston stochastic variance.
func HestonEuropeanPut(ctx *Context, spot, strike, rate, v0, kappa, theta, sigma, rho, t float64) (float64, error) {
	return hestonEuropeanPrice(ctx, spot, strike, rate, v0, kappa, theta, sigma, rho, t, payoff.Put)
}

func hestonEuropeanPrice(ctx *Context, spot, strike, rate, v0, kappa, theta, sigma, rho, t float64, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, sigma, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateNonNegative("v0", v0); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateCorrelation("rho", rho); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	model := models.NewHeston(spot, v0, rate, kappa, theta, sigma, rho, t, ctx.Steps())
	discount := math.Exp(-rate * t)

	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		for i := 0; i < count; i++ {
			s := model.SimulateTerminal(st)
			p := payoff.Vanilla(s, strike, kind)
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

// MertonEuropeanCall prices a European call under Merton jump-diffusion.
func MertonEuropeanCall(ctx *Context, spot, strike, rate, vol, lambda, muJ, sigmaJ, t float64) (float64, error) {
	return mertonEuropeanPrice(ctx, spot, strike, rate, vol, lambda, muJ, sigmaJ, t, payoff.Call)
}

// MertonEuropeanPut prices a European put under Merton jump-diffusion.
func MertonEuropeanPut(ctx *Context, spot, strike, rate, vol, lambda, muJ, sigmaJ, t float64) (float64, error) {
	return mertonEuropeanPrice(ctx, spot, strike, rate, vol, lambda, muJ, sigmaJ, t, payoff.Put)
}

func mertonEuropeanPrice(ctx *Context, spot, strike, rate, vol, lambda, muJ, sigmaJ, t float64, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateNonNegative("lambda", lambda); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	model := models.NewMerton(spot, rate, vol, lambda, muJ, sigmaJ, t, ctx.Steps())
	discount := math.Exp(-rate * t)

	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		for i := 0; i < count; i++ {
			s := model.SimulateTerminal(st)
			p := payoff.Vanilla(s, strike, kind)
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

// SABREuropeanCall prices a European call on a SABR forward, using the
// SABRParams installed on ctx via WithSABRParams.
func SABREuropeanCall(ctx *Context, spot, strike, rate, t float64) (float64, error) {
	return sabrEuropeanPrice(ctx, spot, strike, rate, t, payoff.Call)
}

// SABREuropeanPut prices a European put on a SABR forward.
func SABREuropeanPut(ctx *Context, spot, strike, rate, t float64) (float64, error) {
	return sabrEuropeanPrice(ctx, spot, strike, rate, t, payoff.Put)
}

func sabrEuropeanPrice(ctx *Context, spot, strike, rate, t float64, kind payoff.Type) (float64, error) {
	if err := validatePositive("spot", spot); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validatePositive("strike", strike); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateNonNegative("time", t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}

	params := ctx.SABR()
	if err := validateCorrelation("rho", params.Rho); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	model := models.NewSABR(spot, params.Alpha, params.Beta, params.Rho, params.Nu, t, ctx.Steps())
	discount := math.Exp(-rate * t)

	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		for i := 0; i < count; i++ {
			forward := model.SimulateTerminal(st)
			p := payoff.Vanilla(forward, strike, kind)
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
