// SPDX-License-Identifier: MIT
// pricer_american.go — Longstaff-Schwartz American/Bermudan dispatch. LSM's
// backward induction regresses across the *entire* path set at each
// exercise date, so unlike the terminal-only instruments this is not
// partitioned across the parallel executor: the thread count option does
// not apply here, only the simulation count does.
package mcoptions

import (
	"fmt"

	"github.com/optionlab/mcoptions/lsm"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
)

// AmericanCall prices an American call via Longstaff-Schwartz LSM.
// steps of 0 uses lsm.DefaultAmericanSteps.
func AmericanCall(ctx *Context, spot, strike, rate, vol, t float64, steps int) (float64, error) {
	return americanPrice(ctx, spot, strike, rate, vol, t, steps, payoff.Call)
}

// AmericanPut prices an American put via Longstaff-Schwartz LSM.
func AmericanPut(ctx *Context, spot, strike, rate, vol, t float64, steps int) (float64, error) {
	return americanPrice(ctx, spot, strike, rate, vol, t, steps, payoff.Put)
}

func americanPrice(ctx *Context, spot, strike, rate, vol, t float64, steps int, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if steps < 0 {
		err := fmt.Errorf("steps must be non-negative, got %d: %w", steps, ErrInvalidArgument)
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	price := lsm.American(rng.Jumped(ctx.masterState(), 0), spot, strike, rate, vol, t, steps, ctx.Simulations(), kind)
	ctx.setLastError(nil)
	return price, nil
}

// BermudanCall prices a Bermudan call restricted to exerciseTimes (fractions
// of t, non-decreasing, each in [0,1]).
func BermudanCall(ctx *Context, spot, strike, rate, vol, t float64, exerciseTimes []float64) (float64, error) {
	return bermudanPrice(ctx, spot, strike, rate, vol, t, exerciseTimes, payoff.Call)
}

// BermudanPut prices a Bermudan put restricted to exerciseTimes.
func BermudanPut(ctx *Context, spot, strike, rate, vol, t float64, exerciseTimes []float64) (float64, error) {
	return bermudanPrice(ctx, spot, strike, rate, vol, t, exerciseTimes, payoff.Put)
}

func bermudanPrice(ctx *Context, spot, strike, rate, vol, t float64, exerciseTimes []float64, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validateExerciseTimes(exerciseTimes); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	price := lsm.Bermudan(rng.Jumped(ctx.masterState(), 0), spot, strike, rate, vol, t, exerciseTimes, ctx.Simulations(), kind)
	ctx.setLastError(nil)
	return price, nil
}
