// SPDX-License-Identifier: MIT
// pricer_european.go — terminal-only European pricing dispatch: the
// simplest instrument, and the one that exercises every corner of the
// {single/multi-thread} x {plain/antithetic} variant matrix, plus the
// control-variate-on-spot estimator.
package mcoptions

import (
	gocontext "context"
	"math"

	"github.com/optionlab/mcoptions/exec"
	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
	"github.com/optionlab/mcoptions/variance"
)

// EuropeanCall prices a European call under GBM.
func EuropeanCall(ctx *Context, spot, strike, rate, vol, t float64) (float64, error) {
	return europeanPrice(ctx, spot, strike, rate, vol, t, payoff.Call)
}

// EuropeanPut prices a European put under GBM.
func EuropeanPut(ctx *Context, spot, strike, rate, vol, t float64) (float64, error) {
	return europeanPrice(ctx, spot, strike, rate, vol, t, payoff.Put)
}

func europeanPrice(ctx *Context, spot, strike, rate, vol, t float64, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}

	model := models.NewGBM(spot, rate, vol, t)

	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	antithetic := ctx.Antithetic()
	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		if antithetic {
			pairs := variance.PairCount(count)
			acc.Sum = variance.EuropeanPayoffSum(pairs, func() (plusPayoff, minusPayoff float64) {
				plus, minus := model.SimulateAntithetic(st)
				p1 := payoff.Vanilla(plus, strike, kind)
				p2 := payoff.Vanilla(minus, strike, kind)
				acc.SumSq += p1*p1 + p2*p2
				return p1, p2
			})
			acc.Count = 2 * pairs
			return acc, nil
		}

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

	price := model.Discount() * result.Mean()
	ctx.setLastError(nil)
	return price, nil
}

// EuropeanCallCV prices a European call under GBM using the terminal spot
// itself as a control variate, E[Z]=spot*e^(rate*t).
func EuropeanCallCV(ctx *Context, spot, strike, rate, vol, t float64) (float64, error) {
	return europeanPriceCV(ctx, spot, strike, rate, vol, t, payoff.Call)
}

// EuropeanPutCV prices a European put under GBM with the same spot control
// variate.
func EuropeanPutCV(ctx *Context, spot, strike, rate, vol, t float64) (float64, error) {
	return europeanPriceCV(ctx, spot, strike, rate, vol, t, payoff.Put)
}

func europeanPriceCV(ctx *Context, spot, strike, rate, vol, t float64, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	model := models.NewGBM(spot, rate, vol, t)
	discount := model.Discount()
	ez := spot * math.Exp(rate*t)

	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		moments := variance.RawMoments{}
		for i := 0; i < count; i++ {
			s := model.SimulateTerminal(st)
			x := discount * payoff.Vanilla(s, strike, kind)
			moments.Add(x, s)
		}
		return exec.Accumulator{
			Extra: []float64{moments.SumX, moments.SumZ, moments.SumXX, moments.SumZZ, moments.SumXZ},
			Count: int(moments.N),
		}, nil
	}

	result, err := exec.Run(gocontext.Background(), ctx.masterState(), ctx.Simulations(), ctx.Threads(), work)
	if err != nil {
		wrapped := wrapThreadingError(err)
		ctx.setLastError(wrapped)
		return 0, wrapped
	}

	total := result.Total
	moments := variance.RawMoments{
		SumX: total.Extra[0], SumZ: total.Extra[1],
		SumXX: total.Extra[2], SumZZ: total.Extra[3],
		SumXZ: total.Extra[4], N: uint64(total.Count),
	}

	ctx.setLastError(nil)
	return moments.Estimate(ez), nil
}
