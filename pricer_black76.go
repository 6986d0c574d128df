// SPDX-License-Identifier: MIT
// pricer_black76.go — Monte Carlo pricing for options on a forward/futures
// contract under Black-76 dynamics: the forward-measure analogue of
// EuropeanCall/Put, simulated with models.Black76's driftless-under-
// discount kernel instead of GBM's cost-of-carry drift. The closed-form
// Black-76 price, Greeks, and implied vol live in package analytic; this
// pricer exists so Black-76 contracts share the same simulation, variance-
// reduction, and parallel-executor machinery as every other instrument.
package mcoptions

import (
	gocontext "context"

	"github.com/optionlab/mcoptions/exec"
	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
	"github.com/optionlab/mcoptions/variance"
)

// Black76Call prices a call on a forward/futures contract by simulation
// under Black-76 dynamics.
func Black76Call(ctx *Context, forward, strike, rate, vol, t float64) (float64, error) {
	return black76Price(ctx, forward, strike, rate, vol, t, payoff.Call)
}

// Black76Put prices a put on a forward/futures contract by simulation.
func Black76Put(ctx *Context, forward, strike, rate, vol, t float64) (float64, error) {
	return black76Price(ctx, forward, strike, rate, vol, t, payoff.Put)
}

func black76Price(ctx *Context, forward, strike, rate, vol, t float64, kind payoff.Type) (float64, error) {
	if err := validateForwardContract(forward, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(forward, strike, kind), nil
	}

	model := models.NewBlack76(forward, rate, vol, t)
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
			f := model.SimulateTerminal(st)
			p := payoff.Vanilla(f, strike, kind)
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
	return model.Discount() * result.Mean(), nil
}
