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

// BarrierCall prices a barrier call of the given style (DownIn/DownOut/
// UpIn/UpOut), discretely monitored at steps points plus a Brownian-bridge
// continuity correction between monitoring dates.
func BarrierCall(ctx *Context, spot, strike, barrier, rebate, rate, vol, t float64, style payoff.BarrierStyle, steps int) (float64, error) {
	return barrierPrice(ctx, spot, strike, barrier, rebate, rate, vol, t, style, steps, payoff.Call)
}

// BarrierPut prices a barrier put of the given style.
func BarrierPut(ctx *Context, spot, strike, barrier, rebate, rate, vol, t float64, style payoff.BarrierStyle, steps int) (float64, error) {
	return barrierPrice(ctx, spot, strike, barrier, rebate, rate, vol, t, style, steps, payoff.Put)
}

func barrierPrice(ctx *Context, spot, strike, barrier, rebate, rate, vol, t float64, style payoff.BarrierStyle, steps int, kind payoff.Type) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if err := validatePositive("barrier", barrier); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if steps < 1 {
		err := fmt.Errorf("steps must be at least 1, got %d: %w", steps, ErrInvalidArgument)
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		up := style == payoff.UpIn || style == payoff.UpOut
		hit := (up && spot >= barrier) || (!up && spot <= barrier)
		outcome := payoff.BarrierOutcome{Hit: hit, Terminal: spot}
		return style.Price(outcome, strike, rebate, kind), nil
	}

	model := models.NewGBMPath(spot, rate, vol, t, steps)
	discount := model.Discount()

	antithetic := ctx.Antithetic()
	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		if antithetic {
			pairs := variance.PairCount(count)
			for i := 0; i < pairs; i++ {
				outPlus, outMinus := payoff.SimulatePathAntithetic(model, st, vol, barrier, style)
				p1 := style.Price(outPlus, strike, rebate, kind)
				p2 := style.Price(outMinus, strike, rebate, kind)
				acc.Sum += p1 + p2
				acc.SumSq += p1*p1 + p2*p2
				acc.Count += 2
			}
			return acc, nil
		}

		for i := 0; i < count; i++ {
			outcome := payoff.SimulatePath(model, st, vol, barrier, style)
			p := style.Price(outcome, strike, rebate, kind)
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
