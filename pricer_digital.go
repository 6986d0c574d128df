// SPDX-License-Identifier: MIT
package mcoptions

import (
	gocontext "context"

	"github.com/optionlab/mcoptions/exec"
	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
)

// DigitalCashCall prices a cash-or-nothing digital call: pays payout if
// terminal spot finishes above strike, else zero.
func DigitalCashCall(ctx *Context, spot, strike, payout, rate, vol, t float64) (float64, error) {
	return digitalPrice(ctx, spot, strike, payout, rate, vol, t, payoff.Call, true)
}

// DigitalCashPut prices a cash-or-nothing digital put.
func DigitalCashPut(ctx *Context, spot, strike, payout, rate, vol, t float64) (float64, error) {
	return digitalPrice(ctx, spot, strike, payout, rate, vol, t, payoff.Put, true)
}

// DigitalAssetCall prices an asset-or-nothing digital call: pays the
// terminal spot itself if it finishes above strike, else zero.
func DigitalAssetCall(ctx *Context, spot, strike, rate, vol, t float64) (float64, error) {
	return digitalPrice(ctx, spot, strike, 0, rate, vol, t, payoff.Call, false)
}

// DigitalAssetPut prices an asset-or-nothing digital put.
func DigitalAssetPut(ctx *Context, spot, strike, rate, vol, t float64) (float64, error) {
	return digitalPrice(ctx, spot, strike, 0, rate, vol, t, payoff.Put, false)
}

func digitalPrice(ctx *Context, spot, strike, payout, rate, vol, t float64, kind payoff.Type, cash bool) (float64, error) {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		if cash {
			return payoff.DigitalCash(spot, strike, payout, kind), nil
		}
		return payoff.DigitalAsset(spot, strike, kind), nil
	}

	model := models.NewGBM(spot, rate, vol, t)

	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		var acc exec.Accumulator
		for i := 0; i < count; i++ {
			s := model.SimulateTerminal(st)
			var p float64
			if cash {
				p = payoff.DigitalCash(s, strike, payout, kind)
			} else {
				p = payoff.DigitalAsset(s, strike, kind)
			}
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
