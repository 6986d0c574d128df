// SPDX-License-Identifier: MIT
package mcoptions

import (
	gocontext "context"
	"fmt"

	"github.com/optionlab/mcoptions/analytic"
	"github.com/optionlab/mcoptions/exec"
	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/payoff"
	"github.com/optionlab/mcoptions/rng"
	"github.com/optionlab/mcoptions/variance"
)

// AsianGeometricCall prices a fixed-strike geometric-average Asian call via
// the exact Kemna-Vorst closed form; no simulation is needed.
func AsianGeometricCall(ctx *Context, spot, strike, rate, vol, t float64, numObs int) (float64, error) {
	if err := validateAsianContract(spot, strike, vol, t, numObs); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	ctx.setLastError(nil)
	return analytic.AsianGeometricCall(spot, strike, rate, vol, t, numObs), nil
}

// AsianGeometricPut prices a fixed-strike geometric-average Asian put via
// the exact closed form.
func AsianGeometricPut(ctx *Context, spot, strike, rate, vol, t float64, numObs int) (float64, error) {
	if err := validateAsianContract(spot, strike, vol, t, numObs); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	ctx.setLastError(nil)
	return analytic.AsianGeometricPut(spot, strike, rate, vol, t, numObs), nil
}

// AsianArithmeticCall prices a fixed-strike arithmetic-average Asian call by
// simulation, using the geometric-average payoff (priced exactly by
// AsianGeometricCall) as a control variate.
func AsianArithmeticCall(ctx *Context, spot, strike, rate, vol, t float64, numObs int) (float64, error) {
	return asianArithmeticPrice(ctx, spot, strike, rate, vol, t, numObs, payoff.Call)
}

// AsianArithmeticPut prices a fixed-strike arithmetic-average Asian put by
// simulation with the same geometric control variate.
func AsianArithmeticPut(ctx *Context, spot, strike, rate, vol, t float64, numObs int) (float64, error) {
	return asianArithmeticPrice(ctx, spot, strike, rate, vol, t, numObs, payoff.Put)
}

func validateAsianContract(spot, strike, vol, t float64, numObs int) error {
	if err := validateVanillaContract(spot, strike, vol, t); err != nil {
		return err
	}
	if numObs < 1 {
		return fmt.Errorf("numObs must be at least 1, got %d: %w", numObs, ErrInvalidArgument)
	}
	return nil
}

func asianArithmeticPrice(ctx *Context, spot, strike, rate, vol, t float64, numObs int, kind payoff.Type) (float64, error) {
	if err := validateAsianContract(spot, strike, vol, t, numObs); err != nil {
		ctx.setLastError(err)
		return 0, err
	}
	if t == 0 {
		return payoff.Vanilla(spot, strike, kind), nil
	}

	model := models.NewGBMPath(spot, rate, vol, t, numObs)
	discount := model.Discount()

	var ez float64
	if kind == payoff.Call {
		ez, _ = AsianGeometricCall(ctx, spot, strike, rate, vol, t, numObs)
	} else {
		ez, _ = AsianGeometricPut(ctx, spot, strike, rate, vol, t, numObs)
	}

	antithetic := ctx.Antithetic()
	work := func(st *rng.State, count int) (exec.Accumulator, error) {
		moments := variance.RawMoments{}

		if antithetic {
			pathPlus := make([]float64, numObs+1)
			pathMinus := make([]float64, numObs+1)
			pairs := variance.PairCount(count)

			for i := 0; i < pairs; i++ {
				model.SimulateAntitheticPaths(st, pathPlus, pathMinus)

				arithPlus := discount * payoff.AsianFixedStrike(payoff.ArithmeticAverage(pathPlus), strike, kind)
				geoPlus := discount * payoff.AsianFixedStrike(payoff.GeometricAverage(pathPlus), strike, kind)
				arithMinus := discount * payoff.AsianFixedStrike(payoff.ArithmeticAverage(pathMinus), strike, kind)
				geoMinus := discount * payoff.AsianFixedStrike(payoff.GeometricAverage(pathMinus), strike, kind)

				moments.Add(arithPlus, geoPlus)
				moments.Add(arithMinus, geoMinus)
			}

			return exec.Accumulator{
				Extra: []float64{moments.SumX, moments.SumZ, moments.SumXX, moments.SumZZ, moments.SumXZ},
				Count: int(moments.N),
			}, nil
		}

		path := make([]float64, numObs+1)
		for i := 0; i < count; i++ {
			model.SimulatePath(st, path)

			arith := discount * payoff.AsianFixedStrike(payoff.ArithmeticAverage(path), strike, kind)
			geo := discount * payoff.AsianFixedStrike(payoff.GeometricAverage(path), strike, kind)

			moments.Add(arith, geo)
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
