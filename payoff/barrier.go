// SPDX-License-Identifier: MIT
package payoff

import (
	"math"

	"github.com/optionlab/mcoptions/models"
	"github.com/optionlab/mcoptions/rng"
)

// BarrierStyle enumerates the four knock-in/knock-out, up/down
// combinations.
type BarrierStyle int

const (
	DownIn BarrierStyle = iota
	DownOut
	UpIn
	UpOut
)

func (s BarrierStyle) isUp() bool {
	return s == UpIn || s == UpOut
}

func (s BarrierStyle) isKnockIn() bool {
	return s == DownIn || s == UpIn
}

// bridgeHitProbability returns the probability that a Brownian bridge
// between s1 and s2 over an interval of length dt with volatility vol
// crossed barrier h, conditional on both endpoints lying strictly on the
// non-breached side. For an up-barrier: if either endpoint already reached
// h, the probability is 1 (already handled by the caller's discrete test,
// this is a defensive fallback); otherwise
// exp(-2*ln(h/s1)*ln(h/s2)/(vol^2*dt)). The down-barrier case is symmetric
// with ln(s1/h)*ln(s2/h).
func bridgeHitProbability(s1, s2, h, vol, dt float64, up bool) float64 {
	if up {
		if s1 >= h || s2 >= h {
			return 1.0
		}
		return math.Exp(-2 * math.Log(h/s1) * math.Log(h/s2) / (vol * vol * dt))
	}

	if s1 <= h || s2 <= h {
		return 1.0
	}
	return math.Exp(-2 * math.Log(s1/h) * math.Log(s2/h) / (vol * vol * dt))
}

// BarrierOutcome is the result of simulating one barrier-monitored path: a
// hit flag (whether the monitored barrier was touched, by discrete crossing
// or bridge draw) and the terminal spot for payoff evaluation.
type BarrierOutcome struct {
	Hit      bool
	Terminal float64
}

// SimulatePath walks model for NumSteps, testing for a barrier touch after
// every step via the discrete-crossing test followed by the
// continuous-approximation Brownian-bridge test; the first positive test
// stops further monitoring (the barrier stays "hit" for the rest of the
// path; simulation continues only to produce the terminal spot).
func SimulatePath(model *models.GBMPath, st *rng.State, vol, barrier float64, style BarrierStyle) BarrierOutcome {
	up := style.isUp()
	dt := model.Dt()

	spot := model.Spot
	hit := crossed(spot, barrier, up)

	for i := 0; i < model.NumSteps; i++ {
		z := st.Normal()
		next := model.Step(spot, z)

		if !hit {
			if crossed(next, barrier, up) {
				hit = true
			} else if u := st.Float64(); u < bridgeHitProbability(spot, next, barrier, vol, dt, up) {
				hit = true
			}
		}

		spot = next
	}

	return BarrierOutcome{Hit: hit, Terminal: spot}
}

// SimulatePathAntithetic walks two trajectories in lockstep using opposite
// normals at every step, the barrier analogue of GBMPath.SimulateAntitheticPaths.
// Each leg draws its own bridge continuity-correction uniform independently
// since that draw is not the antithetic-paired normal.
func SimulatePathAntithetic(model *models.GBMPath, st *rng.State, vol, barrier float64, style BarrierStyle) (plus, minus BarrierOutcome) {
	up := style.isUp()
	dt := model.Dt()

	spotPlus, spotMinus := model.Spot, model.Spot
	hitPlus := crossed(spotPlus, barrier, up)
	hitMinus := hitPlus

	for i := 0; i < model.NumSteps; i++ {
		z := st.Normal()
		nextPlus := model.Step(spotPlus, z)
		nextMinus := model.Step(spotMinus, -z)

		if !hitPlus {
			if crossed(nextPlus, barrier, up) {
				hitPlus = true
			} else if u := st.Float64(); u < bridgeHitProbability(spotPlus, nextPlus, barrier, vol, dt, up) {
				hitPlus = true
			}
		}
		if !hitMinus {
			if crossed(nextMinus, barrier, up) {
				hitMinus = true
			} else if u := st.Float64(); u < bridgeHitProbability(spotMinus, nextMinus, barrier, vol, dt, up) {
				hitMinus = true
			}
		}

		spotPlus, spotMinus = nextPlus, nextMinus
	}

	return BarrierOutcome{Hit: hitPlus, Terminal: spotPlus}, BarrierOutcome{Hit: hitMinus, Terminal: spotMinus}
}

func crossed(spot, barrier float64, up bool) bool {
	if up {
		return spot >= barrier
	}
	return spot <= barrier
}

// Price evaluates the knock-in/knock-out payoff given a simulated outcome:
// knock-in pays the vanilla payoff only if hit (else zero); knock-out pays
// the vanilla payoff only if not hit (else rebate).
func (s BarrierStyle) Price(outcome BarrierOutcome, strike, rebate float64, t Type) float64 {
	vanilla := Vanilla(outcome.Terminal, strike, t)

	if s.isKnockIn() {
		if outcome.Hit {
			return vanilla
		}
		return 0
	}

	if outcome.Hit {
		return rebate
	}
	return vanilla
}
