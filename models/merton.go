// SPDX-License-Identifier: MIT
package models

import (
	"math"

	"github.com/optionlab/mcoptions/rng"
)

// Merton holds precomputed per-step constants for Euler simulation of the
// Merton jump-diffusion model: continuous GBM-style diffusion plus a
// compound Poisson jump component with lognormally distributed jump sizes.
type Merton struct {
	Spot0    float64
	Rate     float64
	Sigma    float64
	Lambda   float64
	MuJ      float64
	SigmaJ   float64
	Time     float64
	NumSteps int

	dt       float64
	sqrtDt   float64
	k        float64 // E[e^Y] - 1 compensator, Y ~ N(muJ, sigmaJ^2)
	lambdaDt float64
}

// NewMerton initializes a Merton jump-diffusion path model. k = exp(muJ +
// 0.5*sigmaJ^2) - 1 ensures E[dS/S] = rate*dt despite the jump component.
func NewMerton(spot0, rate, sigma, lambda, muJ, sigmaJ, time float64, numSteps int) *Merton {
	dt := time / float64(numSteps)
	return &Merton{
		Spot0: spot0, Rate: rate, Sigma: sigma,
		Lambda: lambda, MuJ: muJ, SigmaJ: sigmaJ,
		Time: time, NumSteps: numSteps,
		dt:       dt,
		sqrtDt:   math.Sqrt(dt),
		k:        math.Exp(muJ+0.5*sigmaJ*sigmaJ) - 1,
		lambdaDt: lambda * dt,
	}
}

// poisson draws a Poisson(lambdaDt) count. Uses a Bernoulli approximation
// when lambdaDt < 0.1 (at most one jump per step, the regime this model is
// normally run in), otherwise Knuth's inverse-transform method.
func poisson(st *rng.State, lambdaDt float64) int {
	if lambdaDt < 0.1 {
		if st.Float64() < lambdaDt {
			return 1
		}
		return 0
	}

	l := math.Exp(-lambdaDt)
	k := 0
	p := 1.0
	for {
		k++
		p *= st.Float64()
		if p <= l {
			break
		}
	}
	return k - 1
}

// step advances the log-spot by one interval: continuous diffusion plus the
// sum of K lognormal jump log-sizes, K ~ Poisson(lambda*dt).
func (m *Merton) step(spot float64, st *rng.State) float64 {
	z := st.Normal()
	drift := (m.Rate - m.Lambda*m.k - 0.5*m.Sigma*m.Sigma) * m.dt
	diffusion := m.Sigma * m.sqrtDt * z

	jumpSum := 0.0
	numJumps := poisson(st, m.lambdaDt)
	for j := 0; j < numJumps; j++ {
		zj := st.Normal()
		jumpSum += m.MuJ + m.SigmaJ*zj
	}

	return spot * math.Exp(drift+diffusion+jumpSum)
}

// SimulateTerminal walks NumSteps and returns the terminal spot.
func (m *Merton) SimulateTerminal(st *rng.State) float64 {
	spot := m.Spot0
	for i := 0; i < m.NumSteps; i++ {
		spot = m.step(spot, st)
	}
	return spot
}

// SimulatePath fills path (length NumSteps+1) with the full trajectory.
func (m *Merton) SimulatePath(st *rng.State, path []float64) {
	path[0] = m.Spot0
	for i := 0; i < m.NumSteps; i++ {
		path[i+1] = m.step(path[i], st)
	}
}
