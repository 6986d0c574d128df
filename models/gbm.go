// SPDX-License-Identifier: MIT
// Package models implements the path-simulation kernels: exact-step GBM and
// Black-76, and the multi-step Euler discretisations of SABR, Heston, and
// Merton jump-diffusion. Every kernel precomputes step-invariant constants
// at initialisation to hoist expensive calls (sqrt, exp, log) out of the
// Monte Carlo loop, and consumes normals exclusively from *rng.State so
// determinism flows from the caller's generator discipline, not from this
// package.
package models

import (
	"math"

	"github.com/optionlab/mcoptions/rng"
)

// GBM holds precomputed geometric Brownian motion constants for terminal-only
// simulation: S(T) = S0 * exp(drift + diffusion*Z).
type GBM struct {
	Spot       float64
	Rate       float64
	Volatility float64
	Time       float64

	drift     float64
	diffusion float64
	discount  float64
}

// NewGBM initializes a terminal-only GBM model.
func NewGBM(spot, rate, volatility, time float64) *GBM {
	return &GBM{
		Spot:       spot,
		Rate:       rate,
		Volatility: volatility,
		Time:       time,
		drift:      (rate - 0.5*volatility*volatility) * time,
		diffusion:  volatility * math.Sqrt(time),
		discount:   math.Exp(-rate * time),
	}
}

// Discount returns the precomputed exp(-rate*time).
func (m *GBM) Discount() float64 { return m.discount }

// Terminal returns S(T) for a given standard normal draw z.
func (m *GBM) Terminal(z float64) float64 {
	return m.Spot * math.Exp(m.drift+m.diffusion*z)
}

// SimulateTerminal draws one normal from st and returns S(T).
func (m *GBM) SimulateTerminal(st *rng.State) float64 {
	return m.Terminal(st.Normal())
}

// SimulateAntithetic draws one normal z from st and returns S(T) for +z as
// plus and S(T) for -z as minus. Both legs reuse the same draw.
func (m *GBM) SimulateAntithetic(st *rng.State) (plus, minus float64) {
	z := st.Normal()
	return m.Terminal(z), m.Terminal(-z)
}

// GBMPath holds precomputed per-step constants for discretised GBM path
// simulation, used by path-dependent instruments (Asian, barrier, lookback,
// Bermudan, LSM).
type GBMPath struct {
	Spot     float64
	NumSteps int

	dt          float64
	driftDt     float64
	diffusionDt float64
	discount    float64
}

// NewGBMPath initializes a GBM path model with numSteps equal sub-intervals
// of [0, time].
func NewGBMPath(spot, rate, volatility, time float64, numSteps int) *GBMPath {
	dt := time / float64(numSteps)
	return &GBMPath{
		Spot:        spot,
		NumSteps:    numSteps,
		dt:          dt,
		driftDt:     (rate - 0.5*volatility*volatility) * dt,
		diffusionDt: volatility * math.Sqrt(dt),
		discount:    math.Exp(-rate * time),
	}
}

// Dt returns the per-step time increment T/numSteps.
func (m *GBMPath) Dt() float64 { return m.dt }

// Discount returns the precomputed exp(-rate*time) over the whole horizon.
func (m *GBMPath) Discount() float64 { return m.discount }

// Step advances currentSpot by one interval given a standard normal z.
func (m *GBMPath) Step(currentSpot, z float64) float64 {
	return currentSpot * math.Exp(m.driftDt+m.diffusionDt*z)
}

// SimulatePath fills path (length NumSteps+1) with path[0]=Spot and
// path[i]=S(i*dt) for i=1..NumSteps, drawing one normal per step from st.
func (m *GBMPath) SimulatePath(st *rng.State, path []float64) {
	path[0] = m.Spot
	for i := 0; i < m.NumSteps; i++ {
		z := st.Normal()
		path[i+1] = m.Step(path[i], z)
	}
}

// SimulateAntitheticPaths walks two trajectories in lockstep using opposite
// normals at every step, the path-dependent analogue of SimulateAntithetic.
func (m *GBMPath) SimulateAntitheticPaths(st *rng.State, pathPlus, pathMinus []float64) {
	pathPlus[0] = m.Spot
	pathMinus[0] = m.Spot
	for i := 0; i < m.NumSteps; i++ {
		z := st.Normal()
		pathPlus[i+1] = m.Step(pathPlus[i], z)
		pathMinus[i+1] = m.Step(pathMinus[i], -z)
	}
}
