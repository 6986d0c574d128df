// SPDX-License-Identifier: MIT
package models

import (
	"math"

	"github.com/optionlab/mcoptions/rng"
)

// sabrVolFloor keeps the stochastic volatility leg away from zero to avoid
// division-by-zero in F^beta when beta < 1.
const sabrVolFloor = 1e-8

// SABR holds precomputed per-step constants for Euler-Maruyama simulation of
// the SABR stochastic-volatility forward model.
type SABR struct {
	Forward0 float64
	Alpha0   float64
	Beta     float64
	Rho      float64
	Nu       float64
	Time     float64
	NumSteps int

	dt     float64
	sqrtDt float64
}

// NewSABR initializes a SABR path model.
func NewSABR(forward0, alpha0, beta, rho, nu, time float64, numSteps int) *SABR {
	dt := time / float64(numSteps)
	return &SABR{
		Forward0: forward0,
		Alpha0:   alpha0,
		Beta:     beta,
		Rho:      rho,
		Nu:       nu,
		Time:     time,
		NumSteps: numSteps,
		dt:       dt,
		sqrtDt:   math.Sqrt(dt),
	}
}

// SimulateTerminal walks the correlated (forward, volatility) pair for
// NumSteps and returns the terminal forward. Absorption at F=0 is a hard
// contract: once the forward hits zero, it stays there for the remainder of
// the path.
func (m *SABR) SimulateTerminal(st *rng.State) float64 {
	f := m.Forward0
	alpha := m.Alpha0

	for i := 0; i < m.NumSteps; i++ {
		if f <= 0 {
			return 0
		}

		z1 := st.Normal()
		z2 := st.Normal()
		w1 := z1
		w2 := m.Rho*z1 + math.Sqrt(1-m.Rho*m.Rho)*z2

		fBeta := math.Pow(f, m.Beta)
		f = math.Max(f+alpha*fBeta*m.sqrtDt*w1, 0)
		alpha = math.Max(alpha+m.Nu*alpha*m.sqrtDt*w2, sabrVolFloor)
	}

	return f
}

// SimulatePath fills forwardPath and volPath (length NumSteps+1) with the
// joint trajectory, for instruments that need the full path rather than
// just the terminal forward.
func (m *SABR) SimulatePath(st *rng.State, forwardPath, volPath []float64) {
	forwardPath[0] = m.Forward0
	volPath[0] = m.Alpha0

	for i := 0; i < m.NumSteps; i++ {
		f := forwardPath[i]
		alpha := volPath[i]

		if f <= 0 {
			forwardPath[i+1] = 0
			volPath[i+1] = alpha
			continue
		}

		z1 := st.Normal()
		z2 := st.Normal()
		w1 := z1
		w2 := m.Rho*z1 + math.Sqrt(1-m.Rho*m.Rho)*z2

		fBeta := math.Pow(f, m.Beta)
		forwardPath[i+1] = math.Max(f+alpha*fBeta*m.sqrtDt*w1, 0)
		volPath[i+1] = math.Max(alpha+m.Nu*alpha*m.sqrtDt*w2, sabrVolFloor)
	}
}
