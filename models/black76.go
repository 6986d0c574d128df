// SPDX-License-Identifier: MIT
package models

import (
	"math"

	"github.com/optionlab/mcoptions/rng"
)

// Black76 holds precomputed constants for simulating forward/futures
// dynamics: identical to GBM but with no cost-of-carry term in the drift —
// discounting is applied only to the terminal payoff, never inside the
// simulated forward itself.
type Black76 struct {
	Forward    float64
	Rate       float64
	Volatility float64
	Time       float64

	diffusion float64
	discount  float64
}

// NewBlack76 initializes a terminal-only Black-76 forward model.
func NewBlack76(forward, rate, volatility, time float64) *Black76 {
	return &Black76{
		Forward:    forward,
		Rate:       rate,
		Volatility: volatility,
		Time:       time,
		diffusion:  volatility * math.Sqrt(time),
		discount:   math.Exp(-rate * time),
	}
}

func (m *Black76) Discount() float64 { return m.discount }

// Terminal returns F(T) for a standard normal draw z. The forward's own
// drift carries no rate term; only the discount factor applied to the
// terminal payoff accounts for the risk-free rate.
func (m *Black76) Terminal(z float64) float64 {
	drift := -0.5 * m.Volatility * m.Volatility * m.Time
	return m.Forward * math.Exp(drift+m.diffusion*z)
}

func (m *Black76) SimulateTerminal(st *rng.State) float64 {
	return m.Terminal(st.Normal())
}

func (m *Black76) SimulateAntithetic(st *rng.State) (plus, minus float64) {
	z := st.Normal()
	return m.Terminal(z), m.Terminal(-z)
}
