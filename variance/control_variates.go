// SPDX-License-Identifier: MIT
package variance

// degenerateVariance is the threshold below which a control variate's
// sample variance is treated as carrying no information.
const degenerateVariance = 1e-12

// ControlVariateStats accumulates the running sums needed to estimate the
// optimal control-variate coefficient and the resulting variance-reduced
// estimate, without storing individual samples.
type ControlVariateStats struct {
	sumX, sumZ   float64
	sumXX, sumZZ float64
	sumXZ        float64
	ez           float64
	n            uint64
}

// NewControlVariateStats returns an accumulator for a control variate with
// known expectation ez.
func NewControlVariateStats(ez float64) *ControlVariateStats {
	return &ControlVariateStats{ez: ez}
}

// Add records one (x, z) sample pair.
func (s *ControlVariateStats) Add(x, z float64) {
	s.sumX += x
	s.sumZ += z
	s.sumXX += x * x
	s.sumZZ += z * z
	s.sumXZ += x * z
	s.n++
}

// N returns the number of samples accumulated.
func (s *ControlVariateStats) N() uint64 { return s.n }

// Estimate returns the control-variate adjusted estimate:
//
//	mean(X) - c*(mean(Z) - E[Z]), c = Cov(X,Z)/Var(Z)
//
// If Var(Z) is degenerate (the control carries no information for this
// sample), the plain mean(X) is returned.
func (s *ControlVariateStats) Estimate() float64 {
	if s.n == 0 {
		return 0
	}

	n := float64(s.n)
	meanX := s.sumX / n
	meanZ := s.sumZ / n

	varZ := s.sumZZ/n - meanZ*meanZ
	if varZ < degenerateVariance {
		return meanX
	}

	covXZ := s.sumXZ/n - meanX*meanZ
	c := covXZ / varZ

	return meanX - c*(meanZ-s.ez)
}

// VarianceReductionFactor returns the estimated 1 - rho^2, the factor by
// which the control variate scales the plain estimator's variance. Values
// near zero indicate strong reduction; values near one indicate little
// benefit. Returns 1.0 (no reduction) when fewer than two samples have been
// accumulated or either variance is degenerate.
func (s *ControlVariateStats) VarianceReductionFactor() float64 {
	if s.n < 2 {
		return 1.0
	}

	n := float64(s.n)
	meanX := s.sumX / n
	meanZ := s.sumZ / n

	varX := s.sumXX/n - meanX*meanX
	varZ := s.sumZZ/n - meanZ*meanZ
	if varX < degenerateVariance || varZ < degenerateVariance {
		return 1.0
	}

	covXZ := s.sumXZ/n - meanX*meanZ
	rhoSq := (covXZ * covXZ) / (varX * varZ)

	return 1.0 - rhoSq
}

// GeometricAsianAdjustedParams returns the adjusted rate and variance used
// by the lognormal geometric-average closed form, shared by the Asian
// closed-form pricer (for E[Z]) and by the arithmetic-Asian control variate.
func GeometricAsianAdjustedParams(rate, vol float64, numObs int) (adjRate, adjVolSq float64) {
	n := float64(numObs)
	adjRate = (rate-0.5*vol*vol)*(n+1)/(2*n) + vol*vol*(n+1)*(2*n+1)/(6*n*n)
	adjVolSq = vol * vol * (n + 1) * (2*n + 1) / (6 * n * n)
	return adjRate, adjVolSq
}

// RawMoments is the set of cross-thread-mergeable running sums behind
// ControlVariateStats, exposed so a parallel executor can accumulate them
// per thread and merge by plain addition before a single final estimate.
type RawMoments struct {
	SumX, SumZ   float64
	SumXX, SumZZ float64
	SumXZ        float64
	N            uint64
}

// Add folds one (x,z) sample into the running sums.
func (m *RawMoments) Add(x, z float64) {
	m.SumX += x
	m.SumZ += z
	m.SumXX += x * x
	m.SumZZ += z * z
	m.SumXZ += x * z
	m.N++
}

// Merge folds other into m, used by a single end-of-run reduction across
// per-thread RawMoments.
func (m *RawMoments) Merge(other RawMoments) {
	m.SumX += other.SumX
	m.SumZ += other.SumZ
	m.SumXX += other.SumXX
	m.SumZZ += other.SumZZ
	m.SumXZ += other.SumXZ
	m.N += other.N
}

// Estimate computes the same control-variate adjusted estimate as
// ControlVariateStats.Estimate, from already-reduced raw sums.
func (m RawMoments) Estimate(ez float64) float64 {
	if m.N == 0 {
		return 0
	}

	n := float64(m.N)
	meanX := m.SumX / n
	meanZ := m.SumZ / n

	varZ := m.SumZZ/n - meanZ*meanZ
	if varZ < degenerateVariance {
		return meanX
	}

	covXZ := m.SumXZ/n - meanX*meanZ
	c := covXZ / varZ

	return meanX - c*(meanZ-ez)
}
