// SPDX-License-Identifier: MIT
// Package sobol implements a gray-code Sobol low-discrepancy sequence
// generator with direction numbers from Joe & Kuo (2008) for the first 40
// dimensions, plus Moro's algorithm for mapping uniforms to standard
// normals. It is a supplemented, optional draw source: the path kernels and
// pricing calls all draw from a concrete *rng.State and none of them accepts
// a Sequence, so it is used on its own through Next and NextNormal, trading
// independence for faster convergence on smooth integrands.
package sobol

import "math"

const (
	// MaxDimensions bounds the generator per the standard direction-number
	// tables; dimensions beyond 40 fall back to a deterministic but
	// non-optimal synthetic direction-number scheme.
	MaxDimensions = 1024
	bits          = 32
)

// primitivePoly holds (degree, polynomial coefficient) pairs for dimensions
// 2..40 (dimension 1 needs no polynomial).
var primitivePoly = [39][2]uint32{
	{1, 0}, {2, 1}, {3, 1}, {3, 2}, {4, 1}, {4, 4}, {5, 2}, {5, 4}, {5, 7},
	{5, 11}, {5, 13}, {5, 14}, {6, 1}, {6, 13}, {6, 16}, {6, 19}, {6, 22},
	{6, 25}, {7, 1}, {7, 4}, {7, 7}, {7, 8}, {7, 14}, {7, 19}, {7, 21},
	{7, 28}, {7, 31}, {7, 32}, {7, 37}, {7, 41}, {7, 42}, {7, 50}, {7, 55},
	{7, 56}, {7, 59}, {7, 62}, {8, 14}, {8, 21}, {8, 22},
}

// initialM holds the initial odd direction-number seeds for dimensions
// 2..40, indexed the same way as primitivePoly.
var initialM = [39][]uint32{
	{1}, {1, 1}, {1, 3, 1}, {1, 3, 3}, {1, 1, 1, 1}, {1, 1, 3, 3},
	{1, 3, 5, 13, 7}, {1, 1, 5, 5, 21}, {1, 3, 1, 15, 21}, {1, 3, 7, 5, 27},
	{1, 1, 5, 11, 19}, {1, 3, 5, 1, 1}, {1, 1, 1, 3, 29, 15},
	{1, 1, 3, 7, 7, 49}, {1, 1, 1, 9, 19, 21}, {1, 1, 1, 13, 21, 55},
	{1, 1, 7, 5, 7, 11}, {1, 1, 7, 7, 31, 17}, {1, 3, 7, 13, 1, 5, 49},
	{1, 1, 5, 3, 17, 57, 97}, {1, 1, 7, 1, 7, 33, 73},
	{1, 3, 3, 9, 23, 47, 97}, {1, 3, 7, 5, 5, 27, 39},
	{1, 3, 1, 3, 21, 3, 7}, {1, 1, 5, 11, 29, 17, 117},
	{1, 1, 3, 15, 15, 49, 125}, {1, 3, 1, 11, 19, 7, 3},
	{1, 1, 7, 7, 25, 5, 85}, {1, 1, 7, 13, 29, 51, 107},
	{1, 3, 5, 13, 31, 55, 89}, {1, 1, 1, 5, 11, 51, 69},
	{1, 1, 3, 7, 17, 39, 127}, {1, 1, 1, 9, 1, 33, 83},
	{1, 3, 5, 7, 19, 29, 73}, {1, 3, 5, 5, 1, 37, 101},
	{1, 3, 3, 11, 29, 33, 93}, {1, 3, 1, 3, 25, 29, 127, 151},
	{1, 1, 7, 11, 5, 5, 23, 69}, {1, 3, 3, 1, 31, 51, 95, 243},
}

// Sequence is a gray-code Sobol generator over a fixed dimension count.
type Sequence struct {
	dim   uint32
	count uint32
	x     []uint32
	v     [][bits]uint32
}

// New returns a Sequence generator for the given dimension count (1 to
// MaxDimensions).
func New(dim uint32) (*Sequence, error) {
	if dim == 0 || dim > MaxDimensions {
		return nil, errInvalidDimension
	}

	s := &Sequence{
		dim: dim,
		x:   make([]uint32, dim),
		v:   make([][bits]uint32, dim),
	}

	for d := uint32(0); d < dim; d++ {
		switch {
		case d == 0:
			for k := 0; k < bits; k++ {
				s.v[0][k] = 1 << uint(bits-1-k)
			}
		case d < 40:
			deg := primitivePoly[d-1][0]
			poly := primitivePoly[d-1][1]
			m := initialM[d-1]

			for k := uint32(0); k < deg && int(k) < len(m); k++ {
				s.v[d][k] = m[k] << uint(bits-1-k)
			}
			for k := deg; k < bits; k++ {
				vk := s.v[d][k-deg]
				vk ^= s.v[d][k-deg] >> deg
				for j := uint32(1); j < deg; j++ {
					if poly&(1<<uint(deg-1-j)) != 0 {
						vk ^= s.v[d][k-j]
					}
				}
				s.v[d][k] = vk
			}
		default:
			for k := uint32(0); k < bits; k++ {
				mix := (d*2654435761 ^ (k * 1597334677)) << uint(bits-1-k)
				s.v[d][k] = mix | (1 << uint(bits-1-k))
			}
		}
	}

	return s, nil
}

// Next writes the next point in [0,1)^dim into point, which must have
// length dim, and advances the sequence.
func (s *Sequence) Next(point []float64) {
	c := rightmostZeroBit(s.count)
	const scale = 1.0 / float64(uint64(1)<<bits)

	for d := uint32(0); d < s.dim; d++ {
		s.x[d] ^= s.v[d][c]
		point[d] = float64(s.x[d]) * scale
	}
	s.count++
}

// NextNormal writes the next point in R^dim, mapped coordinate-wise through
// the inverse standard normal CDF, into out (length dim).
func (s *Sequence) NextNormal(out []float64) {
	point := make([]float64, s.dim)
	s.Next(point)
	for i, u := range point {
		out[i] = InverseNormalCDF(u)
	}
}

// SkipTo advances the sequence by n points without materializing them,
// letting parallel consumers carve out disjoint blocks of the same
// deterministic sequence.
func (s *Sequence) SkipTo(n uint64) {
	for i := uint64(0); i < n; i++ {
		c := rightmostZeroBit(s.count)
		for d := uint32(0); d < s.dim; d++ {
			s.x[d] ^= s.v[d][c]
		}
		s.count++
	}
}

// Reset rewinds the sequence to its initial point.
func (s *Sequence) Reset() {
	s.count = 0
	for d := range s.x {
		s.x[d] = 0
	}
}

func rightmostZeroBit(n uint32) uint {
	var c uint
	for n&1 == 1 {
		n >>= 1
		c++
	}
	return c
}

// InverseNormalCDF maps a uniform draw in (0,1) to a standard normal
// quantile via Moro's algorithm: a rational approximation in the central
// region and an asymptotic tail expansion beyond |u-0.5| >= 0.42.
func InverseNormalCDF(u float64) float64 {
	a := [4]float64{2.50662823884, -18.61500062529, 41.39119773534, -25.44106049637}
	b := [4]float64{-8.47351093090, 23.08336743743, -21.06224101826, 3.13082909833}
	c := [9]float64{
		0.3374754822726147, 0.9761690190917186, 0.1607979714918209,
		0.0276438810333863, 0.0038405729373609, 0.0003951896511919,
		0.0000321767881768, 0.0000002888167364, 0.0000003960315187,
	}

	x := u - 0.5
	var r float64

	if math.Abs(x) < 0.42 {
		rr := x * x
		r = x * (((a[3]*rr+a[2])*rr+a[1])*rr + a[0]) /
			((((b[3]*rr+b[2])*rr+b[1])*rr+b[0])*rr + 1.0)
		return r
	}

	if x > 0 {
		r = 1.0 - u
	} else {
		r = u
	}
	r = math.Log(-math.Log(r))
	r = c[0] + r*(c[1]+r*(c[2]+r*(c[3]+r*(c[4]+r*(c[5]+r*(c[6]+r*(c[7]+r*c[8])))))))
	if x < 0 {
		r = -r
	}
	return r
}
