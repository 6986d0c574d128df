// SPDX-License-Identifier: MIT
package rng

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewStateDeterministic(t *testing.T) {
	a := NewState(42)
	b := NewState(42)

	for i := 0; i < 1000; i++ {
		require.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestNewStateNeverAllZero(t *testing.T) {
	st := NewState(0)
	require.False(t, st.s0 == 0 && st.s1 == 0 && st.s2 == 0 && st.s3 == 0)
}

func TestFloat64Range(t *testing.T) {
	st := NewState(7)
	for i := 0; i < 10000; i++ {
		u := st.Float64()
		require.GreaterOrEqual(t, u, 0.0)
		require.Less(t, u, 1.0)
	}
}

func TestNormalMeanAndVariance(t *testing.T) {
	st := NewState(1234)
	const n = 100000
	var sum, sumSq float64
	for i := 0; i < n; i++ {
		z := st.Normal()
		sum += z
		sumSq += z * z
	}
	mean := sum / n
	variance := sumSq/n - mean*mean

	require.Less(t, math.Abs(mean), 0.02)
	require.Less(t, math.Abs(variance-1.0), 0.02)
}

func TestJumpProducesDistinctStream(t *testing.T) {
	base := NewState(99)
	jumped := base.Clone()
	jumped.Jump()

	identical := 0
	for i := 0; i < 100; i++ {
		if base.Uint64() == jumped.Uint64() {
			identical++
		}
	}
	require.Zero(t, identical)
}

func TestJumpedIsPure(t *testing.T) {
	master := NewState(5)
	before := *master

	_ = Jumped(master, 3)

	require.Equal(t, before, *master)
}

func TestJumpedMatchesRepeatedJump(t *testing.T) {
	master := NewState(5)
	want := master.Clone()
	want.Jump()
	want.Jump()
	want.Jump()

	got := Jumped(master, 3)

	require.Equal(t, want.Uint64(), got.Uint64())
}
