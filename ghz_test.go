// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// makeGHZQutrit prepares the n-qutrit GHZ state with a H₃ on register 0
// followed by the standard cascade of controlled X₃ / X₃† gates, the same
// circuit used by the benchmark driver of the original package.
func makeGHZQutrit(t *testing.T, n int) (*MDD, Edge) {
	radices := make([]int, n)
	for i := range radices {
		radices[i] = 3
	}
	p, err := New(radices)
	require.NoError(t, err)

	s, err := p.MakeZeroState(n)
	require.NoError(t, err)
	h, err := p.MakeGateDD(H3, n, nil, 0)
	require.NoError(t, err)
	s = p.Multiply(h, s)

	for target := 1; target < n; target++ {
		ones := make([]Control, target)
		twos := make([]Control, target)
		for c := 0; c < target; c++ {
			ones[c] = Control{Register: c, Type: 1}
			twos[c] = Control{Register: c, Type: 2}
		}
		cx, err := p.MakeGateDD(X3, n, ones, target)
		require.NoError(t, err)
		cxd, err := p.MakeGateDD(X3dag, n, twos, target)
		require.NoError(t, err)
		s = p.Multiply(cx, s)
		s = p.Multiply(cxd, s)
		p.DecRef(cx)
		p.DecRef(cxd)
	}
	require.False(t, p.Errored())
	return p, s
}

func TestGHZScaling(t *testing.T) {
	for _, n := range []int{5, 10, 30, 60, 120} {
		p, s := makeGHZQutrit(t, n)
		digits := make([]int, n)
		for k := 0; k < 3; k++ {
			for i := range digits {
				digits[i] = k
			}
			b, err := p.MakeBasisState(n, digits)
			require.NoError(t, err)
			require.InDelta(t, 1.0/3, p.Fidelity(s, b), 1e-6, "n = %d, |%d…%d>", n, k, k)
		}
		// any state outside the diagonal has amplitude zero
		digits[0] = 1
		digits[n-1] = 2
		b, err := p.MakeBasisState(n, digits)
		require.NoError(t, err)
		require.InDelta(t, 0.0, p.Fidelity(s, b), 1e-9)
	}
}

func TestGHZStateIsCompact(t *testing.T) {
	p, s := makeGHZQutrit(t, 30)
	// a GHZ state needs a linear number of nodes
	require.LessOrEqual(t, p.NodeCount(s), 3*30)
}

func BenchmarkGHZQutrit(b *testing.B) {
	const n = 60
	radices := make([]int, n)
	for i := range radices {
		radices[i] = 3
	}
	for i := 0; i < b.N; i++ {
		p, _ := New(radices)
		s, _ := p.MakeZeroState(n)
		h, _ := p.MakeGateDD(H3, n, nil, 0)
		s = p.Multiply(h, s)
		for target := 1; target < n; target++ {
			ones := make([]Control, target)
			twos := make([]Control, target)
			for c := 0; c < target; c++ {
				ones[c] = Control{Register: c, Type: 1}
				twos[c] = Control{Register: c, Type: 2}
			}
			cx, _ := p.MakeGateDD(X3, n, ones, target)
			cxd, _ := p.MakeGateDD(X3dag, n, twos, target)
			s = p.Multiply(cxd, p.Multiply(cx, s))
		}
	}
}
