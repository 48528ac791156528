// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWStateBySpreading prepares the W state over fifteen mixed-dimensional
// registers, layered as three qutrit-led groups of five: a Spread3 over the
// group leaders followed by one Spread5 inside each group, starting from the
// excitation |1, 0, …, 0⟩. The result is uniform over the fifteen basis
// states of Hamming weight one.
func TestWStateBySpreading(t *testing.T) {
	radices := make([]int, 15)
	groups := [3][]int{
		{0, 1, 2, 3, 4},
		{5, 6, 7, 8, 9},
		{10, 11, 12, 13, 14},
	}
	leaders := []int{0, 5, 10}
	for i := range radices {
		radices[i] = 5
	}
	for _, l := range leaders {
		radices[l] = 3
	}
	p, err := New(radices)
	require.NoError(t, err)

	digits := make([]int, 15)
	digits[0] = 1
	s, err := p.MakeBasisState(15, digits)
	require.NoError(t, err)

	s, err = p.Spread3(leaders, s)
	require.NoError(t, err)
	for _, g := range groups {
		s, err = p.Spread5(g, s)
		require.NoError(t, err)
	}
	require.False(t, p.Errored())

	want := 1 / math.Sqrt(15)
	total := 0.0
	for reg := 0; reg < 15; reg++ {
		for i := range digits {
			digits[i] = 0
		}
		digits[reg] = 1
		a, err := p.GetValueByIndex(s, digits)
		require.NoError(t, err)
		require.InDelta(t, want, real(a), 1e-6, "amplitude of the excitation on register %d", reg)
		require.InDelta(t, 0.0, imag(a), 1e-6)
		total += real(a) * real(a)
	}
	require.InDelta(t, 1.0, total, 1e-6)

	// nothing lives outside the Hamming-weight-one subspace
	for i := range digits {
		digits[i] = 0
	}
	digits[1] = 1
	digits[7] = 1
	a, err := p.GetValueByIndex(s, digits)
	require.NoError(t, err)
	require.InDelta(t, 0.0, real(a)*real(a)+imag(a)*imag(a), 1e-9)
}

// TestSpreadPair checks the elementary two-register spread against the exact
// amplitudes of a balanced pair.
func TestSpreadPair(t *testing.T) {
	p, err := New([]int{2, 2})
	require.NoError(t, err)
	s, err := p.MakeBasisState(2, []int{1, 0})
	require.NoError(t, err)
	s, err = p.Spread2([]int{0, 1}, s)
	require.NoError(t, err)

	a10, _ := p.GetValueByIndex(s, []int{1, 0})
	a01, _ := p.GetValueByIndex(s, []int{0, 1})
	a00, _ := p.GetValueByIndex(s, []int{0, 0})
	require.InDelta(t, 1/math.Sqrt2, real(a10), 1e-9)
	require.InDelta(t, 1/math.Sqrt2, real(a01), 1e-9)
	require.Equal(t, complex128(0), a00)

	require.ErrorIs(t, errOnly(p.Spread2([]int{0}, s)), ErrInvalidArgument)
	require.ErrorIs(t, errOnly(p.Spread3([]int{0, 0, 1}, s)), ErrInvalidArgument)
}

func errOnly(_ Edge, err error) error {
	return err
}
