// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math"

// Spreading operations distribute a single excitation held on lines[0]
// uniformly over a group of registers, the building block of the layered
// W-state benchmarks. Each step moves a calibrated share of the remaining
// amplitude onto the next line with a controlled Givens rotation, then
// resets the source register with a controlled level swap, so that a state
// α·|1,0,…,0⟩ over the group becomes α/√g · Σᵢ |0,…,1ᵢ,…,0⟩.

// Spread2 spreads an excitation over two registers.
func (p *MDD) Spread2(lines []int, state Edge) (Edge, error) {
	if len(lines) != 2 {
		return vEdgeZero, errorf(ErrInvalidArgument, "Spread2 needs 2 lines, got %d", len(lines))
	}
	return p.spread(lines, state)
}

// Spread3 spreads an excitation over three registers.
func (p *MDD) Spread3(lines []int, state Edge) (Edge, error) {
	if len(lines) != 3 {
		return vEdgeZero, errorf(ErrInvalidArgument, "Spread3 needs 3 lines, got %d", len(lines))
	}
	return p.spread(lines, state)
}

// Spread5 spreads an excitation over five registers.
func (p *MDD) Spread5(lines []int, state Edge) (Edge, error) {
	if len(lines) != 5 {
		return vEdgeZero, errorf(ErrInvalidArgument, "Spread5 needs 5 lines, got %d", len(lines))
	}
	return p.spread(lines, state)
}

func (p *MDD) spread(lines []int, state Edge) (Edge, error) {
	n := len(p.radices)
	seen := make(map[int]bool, len(lines))
	for _, l := range lines {
		if l < 0 || l >= n {
			return vEdgeZero, errorf(ErrInvalidArgument, "line %d out of range", l)
		}
		if seen[l] {
			return vEdgeZero, errorf(ErrInvalidArgument, "line %d used twice", l)
		}
		seen[l] = true
	}
	g := len(lines)
	cur := state
	for i := 1; i < g; i++ {
		// the share moved at step i leaves every line with amplitude α/√g
		theta := 2 * math.Asin(math.Sqrt(1/float64(g-i+1)))
		rot, err := p.MakeGateDD(
			GivensMat(p.radices[lines[i]], 0, 1, theta, math.Pi/2),
			n, []Control{{Register: lines[0], Type: 1}}, lines[i])
		if err != nil {
			return vEdgeZero, err
		}
		next := p.Multiply(rot, cur)
		if cur != state {
			p.DecRef(cur)
		}
		p.DecRef(rot)
		cur = next

		swp, err := p.MakeGateDD(
			SwapMat(p.radices[lines[0]], 0, 1),
			n, []Control{{Register: lines[i], Type: 1}}, lines[0])
		if err != nil {
			return vEdgeZero, err
		}
		next = p.Multiply(swp, cur)
		p.DecRef(cur)
		p.DecRef(swp)
		cur = next
	}
	return cur, nil
}
