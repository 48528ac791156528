// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "sort"

// Control restricts a gate to the subspace where a register carries a given
// digit. Type must be smaller than the radix of the register.
type Control struct {
	Register int
	Type     int
}

// MakeGateDD builds the operator diagram of a local gate over the first n
// registers. The matrix mat must be the row-major flattening of a
// d×d complex matrix, with d the radix of the target register. Controls are
// consumed in increasing register order. The returned edge owns one
// reference share.
func (p *MDD) MakeGateDD(mat []complex128, n int, controls []Control, target int) (Edge, error) {
	return p.makeGateDD(mat, n, controls, target, 0)
}

func (p *MDD) makeGateDD(mat []complex128, n int, controls []Control, target int, start int) (Edge, error) {
	if n <= 0 || n+start > len(p.radices) {
		return mEdgeZero, errorf(ErrInvalidArgument,
			"gate over %d registers requested, the package holds %d", n+start, len(p.radices))
	}
	if target < start || target >= start+n {
		return mEdgeZero, errorf(ErrInvalidArgument, "target register %d out of range", target)
	}
	d := p.radices[target]
	if len(mat) != d*d {
		return mEdgeZero, errorf(ErrInvalidArgument,
			"matrix of %d entries applied to a register of radix %d", len(mat), d)
	}
	ctrl := append([]Control{}, controls...)
	sort.Slice(ctrl, func(i, j int) bool { return ctrl[i].Register < ctrl[j].Register })
	for _, c := range ctrl {
		if c.Register < start || c.Register >= start+n {
			return mEdgeZero, errorf(ErrInvalidArgument, "control register %d out of range", c.Register)
		}
		if c.Register == target {
			return mEdgeZero, errorf(ErrInvalidArgument, "register %d is both control and target", target)
		}
		if c.Type < 0 || c.Type >= p.radices[c.Register] {
			return mEdgeZero, errorf(ErrInvalidArgument,
				"control digit %d out of range for register %d of radix %d", c.Type, c.Register, p.radices[c.Register])
		}
	}
	p.maybeGC()

	// start from the interned entries of the local matrix
	em := make([]Edge, d*d)
	for i, v := range mat {
		if p.cn.approximatelyZeroV(v) {
			em[i] = mEdgeZero
		} else {
			em[i] = Edge{mterminal, p.cn.lookupV(real(v), imag(v))}
		}
	}

	ci := 0
	// wrap the levels below the target; on a control level the matrix entry
	// survives only on the controlled digit, the outer diagonal gets an
	// identity contribution on every other digit
	for z := start; z < target; z++ {
		dz := p.radices[z]
		isCtrl := ci < len(ctrl) && ctrl[ci].Register == z
		for i1 := 0; i1 < d*d; i1++ {
			row, col := i1/d, i1%d
			edges := make([]Edge, dz*dz)
			for i := range edges {
				edges[i] = mEdgeZero
			}
			for k := 0; k < dz; k++ {
				switch {
				case !isCtrl:
					edges[k*dz+k] = em[i1]
				case k == ctrl[ci].Type:
					edges[k*dz+k] = em[i1]
				case row == col:
					edges[k*dz+k] = p.makeIdent(start, z-1)
				}
			}
			em[i1] = p.makeNode(matrixKind, z, edges, false)
		}
		if isCtrl {
			ci++
		}
	}

	// the target level itself
	e := p.makeNode(matrixKind, target, em, false)

	// wrap the levels above the target; on a non-matching control digit the
	// whole lower block acts as the identity
	for z := target + 1; z < start+n; z++ {
		dz := p.radices[z]
		isCtrl := ci < len(ctrl) && ctrl[ci].Register == z
		edges := make([]Edge, dz*dz)
		for i := range edges {
			edges[i] = mEdgeZero
		}
		for k := 0; k < dz; k++ {
			switch {
			case !isCtrl:
				edges[k*dz+k] = e
			case k == ctrl[ci].Type:
				edges[k*dz+k] = e
			default:
				edges[k*dz+k] = p.makeIdent(start, z-1)
			}
		}
		e = p.makeNode(matrixKind, z, edges, false)
		if isCtrl {
			ci++
		}
	}
	return p.IncRef(e), nil
}

// MakeIdent returns the identity operator over the first n registers.
// Repeated queries are answered from a per-level cache.
func (p *MDD) MakeIdent(n int) Edge {
	if n <= 0 || n > len(p.radices) {
		p.seterror(ErrInvalidArgument, "identity over %d registers requested, the package holds %d", n, len(p.radices))
		return mEdgeZero
	}
	return p.IncRef(p.makeIdent(0, n-1))
}

// makeIdent builds the identity on levels [lo, hi]. An empty range yields the
// one edge.
func (p *MDD) makeIdent(lo, hi int) Edge {
	if hi < lo {
		return mEdgeOne
	}
	if lo == 0 && p.idTable[hi].node != nil {
		return p.idTable[hi]
	}
	if lo == 0 && hi >= 1 && p.idTable[hi-1].node != nil {
		below := p.idTable[hi-1]
		p.idTable[hi] = p.IncRef(p.makeNode(matrixKind, hi, p.diagEdges(hi, below), false))
		return p.idTable[hi]
	}
	e := p.makeNode(matrixKind, lo, p.diagEdges(lo, mEdgeOne), false)
	for v := lo + 1; v <= hi; v++ {
		e = p.makeNode(matrixKind, v, p.diagEdges(v, e), false)
	}
	if lo == 0 {
		p.idTable[hi] = p.IncRef(e)
	}
	return e
}

// diagEdges lays out a diagonal block at level v with every diagonal entry
// equal to e.
func (p *MDD) diagEdges(v int, e Edge) []Edge {
	d := p.radices[v]
	edges := make([]Edge, d*d)
	for i := range edges {
		edges[i] = mEdgeZero
	}
	for k := 0; k < d; k++ {
		edges[k*d+k] = e
	}
	return edges
}
