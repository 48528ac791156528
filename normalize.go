// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math"

// Edge normalization is what makes pointer equality of edges coincide with
// semantic equality. Vector nodes carry their L2 norm entirely on the
// incoming edge; matrix nodes carry the weight of their largest entry, so
// that the first outgoing edge of maximal magnitude is exactly one. The two
// rules are not interchangeable.
//
// When cached is set the outgoing weights are scratch values owned by the
// complex cache; normalization releases them and hands out table-interned
// weights only.

func (p *MDD) normalizeVector(e Edge, cached bool) Edge {
	n := e.node
	zero := make([]bool, len(n.edges))
	allZero := true
	nonZero := -1
	nonZeroCount := 0
	for i, c := range n.edges {
		zero[i] = p.cn.approximatelyZero(c.w)
		if zero[i] {
			if cached && c.w != czero {
				p.cn.returnToCache(c.w)
			}
			if c.w != czero {
				n.edges[i] = vEdgeZero
			}
			continue
		}
		allZero = false
		if nonZero == -1 {
			nonZero = i
		}
		nonZeroCount++
	}
	if allZero {
		return vEdgeZero
	}
	if nonZeroCount == 1 {
		w := n.edges[nonZero].w
		in := p.cn.lookup(w)
		if cached && w != cone {
			p.cn.returnToCache(w)
		}
		n.edges[nonZero].w = cone
		return Edge{n, in}
	}
	sum := 0.0
	for i := range n.edges {
		if !zero[i] {
			sum += mag2(n.edges[i].w)
		}
	}
	factor := math.Sqrt(sum)
	topv := cval(e.w) * complex(factor, 0)
	if math.IsNaN(real(topv)) || math.IsNaN(imag(topv)) || math.IsInf(real(topv), 0) || math.IsInf(imag(topv), 0) {
		p.seterror(ErrNumericInstability, "non-finite norm while normalizing a vector node at level %d", n.v)
		return vEdgeZero
	}
	top := p.cn.lookupV(real(topv), imag(topv))
	if top == czero {
		return vEdgeZero
	}
	for i := range n.edges {
		if zero[i] {
			continue
		}
		w := n.edges[i].w
		q := cval(w) / cval(top)
		if cached && w != cone {
			p.cn.returnToCache(w)
		}
		switch {
		case p.cn.approximatelyZeroV(q):
			n.edges[i] = vEdgeZero
		case p.cn.approximatelyOneV(q):
			n.edges[i].w = cone
		default:
			n.edges[i].w = p.cn.lookupV(real(q), imag(q))
		}
	}
	return Edge{n, top}
}

func (p *MDD) normalizeMatrix(e Edge, cached bool) Edge {
	n := e.node
	tol := p.cn.table.tol
	zero := make([]bool, len(n.edges))
	for i, c := range n.edges {
		zero[i] = p.cn.approximatelyZero(c.w)
		if zero[i] {
			if cached && c.w != czero {
				p.cn.returnToCache(c.w)
			}
			if c.w != czero {
				n.edges[i] = mEdgeZero
			}
		}
	}
	// the first outgoing edge of strictly maximal magnitude wins
	argmax := -1
	maxMag := 0.0
	var maxW complex128
	for i := range n.edges {
		if zero[i] {
			continue
		}
		m := mag2(n.edges[i].w)
		if argmax == -1 || m-maxMag > tol {
			argmax = i
			maxMag = m
			maxW = cval(n.edges[i].w)
		}
	}
	if argmax == -1 {
		return mEdgeZero
	}
	topv := cval(e.w) * maxW
	if math.IsNaN(real(topv)) || math.IsNaN(imag(topv)) || math.IsInf(real(topv), 0) || math.IsInf(imag(topv), 0) {
		p.seterror(ErrNumericInstability, "non-finite factor while normalizing a matrix node at level %d", n.v)
		return mEdgeZero
	}
	top := p.cn.lookupV(real(topv), imag(topv))
	if top == czero {
		return mEdgeZero
	}
	for i := range n.edges {
		if zero[i] {
			continue
		}
		w := n.edges[i].w
		if i == argmax {
			if cached && w != cone {
				p.cn.returnToCache(w)
			}
			n.edges[i].w = cone
			continue
		}
		q := cval(w) / maxW
		if cached && w != cone {
			p.cn.returnToCache(w)
		}
		switch {
		case p.cn.approximatelyZeroV(q):
			n.edges[i] = mEdgeZero
		case p.cn.approximatelyOneV(q):
			n.edges[i].w = cone
		default:
			n.edges[i].w = p.cn.lookupV(real(q), imag(q))
		}
	}
	return Edge{n, top}
}
