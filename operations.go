// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"log"
	"unsafe"
)

// The recursive operations all follow the same discipline: strip the top
// weights where the operation factorizes, consult the compute table keyed on
// what remains, recurse slot by slot, and reassemble through makeNode so that
// every edge leaving the package is normalized. Intermediate weights travel
// as plain values and are interned exactly once, on the way out.

func conj(v complex128) complex128 {
	return complex(real(v), -imag(v))
}

// Add returns the sum of two decision diagrams of the same flavor, aligned at
// their top level. The returned edge owns one reference share.
func (p *MDD) Add(x, y Edge) Edge {
	if p.error != nil {
		return zeroEdge(x.node.kind)
	}
	if x.node.kind != y.node.kind {
		p.seterror(ErrInvalidArgument, "cannot add a vector and a matrix")
		return zeroEdge(x.node.kind)
	}
	p.maybeGC()
	r := p.add2(cachedEdge{x.node, cval(x.w)}, cachedEdge{y.node, cval(y.w)})
	return p.IncRef(p.cachedToEdge(r))
}

func (p *MDD) add2(x, y cachedEdge) cachedEdge {
	k := x.node.kind
	if p.cn.approximatelyZeroV(x.w) {
		if p.cn.approximatelyZeroV(y.w) {
			return cachedEdge{terminal(k), 0}
		}
		return y
	}
	if p.cn.approximatelyZeroV(y.w) {
		return x
	}
	// addition is commutative; order operands by address so that both call
	// orders hit the same compute-table entry
	if uintptr(unsafe.Pointer(x.node)) > uintptr(unsafe.Pointer(y.node)) {
		x, y = y, x
	}
	if x.node == y.node {
		s := x.w + y.w
		if p.cn.approximatelyZeroV(s) {
			return cachedEdge{terminal(k), 0}
		}
		return cachedEdge{x.node, s}
	}
	tab := p.addTable(k)
	if r, ok := tab.lookup(p.cn, x.node, y.node, x.w, y.w); ok {
		return r
	}
	v := x.node.v
	if y.node.v > v {
		v = y.node.v
	}
	width := p.edgeWidth(k, int(v))
	edges := make([]Edge, width)
	for i := 0; i < width; i++ {
		e1 := x
		if !x.node.isTerminal() && x.node.v == v {
			c := x.node.edges[i]
			e1 = cachedEdge{c.node, x.w * cval(c.w)}
		}
		e2 := y
		if !y.node.isTerminal() && y.node.v == v {
			c := y.node.edges[i]
			e2 = cachedEdge{c.node, y.w * cval(c.w)}
		}
		r := p.add2(e1, e2)
		if p.cn.approximatelyZeroV(r.w) {
			edges[i] = zeroEdge(k)
		} else {
			edges[i] = Edge{r.node, p.cn.getTemporary(real(r.w), imag(r.w))}
		}
	}
	e := p.makeNode(k, int(v), edges, true)
	res := cachedEdge{e.node, cval(e.w)}
	tab.insert(x.node, y.node, x.w, y.w, res)
	return res
}

// Multiply returns the product of a matrix diagram with a vector or matrix
// diagram. The returned edge owns one reference share.
func (p *MDD) Multiply(x, y Edge) Edge {
	if p.error != nil {
		return zeroEdge(y.node.kind)
	}
	if x.node.kind != matrixKind {
		p.seterror(ErrInvalidArgument, "left operand of a product must be a matrix")
		return zeroEdge(y.node.kind)
	}
	p.maybeGC()
	v := x.node.v
	if y.node.v > v {
		v = y.node.v
	}
	r := p.multiply2(x, y, int(v))
	return p.IncRef(p.cachedToEdge(r))
}

func (p *MDD) multiply2(x, y Edge, v int) cachedEdge {
	yk := y.node.kind
	if p.cn.approximatelyZero(x.w) || p.cn.approximatelyZero(y.w) {
		return cachedEdge{terminal(yk), 0}
	}
	if v < 0 {
		return cachedEdge{terminal(yk), cval(x.w) * cval(y.w)}
	}
	if _DEBUG && (int(x.node.v) != v || int(y.node.v) != v) {
		log.Panicf("misaligned product at level %d (operands at %d and %d)", v, x.node.v, y.node.v)
	}
	xw := cval(x.w)
	yw := cval(y.w)
	tab := p.matVecMult
	if yk == matrixKind {
		tab = p.matMatMult
	}
	if r, ok := tab.lookup(p.cn, x.node, y.node, 1, 1); ok {
		return cachedEdge{r.node, r.w * xw * yw}
	}
	var res cachedEdge
	d := p.radices[v]
	switch {
	case x.node.identity():
		res = cachedEdge{y.node, 1}
	case yk == vectorKind:
		edges := make([]Edge, d)
		for i := 0; i < d; i++ {
			acc := cachedEdge{vterminal, 0}
			for j := 0; j < d; j++ {
				part := p.multiply2(x.node.edges[i*d+j], y.node.edges[j], v-1)
				acc = p.add2(acc, part)
			}
			if p.cn.approximatelyZeroV(acc.w) {
				edges[i] = vEdgeZero
			} else {
				edges[i] = Edge{acc.node, p.cn.getTemporary(real(acc.w), imag(acc.w))}
			}
		}
		e := p.makeNode(vectorKind, v, edges, true)
		res = cachedEdge{e.node, cval(e.w)}
	default:
		edges := make([]Edge, d*d)
		for i := 0; i < d; i++ {
			for c := 0; c < d; c++ {
				acc := cachedEdge{mterminal, 0}
				for j := 0; j < d; j++ {
					part := p.multiply2(x.node.edges[i*d+j], y.node.edges[j*d+c], v-1)
					acc = p.add2(acc, part)
				}
				if p.cn.approximatelyZeroV(acc.w) {
					edges[i*d+c] = mEdgeZero
				} else {
					edges[i*d+c] = Edge{acc.node, p.cn.getTemporary(real(acc.w), imag(acc.w))}
				}
			}
		}
		e := p.makeNode(matrixKind, v, edges, true)
		res = cachedEdge{e.node, cval(e.w)}
	}
	tab.insert(x.node, y.node, 1, 1, res)
	return cachedEdge{res.node, res.w * xw * yw}
}

// Kronecker returns the tensor product of two diagrams of the same flavor,
// with y occupying the least significant levels. The returned edge owns one
// reference share.
func (p *MDD) Kronecker(x, y Edge) Edge {
	if p.error != nil {
		return zeroEdge(x.node.kind)
	}
	if x.node.kind != y.node.kind {
		p.seterror(ErrInvalidArgument, "cannot build the Kronecker product of a vector and a matrix")
		return zeroEdge(x.node.kind)
	}
	p.maybeGC()
	h := int(y.node.v) + 1
	r := p.kronecker2(Edge{x.node, cone}, y.node, h)
	w := cval(r.w) * cval(x.w) * cval(y.w)
	if p.cn.approximatelyZeroV(w) {
		return zeroEdge(x.node.kind)
	}
	return p.IncRef(Edge{r.node, p.cn.lookupV(real(w), imag(w))})
}

// kronecker2 lifts every node of x by h levels and hangs the node yn under
// the leaves. Weights of x travel with the recursion; the weights of the
// factors themselves are folded in by the caller.
func (p *MDD) kronecker2(x Edge, yn *ddNode, h int) Edge {
	k := x.node.kind
	if p.cn.approximatelyZero(x.w) {
		return zeroEdge(k)
	}
	if x.node.isTerminal() {
		return Edge{yn, x.w}
	}
	tab := p.kronTable(k)
	if r, ok := tab.lookup(p.cn, x.node, yn, 1, 1); ok {
		w := r.w * cval(x.w)
		if p.cn.approximatelyZeroV(w) {
			return zeroEdge(k)
		}
		return Edge{r.node, p.cn.lookupV(real(w), imag(w))}
	}
	edges := make([]Edge, len(x.node.edges))
	for i, c := range x.node.edges {
		edges[i] = p.kronecker2(c, yn, h)
	}
	e := p.makeNode(k, int(x.node.v)+h, edges, false)
	tab.insert(x.node, yn, 1, 1, cachedEdge{e.node, cval(e.w)})
	w := cval(e.w) * cval(x.w)
	if p.cn.approximatelyZeroV(w) {
		return zeroEdge(k)
	}
	return Edge{e.node, p.cn.lookupV(real(w), imag(w))}
}

// Transpose returns the transpose of a matrix diagram. Symmetric nodes are
// returned unchanged. The returned edge owns one reference share.
func (p *MDD) Transpose(e Edge) Edge {
	if p.error != nil {
		return mEdgeZero
	}
	if e.node.kind != matrixKind {
		p.seterror(ErrInvalidArgument, "cannot transpose a vector")
		return mEdgeZero
	}
	p.maybeGC()
	return p.IncRef(p.transpose(e))
}

func (p *MDD) transpose(e Edge) Edge {
	if e.node == nil || e.node.isTerminal() || e.node.symmetric() {
		return e
	}
	if r, ok := p.transposeTable.lookup(e); ok {
		return r
	}
	d := p.radices[e.node.v]
	edges := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			edges[i*d+j] = p.transpose(e.node.edges[j*d+i])
		}
	}
	r := p.makeNode(matrixKind, int(e.node.v), edges, false)
	w := cval(r.w) * cval(e.w)
	r.w = p.cn.lookupV(real(w), imag(w))
	p.transposeTable.insert(e, r)
	return r
}

// ConjugateTranspose returns the conjugate transpose of a matrix diagram.
// The returned edge owns one reference share.
func (p *MDD) ConjugateTranspose(e Edge) Edge {
	if p.error != nil {
		return mEdgeZero
	}
	if e.node.kind != matrixKind {
		p.seterror(ErrInvalidArgument, "cannot conjugate-transpose a vector")
		return mEdgeZero
	}
	p.maybeGC()
	return p.IncRef(p.conjTranspose(e))
}

func (p *MDD) conjTranspose(e Edge) Edge {
	if e.node.isTerminal() {
		w := conj(cval(e.w))
		return Edge{e.node, p.cn.lookupV(real(w), imag(w))}
	}
	if r, ok := p.conjTransposeTable.lookup(e); ok {
		return r
	}
	d := p.radices[e.node.v]
	edges := make([]Edge, d*d)
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			edges[i*d+j] = p.conjTranspose(e.node.edges[j*d+i])
		}
	}
	r := p.makeNode(matrixKind, int(e.node.v), edges, false)
	w := cval(r.w) * conj(cval(e.w))
	r.w = p.cn.lookupV(real(w), imag(w))
	p.conjTransposeTable.insert(e, r)
	return r
}

// InnerProduct returns ⟨x|y⟩, descending both state vectors simultaneously.
func (p *MDD) InnerProduct(x, y Edge) complex128 {
	if p.error != nil {
		return 0
	}
	if x.node.kind != vectorKind || y.node.kind != vectorKind {
		p.seterror(ErrInvalidArgument, "inner products are defined on state vectors")
		return 0
	}
	p.maybeGC()
	levels := int(x.node.v) + 1
	if int(y.node.v)+1 > levels {
		levels = int(y.node.v) + 1
	}
	return p.innerProduct(x, y, levels)
}

func (p *MDD) innerProduct(x, y Edge, levels int) complex128 {
	if p.cn.approximatelyZero(x.w) || p.cn.approximatelyZero(y.w) {
		return 0
	}
	xw := conj(cval(x.w))
	yw := cval(y.w)
	if levels == 0 {
		return xw * yw
	}
	v := levels - 1
	if int(x.node.v) != v || int(y.node.v) != v {
		// operands of different heights share no basis state
		return 0
	}
	if r, ok := p.innerProd.lookup(p.cn, x.node, y.node, 1, 1); ok {
		return xw * yw * r.w
	}
	var sum complex128
	d := p.radices[v]
	for i := 0; i < d; i++ {
		sum += p.innerProduct(x.node.edges[i], y.node.edges[i], v)
	}
	p.innerProd.insert(x.node, y.node, 1, 1, cachedEdge{nil, sum})
	return xw * yw * sum
}

// Fidelity returns |⟨x|y⟩|².
func (p *MDD) Fidelity(x, y Edge) float64 {
	f := p.InnerProduct(x, y)
	return real(f)*real(f) + imag(f)*imag(f)
}
