// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "log"

// Reference counting is recursive on the first share: when a node goes from
// zero to one reference, a share is taken on every outgoing edge, so that a
// single count on the root protects a whole diagram. Terminals and saturated
// counters are never touched.

// IncRef takes a reference share on the diagram behind e and returns e, so
// that calls can be chained. Every edge returned by a public operation
// already owns one share; IncRef is only needed when a caller wants to hold
// several shares of the same edge.
func (p *MDD) IncRef(e Edge) Edge {
	incRefComplex(e.w)
	p.incRefNode(e.node)
	return e
}

// DecRef releases a reference share on the diagram behind e. Nodes whose
// count drops to zero become candidates for the next garbage pass.
func (p *MDD) DecRef(e Edge) {
	decRefComplex(e.w)
	p.decRefNode(e.node)
}

func (p *MDD) incRefNode(n *ddNode) {
	if n.isTerminal() || n.ref == _MAXREFCOUNT {
		return
	}
	n.ref++
	if n.ref == 1 {
		for _, c := range n.edges {
			incRefComplex(c.w)
			p.incRefNode(c.node)
		}
	}
}

func (p *MDD) decRefNode(n *ddNode) {
	if n.isTerminal() || n.ref == _MAXREFCOUNT {
		return
	}
	if _DEBUG && n.ref == 0 {
		log.Panicf("unbalanced DecRef on a node at level %d", n.v)
	}
	n.ref--
	if n.ref == 0 {
		for _, c := range n.edges {
			decRefComplex(c.w)
			p.decRefNode(c.node)
		}
	}
}

// GarbageCollect reclaims every node and complex-table entry whose reference
// count is zero. When force is false the pass only sweeps above the
// configured occupancy limits. Since compute-table entries are keyed on
// possibly-freed pointers, every pass invalidates all of them. Returns true
// if a sweep actually ran.
//
// Collection also runs on its own at public operation boundaries when
// allocation pressure builds up; it never runs in the middle of a recursion.
func (p *MDD) GarbageCollect(force bool) bool {
	if !force &&
		p.vUnique.count < p.vUnique.gclimit &&
		p.mUnique.count < p.mUnique.gclimit &&
		p.cn.table.count < p.cn.table.gclimit {
		return false
	}
	if _LOGLEVEL > 0 {
		log.Printf("starting GC; %d vnodes, %d mnodes, %d entries\n",
			p.vUnique.count, p.mUnique.count, p.cn.table.count)
	}
	nv := p.vUnique.gc(force)
	nm := p.mUnique.gc(force)
	ne := p.cn.table.gc(force)
	p.vectorAdd.reset()
	p.matrixAdd.reset()
	p.matVecMult.reset()
	p.matMatMult.reset()
	p.vectorKron.reset()
	p.matrixKron.reset()
	p.innerProd.reset()
	p.transposeTable.reset()
	p.conjTransposeTable.reset()
	if _LOGLEVEL > 0 {
		log.Printf("end GC; reclaimed %d vnodes, %d mnodes, %d entries\n", nv, nm, ne)
	}
	return true
}
