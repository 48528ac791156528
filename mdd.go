// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "log"

// MDD is a package instance: it owns a complex table, one unique table per
// node flavor, the operation caches and the identity cache. Edges handed out
// by one instance must never be mixed into the operations of another.
type MDD struct {
	radices []int // local dimension of each register, index 0 is least significant

	cn      *complexNumbers
	vUnique *uniqueTable
	mUnique *uniqueTable

	vectorAdd  *computeTable
	matrixAdd  *computeTable
	matVecMult *computeTable
	matMatMult *computeTable
	vectorKron *computeTable
	matrixKron *computeTable
	innerProd  *computeTable

	transposeTable     *unaryComputeTable
	conjTransposeTable *unaryComputeTable

	idTable []Edge // per-level cache for makeIdent

	error error
}

// New returns a new MDD over the given registers, where radices[i] is the
// local dimension of register i and index 0 is the least significant
// register. Every radix must be at least 2.
//
// It is possible to set optional (configuration) parameters, such as the
// interning tolerance (Tolerance) or the size of the operation caches
// (Cachesize), using configs functions.
func New(radices []int, options ...func(*configs)) (*MDD, error) {
	if len(radices) == 0 {
		return nil, errorf(ErrInvalidArgument, "empty radix vector")
	}
	if len(radices) > _MAXREGISTERS {
		return nil, errorf(ErrCapacityExceeded, "%d registers requested, at most %d supported", len(radices), _MAXREGISTERS)
	}
	for i, r := range radices {
		if r < 2 {
			return nil, errorf(ErrInvalidArgument, "radix %d of register %d is smaller than 2", r, i)
		}
	}
	config := makeconfigs()
	for _, f := range options {
		f(config)
	}
	p := &MDD{
		radices: append([]int{}, radices...),
		cn:      newComplexNumbers(config.tolerance, config.ctgclimit),
		vUnique: newUniqueTable(vectorKind, config.chunksize, config.utgclimit),
		mUnique: newUniqueTable(matrixKind, config.chunksize, config.utgclimit),
		idTable: make([]Edge, len(radices)),
	}
	size := primeGte(config.cachesize)
	p.vectorAdd = newComputeTable(size)
	p.matrixAdd = newComputeTable(size)
	p.matVecMult = newComputeTable(size)
	p.matMatMult = newComputeTable(size)
	p.vectorKron = newComputeTable(size)
	p.matrixKron = newComputeTable(size)
	p.innerProd = newComputeTable(size)
	p.transposeTable = newUnaryComputeTable(size)
	p.conjTransposeTable = newUnaryComputeTable(size)
	if _LOGLEVEL > 0 {
		log.Printf("new MDD with %d registers\n", len(radices))
	}
	return p, nil
}

// Qregisters returns the number of registers of the package.
func (p *MDD) Qregisters() int {
	return len(p.radices)
}

// Radices returns a copy of the radix vector.
func (p *MDD) Radices() []int {
	return append([]int{}, p.radices...)
}

// Tolerance returns the interning tolerance of the complex table.
func (p *MDD) Tolerance() float64 {
	return p.cn.table.tolerance()
}

// Resize extends the package with extra registers of the given radices. A
// package never shrinks; edges obtained before the call remain valid.
func (p *MDD) Resize(radices ...int) error {
	if len(p.radices)+len(radices) > _MAXREGISTERS {
		return errorf(ErrCapacityExceeded, "%d registers requested, at most %d supported", len(p.radices)+len(radices), _MAXREGISTERS)
	}
	for i, r := range radices {
		if r < 2 {
			return errorf(ErrInvalidArgument, "radix %d of register %d is smaller than 2", r, len(p.radices)+i)
		}
	}
	p.radices = append(p.radices, radices...)
	p.idTable = append(p.idTable, make([]Edge, len(radices))...)
	return nil
}

func (p *MDD) table(k kind) *uniqueTable {
	if k == vectorKind {
		return p.vUnique
	}
	return p.mUnique
}

func (p *MDD) addTable(k kind) *computeTable {
	if k == vectorKind {
		return p.vectorAdd
	}
	return p.matrixAdd
}

func (p *MDD) kronTable(k kind) *computeTable {
	if k == vectorKind {
		return p.vectorKron
	}
	return p.matrixKron
}

// edgeWidth is the number of outgoing edges of a node of flavor k at level v.
func (p *MDD) edgeWidth(k kind, v int) int {
	d := p.radices[v]
	if k == vectorKind {
		return d
	}
	return d * d
}

// makeNode assembles a normalized, canonical node from a freshly composed
// edge list and returns an edge to it. Children must sit at level v-1 or be
// terminal. With cached set, the outgoing weights are scratch values from the
// complex cache and are consumed by normalization.
func (p *MDD) makeNode(k kind, v int, edges []Edge, cached bool) Edge {
	if _DEBUG {
		for _, e := range edges {
			if !e.node.isTerminal() && e.node.v != int32(v-1) {
				log.Panicf("child at level %d under a node at level %d", e.node.v, v)
			}
		}
	}
	ut := p.table(k)
	n := ut.getNode()
	n.v = int32(v)
	n.edges = append(n.edges, edges...)
	var e Edge
	if k == vectorKind {
		e = p.normalizeVector(Edge{n, cone}, cached)
	} else {
		e = p.normalizeMatrix(Edge{n, cone}, cached)
	}
	if e.node != n {
		// normalization collapsed the node away
		ut.returnNode(n)
		return e
	}
	le := ut.lookup(e, false)
	if k == matrixKind && le.node == e.node {
		p.checkSpecialMatrices(le.node)
	}
	return le
}

// checkSpecialMatrices recomputes the symmetric and identity flags of a
// freshly installed matrix node. Both checks compare edges by identity, never
// by value.
func (p *MDD) checkSpecialMatrices(n *ddNode) {
	if n.isTerminal() {
		return
	}
	n.flags = 0
	d := p.radices[n.v]
	for i := 0; i < d; i++ {
		if !n.edges[i*d+i].node.symmetric() {
			return
		}
	}
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			if p.transpose(n.edges[i*d+j]) != n.edges[j*d+i] {
				return
			}
		}
	}
	n.flags |= flagSymmetric
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			if i == j {
				if !n.edges[i*d+i].node.identity() || n.edges[i*d+i].w != cone {
					return
				}
			} else if n.edges[i*d+j] != mEdgeZero {
				return
			}
		}
	}
	n.flags |= flagIdentity
}

// maybeGC runs a collection when allocation pressure builds up. It is called
// at public operation boundaries only, so no in-flight node can be swept.
func (p *MDD) maybeGC() {
	if p.vUnique.count > p.vUnique.gclimit || p.mUnique.count > p.mUnique.gclimit ||
		p.cn.table.count > p.cn.table.gclimit {
		p.GarbageCollect(false)
	}
}

// cachedToEdge promotes the result of a recursive computation into an edge
// with an interned weight.
func (p *MDD) cachedToEdge(c cachedEdge) Edge {
	if p.cn.approximatelyZeroV(c.w) {
		return zeroEdge(c.node.kind)
	}
	return Edge{c.node, p.cn.lookupV(real(c.w), imag(c.w))}
}
