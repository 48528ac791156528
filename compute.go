// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"fmt"
	"unsafe"
)

// Compute tables memoize the recursive operations. Entries are non-owning
// hints keyed on node pointers and weight values: they never protect a node
// from collection, which is why every garbage pass resets them wholesale.

type computeEntry struct {
	leftNode, rightNode *ddNode
	leftW, rightW       complex128
	resNode             *ddNode
	resW                complex128
	valid               bool
}

type computeTable struct {
	table   []computeEntry
	lookups int
	hits    int
}

func newComputeTable(size int) *computeTable {
	return &computeTable{table: make([]computeEntry, size)}
}

func (ct *computeTable) slot(l, r *ddNode, lw, rw complex128) int {
	h := combineHash(nodehash(l), nodehash(r))
	h = combineHash(h, complexhash(lw))
	h = combineHash(h, complexhash(rw))
	return int(h % uint64(len(ct.table)))
}

func (ct *computeTable) lookup(cn *complexNumbers, l, r *ddNode, lw, rw complex128) (cachedEdge, bool) {
	ct.lookups++
	e := &ct.table[ct.slot(l, r, lw, rw)]
	if e.valid && e.leftNode == l && e.rightNode == r &&
		cn.approximatelyEqualV(e.leftW, lw) && cn.approximatelyEqualV(e.rightW, rw) {
		ct.hits++
		return cachedEdge{e.resNode, e.resW}, true
	}
	return cachedEdge{}, false
}

func (ct *computeTable) insert(l, r *ddNode, lw, rw complex128, res cachedEdge) {
	ct.table[ct.slot(l, r, lw, rw)] = computeEntry{
		leftNode:  l,
		rightNode: r,
		leftW:     lw,
		rightW:    rw,
		resNode:   res.node,
		resW:      res.w,
		valid:     true,
	}
}

func (ct *computeTable) reset() {
	for k := range ct.table {
		ct.table[k].valid = false
	}
}

func (ct computeTable) String() string {
	res := fmt.Sprintf("== Compute cache %d (%s)\n", len(ct.table), humanSize(len(ct.table), unsafe.Sizeof(computeEntry{})))
	res += fmt.Sprintf(" Hits: %d (%.1f%%)\n", ct.hits, (float64(ct.hits)*100)/float64(ct.lookups))
	res += fmt.Sprintf(" Miss: %d\n", ct.lookups-ct.hits)
	return res
}

// unaryComputeTable memoizes transposition. Keys are full edges (node and
// weight pointers) and results are installed edges.

type unaryEntry struct {
	in    Edge
	res   Edge
	valid bool
}

type unaryComputeTable struct {
	table   []unaryEntry
	lookups int
	hits    int
}

func newUnaryComputeTable(size int) *unaryComputeTable {
	return &unaryComputeTable{table: make([]unaryEntry, size)}
}

func (ct *unaryComputeTable) slot(e Edge) int {
	return int(edgehash(e) % uint64(len(ct.table)))
}

func (ct *unaryComputeTable) lookup(in Edge) (Edge, bool) {
	ct.lookups++
	e := &ct.table[ct.slot(in)]
	if e.valid && e.in == in {
		ct.hits++
		return e.res, true
	}
	return Edge{}, false
}

func (ct *unaryComputeTable) insert(in, res Edge) {
	ct.table[ct.slot(in)] = unaryEntry{in: in, res: res, valid: true}
}

func (ct *unaryComputeTable) reset() {
	for k := range ct.table {
		ct.table[k].valid = false
	}
}
