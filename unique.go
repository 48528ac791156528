// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// uniqueTable canonicalizes nodes of one flavor. It hashes the tuple
// (level, outgoing edges) — compared by pointer-and-weight-pointer equality —
// into a fixed array of bucket chains, and owns the chunked pool that nodes
// are allocated from. There is one table per flavor in each package instance.
type uniqueTable struct {
	kind      kind
	buckets   []*ddNode  // collision chains
	chunks    [][]ddNode // all nodes ever allocated
	chunkIt   int        // next unused node in the last chunk
	chunksize int
	avail     *ddNode // free list of reclaimed or discarded nodes
	count     int     // number of live nodes
	peak      int
	produced  int // total number of nodes ever installed
	lookups   int
	hits      int
	gcRuns    int
	reclaimed int
	gclimit   int
}

func newUniqueTable(k kind, chunksize, gclimit int) *uniqueTable {
	return &uniqueTable{
		kind:      k,
		buckets:   make([]*ddNode, _UTBUCKET),
		chunksize: chunksize,
		gclimit:   gclimit,
	}
}

// getNode returns an uninitialized node from the pool.
func (ut *uniqueTable) getNode() *ddNode {
	if ut.avail != nil {
		n := ut.avail
		ut.avail = n.next
		n.next = nil
		n.ref = 0
		n.flags = 0
		n.edges = n.edges[:0]
		return n
	}
	if len(ut.chunks) == 0 || ut.chunkIt == len(ut.chunks[len(ut.chunks)-1]) {
		ut.chunks = append(ut.chunks, make([]ddNode, ut.chunksize))
		ut.chunkIt = 0
	}
	n := &ut.chunks[len(ut.chunks)-1][ut.chunkIt]
	ut.chunkIt++
	n.kind = ut.kind
	return n
}

// returnNode puts back a node that normalization or a unique-table hit made
// redundant.
func (ut *uniqueTable) returnNode(n *ddNode) {
	n.next = ut.avail
	ut.avail = n
}

func (ut *uniqueTable) hash(n *ddNode) int {
	h := murmur64(uint64(n.v))
	for _, e := range n.edges {
		h = combineHash(h, edgehash(e))
	}
	return int(h & uint64(_UTBUCKET-1))
}

func equalNodes(p, q *ddNode) bool {
	if p.v != q.v || len(p.edges) != len(q.edges) {
		return false
	}
	for i := range p.edges {
		if p.edges[i] != q.edges[i] {
			return false
		}
	}
	return true
}

// lookup searches for a normalized match of the node behind e. It either
// returns an edge to an existing canonical node — putting the input node back
// into the pool unless keepNode is set — or installs the input node.
func (ut *uniqueTable) lookup(e Edge, keepNode bool) Edge {
	if e.node.isTerminal() {
		return e
	}
	ut.lookups++
	h := ut.hash(e.node)
	for q := ut.buckets[h]; q != nil; q = q.next {
		if equalNodes(q, e.node) {
			ut.hits++
			if !keepNode {
				ut.returnNode(e.node)
			}
			return Edge{q, e.w}
		}
	}
	e.node.next = ut.buckets[h]
	ut.buckets[h] = e.node
	ut.count++
	ut.produced++
	if ut.count > ut.peak {
		ut.peak = ut.count
	}
	return e
}

// gc sweeps every node with a zero reference count back to the free list.
// Children of live nodes are always protected, since a reference share on a
// node extends to its whole subgraph.
func (ut *uniqueTable) gc(force bool) int {
	if !force && ut.count < ut.gclimit {
		return 0
	}
	collected := 0
	for k := range ut.buckets {
		prev := &ut.buckets[k]
		for *prev != nil {
			n := *prev
			if n.ref == 0 {
				*prev = n.next
				n.next = ut.avail
				ut.avail = n
				collected++
			} else {
				prev = &n.next
			}
		}
	}
	ut.count -= collected
	ut.reclaimed += collected
	ut.gcRuns++
	if !force && collected < ut.count {
		ut.gclimit *= 2
	}
	return collected
}
