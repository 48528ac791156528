// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// MakeZeroState returns the state |0…0⟩ over the first n registers. The
// returned edge owns one reference share.
func (p *MDD) MakeZeroState(n int) (Edge, error) {
	return p.makeZeroState(n, 0)
}

func (p *MDD) makeZeroState(n, start int) (Edge, error) {
	if n <= 0 || n+start > len(p.radices) {
		return vEdgeZero, errorf(ErrInvalidArgument,
			"state over %d registers requested, the package holds %d", n+start, len(p.radices))
	}
	p.maybeGC()
	first := vEdgeOne
	for v := start; v < start+n; v++ {
		edges := make([]Edge, p.radices[v])
		edges[0] = first
		for i := 1; i < p.radices[v]; i++ {
			edges[i] = vEdgeZero
		}
		first = p.makeNode(vectorKind, v, edges, false)
	}
	return p.IncRef(first), nil
}

// MakeBasisState returns the basis state |digits⟩ over the first n registers,
// with digits[i] the value of register i. The returned edge owns one
// reference share.
func (p *MDD) MakeBasisState(n int, digits []int) (Edge, error) {
	return p.makeBasisState(n, digits, 0)
}

func (p *MDD) makeBasisState(n int, digits []int, start int) (Edge, error) {
	if n <= 0 || n+start > len(p.radices) {
		return vEdgeZero, errorf(ErrInvalidArgument,
			"state over %d registers requested, the package holds %d", n+start, len(p.radices))
	}
	if len(digits) < n {
		return vEdgeZero, errorf(ErrInvalidArgument,
			"%d digits given for a basis state over %d registers", len(digits), n)
	}
	for i := 0; i < n; i++ {
		if digits[i] < 0 || digits[i] >= p.radices[start+i] {
			return vEdgeZero, errorf(ErrInvalidArgument,
				"digit %d out of range for register %d of radix %d", digits[i], start+i, p.radices[start+i])
		}
	}
	p.maybeGC()
	first := vEdgeOne
	for v := start; v < start+n; v++ {
		edges := make([]Edge, p.radices[v])
		for i := range edges {
			edges[i] = vEdgeZero
		}
		edges[digits[v-start]] = first
		first = p.makeNode(vectorKind, v, edges, false)
	}
	return p.IncRef(first), nil
}
