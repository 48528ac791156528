// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

//********************************************************************************************

func TestNewChecksArguments(t *testing.T) {
	_, err := New([]int{2, 1, 3})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = New(nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
	p, err := New([]int{2, 3, 5})
	require.NoError(t, err)
	require.Equal(t, 3, p.Qregisters())
	require.Equal(t, []int{2, 3, 5}, p.Radices())

	require.NoError(t, p.Resize(4))
	require.Equal(t, []int{2, 3, 5, 4}, p.Radices())
	require.ErrorIs(t, p.Resize(1), ErrInvalidArgument)
}

func TestBasisStatePath(t *testing.T) {
	p, err := New([]int{3, 2, 5, 4})
	require.NoError(t, err)
	digits := []int{2, 1, 4, 0}
	e, err := p.MakeBasisState(4, digits)
	require.NoError(t, err)
	v, err := p.GetValueByIndex(e, digits)
	require.NoError(t, err)
	require.Equal(t, complex128(1), v)

	// every other basis state has amplitude zero
	other := []int{2, 1, 4, 1}
	v, err = p.GetValueByIndex(e, other)
	require.NoError(t, err)
	require.Equal(t, complex128(0), v)
}

func TestCanonicalization(t *testing.T) {
	p, _ := New([]int{3, 3, 3})
	z1, _ := p.MakeZeroState(3)
	z2, _ := p.MakeZeroState(3)
	require.True(t, z1 == z2, "equivalent constructions must return identical edges")

	b1, _ := p.MakeBasisState(3, []int{1, 2, 0})
	b2, _ := p.MakeBasisState(3, []int{1, 2, 0})
	require.True(t, b1 == b2)

	g1, _ := p.MakeGateDD(H3, 3, nil, 1)
	g2, _ := p.MakeGateDD(H3, 3, nil, 1)
	require.True(t, g1 == g2)

	// a zero state assembled with Kronecker products collapses onto the
	// canonical nodes built by the constructor
	s1, _ := p.MakeZeroState(1)
	s12 := p.Kronecker(s1, s1)
	s123 := p.Kronecker(s1, s12)
	require.True(t, s123 == z1)
}

func TestAddLaws(t *testing.T) {
	p, _ := New([]int{3})
	zero, _ := p.MakeZeroState(1)
	h, _ := p.MakeGateDD(H3, 1, nil, 0)
	a := p.Multiply(h, zero)
	b, _ := p.MakeBasisState(1, []int{2})

	require.True(t, p.Add(a, b) == p.Add(b, a), "addition must be commutative up to edge identity")
	require.True(t, p.Add(a, vEdgeZero) == a, "zero must be neutral for addition")
	require.False(t, p.Errored())
}

func TestMultiplyIdentity(t *testing.T) {
	p, _ := New([]int{2, 2, 3})
	id := p.MakeIdent(3)
	require.True(t, id.node.identity())

	zero, _ := p.MakeZeroState(3)
	require.True(t, p.Multiply(id, zero) == zero)

	g, _ := p.MakeGateDD(H3, 3, []Control{{Register: 0, Type: 1}}, 2)
	require.True(t, p.Multiply(id, g) == g)
	require.True(t, p.Multiply(g, id) == g)
	require.False(t, p.Errored())
}

func TestMakeIdentIsKroneckerOfLevels(t *testing.T) {
	p, _ := New([]int{3, 3, 3})
	one := bottomIdent(t, p)
	id := p.Kronecker(one, p.Kronecker(one, one))
	require.True(t, id == p.MakeIdent(3))
}

// bottomIdent builds the identity over the least significant register only,
// used to reassemble the full identity with Kronecker products.
func bottomIdent(t *testing.T, p *MDD) Edge {
	d := p.radices[0]
	mat := make([]complex128, d*d)
	for k := 0; k < d; k++ {
		mat[k*d+k] = 1
	}
	e, err := p.MakeGateDD(mat, 1, nil, 0)
	require.NoError(t, err)
	return e
}

func TestTransposeInvolution(t *testing.T) {
	p, _ := New([]int{3, 3})
	g, _ := p.MakeGateDD(X3, 2, []Control{{Register: 0, Type: 1}}, 1)
	tt := p.Transpose(p.Transpose(g))
	require.True(t, tt == g)

	ct := p.ConjugateTranspose(p.ConjugateTranspose(g))
	require.True(t, ct == g)

	h, _ := p.MakeGateDD(H3, 2, nil, 0)
	require.True(t, p.ConjugateTranspose(p.ConjugateTranspose(h)) == h)
	require.False(t, p.Errored())
}

func TestUnitaryTimesAdjointIsIdentity(t *testing.T) {
	p, _ := New([]int{3, 3})
	for _, mat := range [][]complex128{X3, H3} {
		g, err := p.MakeGateDD(mat, 2, nil, 1)
		require.NoError(t, err)
		prod := p.Multiply(g, p.ConjugateTranspose(g))
		require.True(t, prod == p.MakeIdent(2))
	}
}

func TestFidelitySelf(t *testing.T) {
	p, _ := New([]int{3, 3})
	zero, _ := p.MakeZeroState(2)
	h, _ := p.MakeGateDD(H3, 2, nil, 0)
	s := p.Multiply(h, zero)
	require.InDelta(t, 1.0, p.Fidelity(s, s), p.Tolerance())
	require.InDelta(t, 1.0, p.Fidelity(zero, zero), p.Tolerance())
}

// TestTwoQutritBell follows the canonical two-qutrit entangling circuit: H₃
// on register 0, then X₃ on register 1 controlled by digit 1, then X₃† on
// register 1 controlled by digit 2.
func TestTwoQutritBell(t *testing.T) {
	p, _ := New([]int{3, 3})
	zero, _ := p.MakeZeroState(2)
	h, err := p.MakeGateDD(H3, 2, nil, 0)
	require.NoError(t, err)
	cx, err := p.MakeGateDD(X3, 2, []Control{{Register: 0, Type: 1}}, 1)
	require.NoError(t, err)
	cxd, err := p.MakeGateDD(X3dag, 2, []Control{{Register: 0, Type: 2}}, 1)
	require.NoError(t, err)

	s := p.Multiply(h, zero)
	s = p.Multiply(cx, s)
	s = p.Multiply(cxd, s)
	require.False(t, p.Errored())

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			b, err := p.MakeBasisState(2, []int{i, j})
			require.NoError(t, err)
			f := p.Fidelity(s, b)
			if i == j {
				require.InDelta(t, 1.0/3, f, 1e-6, "fidelity with |%d%d>", i, j)
			} else {
				require.InDelta(t, 0.0, f, 1e-6, "fidelity with |%d%d>", i, j)
			}
		}
	}
}

// TestNormalizationInvariants walks a non-trivial state and checks the two
// flavor-specific weight distribution rules on every reachable node.
func TestNormalizationInvariants(t *testing.T) {
	p, _ := New([]int{3, 2, 3})
	zero, _ := p.MakeZeroState(3)
	h0, _ := p.MakeGateDD(H3, 3, nil, 0)
	h1, _ := p.MakeGateDD(Hmat, 3, nil, 1)
	cx, _ := p.MakeGateDD(X3, 3, []Control{{Register: 1, Type: 1}}, 2)
	s := p.Multiply(cx, p.Multiply(h1, p.Multiply(h0, zero)))
	require.False(t, p.Errored())

	seen := make(map[*ddNode]bool)
	var walk func(n *ddNode)
	walk = func(n *ddNode) {
		if n.isTerminal() || seen[n] {
			return
		}
		seen[n] = true
		sum := 0.0
		for _, c := range n.edges {
			sum += mag2(c.w)
			walk(c.node)
		}
		require.InDelta(t, 1.0, sum, 1e-6, "vector node at level %d must carry unit norm", n.v)
	}
	walk(s.node)

	seen = make(map[*ddNode]bool)
	var walkm func(n *ddNode)
	walkm = func(n *ddNode) {
		if n.isTerminal() || seen[n] {
			return
		}
		seen[n] = true
		hasOne := false
		for _, c := range n.edges {
			require.LessOrEqual(t, mag2(c.w), 1.0+1e-9)
			if c.w == cone {
				hasOne = true
			}
			walkm(c.node)
		}
		require.True(t, hasOne, "matrix node at level %d must have a weight-one edge", n.v)
	}
	walkm(cx.node)
}

func TestGarbageCollection(t *testing.T) {
	p, _ := New([]int{3, 3})
	kept, _ := p.MakeBasisState(2, []int{1, 2})
	// churn out short-lived states, dropping our share immediately
	h, _ := p.MakeGateDD(H3, 2, nil, 0)
	zero, _ := p.MakeZeroState(2)
	s := p.Multiply(h, zero)
	p.DecRef(s)
	p.DecRef(h)
	p.DecRef(zero)

	live := p.vUnique.count
	require.True(t, p.GarbageCollect(true))
	require.Less(t, p.vUnique.count, live)

	// the referenced state survives and is still canonical
	again, _ := p.MakeBasisState(2, []int{1, 2})
	require.True(t, kept == again)
	v, err := p.GetValueByIndex(kept, []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, complex128(1), v)
}

func TestInvalidArguments(t *testing.T) {
	p, _ := New([]int{3, 2})
	_, err := p.MakeBasisState(2, []int{0, 2})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.MakeBasisState(3, []int{0, 0, 0})
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = p.MakeGateDD(Hmat, 2, nil, 0)
	require.ErrorIs(t, err, ErrInvalidArgument, "qubit matrix on a qutrit register")
	_, err = p.MakeGateDD(H3, 2, []Control{{Register: 1, Type: 2}}, 0)
	require.ErrorIs(t, err, ErrInvalidArgument, "control digit must be below the register radix")
	_, err = p.MakeGateDD(H3, 2, []Control{{Register: 0, Type: 1}}, 0)
	require.ErrorIs(t, err, ErrInvalidArgument, "target cannot be controlled")
	_, err = p.GetValueByPath(p.MakeIdent(2), "0")
	require.ErrorIs(t, err, ErrInvalidArgument, "path shorter than the diagram")
}
