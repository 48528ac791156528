// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComplexTableInterning(t *testing.T) {
	ct := newComplexTable(_TOLERANCE, _CTGCLIMIT)

	e1 := ct.lookup(0.5)
	e2 := ct.lookup(0.5 + _TOLERANCE/10)
	require.Same(t, e1, e2, "values within tolerance must intern to the same entry")
	require.InDelta(t, 0.5, e1.value, _TOLERANCE)

	e3 := ct.lookup(0.3)
	require.NotSame(t, e1, e3)

	// the distinguished entries
	require.Same(t, ctZero, ct.lookup(0.0))
	require.Same(t, ctZero, ct.lookup(_TOLERANCE/2))
	require.Same(t, ctOne, ct.lookup(1.0))
	require.Same(t, ctOne, ct.lookup(1.0-_TOLERANCE/2))

	// signs are stored, not tagged
	en := ct.lookup(-0.5)
	require.NotSame(t, e1, en)
	require.InDelta(t, -0.5, en.value, _TOLERANCE)
	require.Same(t, en, ct.lookup(-0.5))
}

func TestComplexTableBucketBorder(t *testing.T) {
	ct := newComplexTable(_TOLERANCE, _CTGCLIMIT)
	// two values within tolerance but quantized into adjacent buckets
	v := 0.25
	e1 := ct.lookup(v - _TOLERANCE/3)
	e2 := ct.lookup(v + _TOLERANCE/3)
	require.Same(t, e1, e2)
}

func TestComplexTableGC(t *testing.T) {
	ct := newComplexTable(_TOLERANCE, _CTGCLIMIT)
	kept := ct.lookup(0.7)
	kept.incRef()
	for i := 0; i < 100; i++ {
		ct.lookup(0.002 + float64(i)*0.009)
	}
	live := ct.count
	n := ct.gc(true)
	require.Equal(t, live-1, n, "every unreferenced entry must be reclaimed")
	require.Equal(t, 1, ct.count)
	// the survivor is still interned, reclaimed slots are reusable
	require.Same(t, kept, ct.lookup(0.7))
	e := ct.lookup(0.123)
	require.InDelta(t, 0.123, e.value, _TOLERANCE)
}

func TestComplexCacheBalance(t *testing.T) {
	cn := newComplexNumbers(_TOLERANCE, _CTGCLIMIT)
	c := cn.getTemporary(2, 3)
	require.Equal(t, 2, cn.cache.count)
	d := cn.mulCached(c, c)
	require.Equal(t, complex(-5.0, 12.0), cval(d))
	cn.returnToCache(d)
	cn.returnToCache(c)
	require.Equal(t, 0, cn.cache.count)
	// returning a snapped constant is a no-op
	cn.returnToCache(czero)
	cn.returnToCache(cone)
	require.Equal(t, 0, cn.cache.count)
}

func TestComplexArithmetic(t *testing.T) {
	cn := newComplexNumbers(_TOLERANCE, _CTGCLIMIT)
	x := cn.lookupV(1, 2)
	y := cn.lookupV(3, -1)
	z := cn.getTemporary(0, 0)
	cn.mul(z, x, y)
	require.Equal(t, complex(5.0, 5.0), cval(z))
	cn.add(z, x, y)
	require.Equal(t, complex(4.0, 1.0), cval(z))
	cn.sub(z, x, y)
	require.Equal(t, complex(-2.0, 3.0), cval(z))
	cn.div(z, x, x)
	require.InDelta(t, 1.0, real(cval(z)), 1e-12)
	require.InDelta(t, 0.0, imag(cval(z)), 1e-12)
	require.Equal(t, 5.0, mag2(x))
	cn.returnToCache(z)

	// interning a Complex resolves both components
	w := cn.lookup(cn.getTemporary(1, 0))
	require.Equal(t, cone, w)
}
