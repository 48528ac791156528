// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math"

// Complex is a pair of interned real values. Equality of Complex values is
// pointer equality of both components, so two equal weights are always
// byte-identical after interning.
type Complex struct {
	re, im *ctEntry
}

// czero and cone are the distinguished constants (0, 0) and (1, 0). They are
// shared by every package instance.
var czero = Complex{ctZero, ctZero}
var cone = Complex{ctOne, ctZero}

// cval returns the value denoted by a Complex.
func cval(c Complex) complex128 {
	return complex(c.re.value, c.im.value)
}

func mag2(c Complex) float64 {
	return c.re.value*c.re.value + c.im.value*c.im.value
}

func incRefComplex(c Complex) {
	c.re.incRef()
	c.im.incRef()
}

func decRefComplex(c Complex) {
	c.re.decRef()
	c.im.decRef()
}

// complexCache is a scratch pool of entries used for intermediate values
// during recursive operations. Cached entries are mutable and never interned;
// they must be returned to the cache or promoted with lookup before an
// operation finishes.
type complexCache struct {
	chunks  [][]ctEntry
	chunkIt int
	avail   *ctEntry
	count   int // number of entries currently out of the cache
	peak    int
}

func (cc *complexCache) getEntry() *ctEntry {
	if cc.avail != nil {
		e := cc.avail
		cc.avail = e.next
		e.next = nil
		cc.count++
		if cc.count > cc.peak {
			cc.peak = cc.count
		}
		return e
	}
	if len(cc.chunks) == 0 || cc.chunkIt == len(cc.chunks[len(cc.chunks)-1]) {
		cc.chunks = append(cc.chunks, make([]ctEntry, _CTCHUNKSIZE))
		cc.chunkIt = 0
	}
	e := &cc.chunks[len(cc.chunks)-1][cc.chunkIt]
	cc.chunkIt++
	cc.count++
	if cc.count > cc.peak {
		cc.peak = cc.count
	}
	return e
}

func (cc *complexCache) returnEntry(e *ctEntry) {
	e.next = cc.avail
	cc.avail = e
	cc.count--
}

// complexNumbers ties a complex table and a scratch cache together and
// carries the arithmetic used by the package. All arithmetic is plain
// IEEE-754 double arithmetic; results of the in-place operations live in the
// cache.
type complexNumbers struct {
	table *complexTable
	cache *complexCache
}

func newComplexNumbers(tol float64, gclimit int) *complexNumbers {
	return &complexNumbers{
		table: newComplexTable(tol, gclimit),
		cache: &complexCache{},
	}
}

// lookupV interns both components of a complex value.
func (cn *complexNumbers) lookupV(re, im float64) Complex {
	return Complex{cn.table.lookup(re), cn.table.lookup(im)}
}

// lookup promotes a temporary Complex into table-interned form. Interned
// arguments simply resolve to themselves.
func (cn *complexNumbers) lookup(c Complex) Complex {
	return cn.lookupV(c.re.value, c.im.value)
}

// getTemporary obtains a scratch Complex from the cache. The result is never
// interned and compares unequal to any table entry.
func (cn *complexNumbers) getTemporary(re, im float64) Complex {
	c := Complex{cn.cache.getEntry(), cn.cache.getEntry()}
	c.re.value = re
	c.im.value = im
	return c
}

// returnToCache releases a scratch Complex. It is idempotent on the
// distinguished constants, so callers may release any weight they obtained
// from a cached computation without checking for snapped values.
func (cn *complexNumbers) returnToCache(c Complex) {
	if !entryImmortal(c.im) {
		cn.cache.returnEntry(c.im)
	}
	if !entryImmortal(c.re) {
		cn.cache.returnEntry(c.re)
	}
}

// mul stores x·y into the cached Complex z.
func (cn *complexNumbers) mul(z, x, y Complex) {
	v := cval(x) * cval(y)
	z.re.value = real(v)
	z.im.value = imag(v)
}

// div stores x/y into the cached Complex z.
func (cn *complexNumbers) div(z, x, y Complex) {
	v := cval(x) / cval(y)
	z.re.value = real(v)
	z.im.value = imag(v)
}

// add stores x+y into the cached Complex z.
func (cn *complexNumbers) add(z, x, y Complex) {
	z.re.value = x.re.value + y.re.value
	z.im.value = x.im.value + y.im.value
}

// sub stores x-y into the cached Complex z.
func (cn *complexNumbers) sub(z, x, y Complex) {
	z.re.value = x.re.value - y.re.value
	z.im.value = x.im.value - y.im.value
}

// mulCached returns x·y as a fresh scratch Complex.
func (cn *complexNumbers) mulCached(x, y Complex) Complex {
	v := cval(x) * cval(y)
	return cn.getTemporary(real(v), imag(v))
}

func (cn *complexNumbers) approximatelyZero(c Complex) bool {
	tol := cn.table.tol
	return math.Abs(c.re.value) < tol && math.Abs(c.im.value) < tol
}

func (cn *complexNumbers) approximatelyOne(c Complex) bool {
	tol := cn.table.tol
	return math.Abs(c.re.value-1.0) < tol && math.Abs(c.im.value) < tol
}

func (cn *complexNumbers) approximatelyZeroV(v complex128) bool {
	tol := cn.table.tol
	return math.Abs(real(v)) < tol && math.Abs(imag(v)) < tol
}

func (cn *complexNumbers) approximatelyOneV(v complex128) bool {
	tol := cn.table.tol
	return math.Abs(real(v)-1.0) < tol && math.Abs(imag(v)) < tol
}

func (cn *complexNumbers) approximatelyEqualV(x, y complex128) bool {
	tol := cn.table.tol
	return math.Abs(real(x)-real(y)) < tol && math.Abs(imag(x)-imag(y)) < tol
}
