// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math"

// ctEntry is an interned real value. Every weight carried by a live edge
// points into the complex table, so that equal values (up to the table
// tolerance) always compare equal as pointers. The next field doubles as the
// bucket chain in the table and as the free list link.
type ctEntry struct {
	value float64
	next  *ctEntry
	ref   uint32
}

// ctZero and ctOne are the two distinguished entries of every table. They are
// shared by all package instances, never reference counted and never
// reclaimed; this is what makes Complex constants comparable across edges
// without consulting a table.
var ctZero = &ctEntry{value: 0.0}
var ctOne = &ctEntry{value: 1.0}

func entryImmortal(e *ctEntry) bool {
	return e == ctZero || e == ctOne
}

func (e *ctEntry) incRef() {
	if entryImmortal(e) || e.ref == _MAXREFCOUNT {
		return
	}
	e.ref++
}

func (e *ctEntry) decRef() {
	if entryImmortal(e) || e.ref == _MAXREFCOUNT {
		return
	}
	if e.ref > 0 {
		e.ref--
	}
}

// complexTable interns real values with a fixed tolerance. Values are stored
// signed; the bucket key is computed from the absolute value so that a value
// and its negation land in the same, sorted chain.
type complexTable struct {
	buckets    []*ctEntry  // bucket chains, sorted in increasing value
	tol        float64     // interning tolerance, fixed at creation
	chunks     [][]ctEntry // all entries ever allocated
	chunkIt    int         // next unused entry in the last chunk
	avail      *ctEntry    // free list of reclaimed entries
	count      int         // number of live entries
	peak       int         // maximum of count over the lifetime of the table
	lookups    int         // number of calls to lookup
	hits       int         // lookups resolved to an existing entry
	gcRuns     int         // number of sweeps that actually ran
	reclaimed  int         // total number of entries reclaimed by sweeps
	gclimit    int         // live-entry count above which a non-forced sweep runs
	allocs     int         // number of chunk allocations
	firstChunk int         // size of each chunk
}

func newComplexTable(tol float64, gclimit int) *complexTable {
	return &complexTable{
		buckets:    make([]*ctEntry, _NBUCKET),
		tol:        tol,
		gclimit:    gclimit,
		firstChunk: _CTCHUNKSIZE,
	}
}

// tolerance returns the interning tolerance of the table.
func (t *complexTable) tolerance() float64 {
	return t.tol
}

// key quantizes the absolute value in units of the tolerance, so that two
// values within tolerance land in the same or in adjacent buckets.
func (t *complexTable) key(v float64) int {
	k := int(math.Abs(v) / t.tol)
	if k >= _NBUCKET {
		return _NBUCKET - 1
	}
	return k
}

// getEntry returns a fresh entry, either from the free list or from the
// current allocation chunk.
func (t *complexTable) getEntry() *ctEntry {
	if t.avail != nil {
		e := t.avail
		t.avail = e.next
		e.next = nil
		e.ref = 0
		t.count++
		if t.count > t.peak {
			t.peak = t.count
		}
		return e
	}
	if len(t.chunks) == 0 || t.chunkIt == len(t.chunks[len(t.chunks)-1]) {
		t.chunks = append(t.chunks, make([]ctEntry, t.firstChunk))
		t.chunkIt = 0
		t.allocs++
	}
	e := &t.chunks[len(t.chunks)-1][t.chunkIt]
	t.chunkIt++
	t.count++
	if t.count > t.peak {
		t.peak = t.count
	}
	return e
}

// searchBucket scans one chain for a value within tolerance. Chains are kept
// sorted, so we can stop as soon as the entries grow too large.
func (t *complexTable) searchBucket(k int, v float64) *ctEntry {
	if k < 0 || k >= _NBUCKET {
		return nil
	}
	for e := t.buckets[k]; e != nil; e = e.next {
		if math.Abs(e.value-v) < t.tol {
			return e
		}
		if e.value > v+t.tol {
			return nil
		}
	}
	return nil
}

// lookup interns a real value. Values within tolerance of 0 or 1 resolve to
// the distinguished immortal entries.
func (t *complexTable) lookup(v float64) *ctEntry {
	t.lookups++
	if math.Abs(v) < t.tol {
		t.hits++
		return ctZero
	}
	if math.Abs(v-1.0) < t.tol {
		t.hits++
		return ctOne
	}
	k := t.key(v)
	for _, kk := range [3]int{k, k - 1, k + 1} {
		if e := t.searchBucket(kk, v); e != nil {
			t.hits++
			return e
		}
	}
	// insert a new entry, keeping the chain sorted
	e := t.getEntry()
	e.value = v
	prev := &t.buckets[k]
	for *prev != nil && (*prev).value < v {
		prev = &(*prev).next
	}
	e.next = *prev
	*prev = e
	return e
}

// gc sweeps unreferenced entries back to the free list. When force is false
// the sweep only runs above the occupancy limit; the limit is doubled
// whenever a sweep reclaims less than half of the table.
func (t *complexTable) gc(force bool) int {
	if !force && t.count < t.gclimit {
		return 0
	}
	collected := 0
	for k := range t.buckets {
		prev := &t.buckets[k]
		for *prev != nil {
			e := *prev
			if e.ref == 0 {
				*prev = e.next
				e.next = t.avail
				t.avail = e
				collected++
			} else {
				prev = &e.next
			}
		}
	}
	t.count -= collected
	t.reclaimed += collected
	t.gcRuns++
	if !force && collected < t.count {
		t.gclimit *= 2
	}
	return collected
}
