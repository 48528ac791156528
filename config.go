// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// configs is used to store the values of the different parameters of the MDD.
type configs struct {
	tolerance float64 // tolerance used when interning reals in the complex table
	chunksize int     // number of nodes allocated at once by the node pools
	cachesize int     // number of slots in each compute table
	ctgclimit int     // complex-table occupancy above which a non-forced GC sweeps
	utgclimit int     // node count above which a non-forced GC sweeps
}

func makeconfigs() *configs {
	return &configs{
		tolerance: _TOLERANCE,
		chunksize: _NODECHUNKSIZE,
		cachesize: _CACHESIZE,
		ctgclimit: _CTGCLIMIT,
		utgclimit: _UTGCLIMIT,
	}
}

// Tolerance is a configuration option (function). Used as a parameter in New
// it sets the tolerance of the complex table: two real values closer than tol
// are interned to the same entry. The tolerance is fixed for the lifetime of
// the package; there is deliberately no setter, since changing it after a
// value has been interned would silently break canonicity. The default value
// is 2⁻¹³.
func Tolerance(tol float64) func(*configs) {
	return func(c *configs) {
		if tol > 0 {
			c.tolerance = tol
		}
	}
}

// Chunksize is a configuration option (function). Used as a parameter in New
// it sets the number of nodes allocated in one go when a node pool runs out
// of free entries. The default value is 2000.
func Chunksize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.chunksize = size
		}
	}
}

// Cachesize is a configuration option (function). Used as a parameter in New
// it sets the number of slots in each operation cache (addition,
// multiplication, Kronecker, transposition, inner products). The value is
// rounded up to a prime. The default value is 16384.
func Cachesize(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.cachesize = size
		}
	}
}

// GClimit is a configuration option (function). Used as a parameter in New it
// sets the number of live nodes above which a non-forced call to
// GarbageCollect actually sweeps the tables. The default value is 250000.
func GClimit(size int) func(*configs) {
	return func(c *configs) {
		if size > 0 {
			c.utgclimit = size
		}
	}
}
