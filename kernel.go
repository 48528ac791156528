// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import "math"

// _MAXREGISTERS is the maximal number of quantum registers in a MDD. Register
// indices are encoded on the positive range of a signed 16-bit integer, which
// leaves room for the terminal level, encoded as -1.
const _MAXREGISTERS int = 0x7FFF

// _MAXREFCOUNT is the maximal value of a reference counter. Nodes and table
// entries reaching this value become immortal; this is how the terminal nodes
// are kept out of reference counting.
const _MAXREFCOUNT uint32 = math.MaxUint32

// _TOLERANCE is the default tolerance used when interning real values in the
// complex table. Two values closer than this are mapped to the same entry.
const _TOLERANCE float64 = 1.0 / (1 << 13) // 2⁻¹³ ≈ 1.22e-4

// _NBUCKET is the number of buckets in the complex table. Keys are quantized
// absolute values clamped to the bucket range.
const _NBUCKET int = 1 << 16

// _CTCHUNKSIZE is the number of complex-table entries allocated at once when
// the free list runs dry.
const _CTCHUNKSIZE int = 2000

// _NODECHUNKSIZE is the default number of nodes allocated at once by the node
// pools backing the unique tables.
const _NODECHUNKSIZE int = 2000

// _UTBUCKET is the number of buckets in each unique table. Must be a power of
// two since we mask hash values with (_UTBUCKET - 1).
const _UTBUCKET int = 1 << 15

// _CACHESIZE is the default number of slots in each compute table.
const _CACHESIZE int = 16384

// _CTGCLIMIT and _UTGCLIMIT are the initial numbers of live complex-table
// entries (resp. nodes) above which a non-forced garbage collection actually
// sweeps. Both limits are raised after a collection that reclaims too little.
const _CTGCLIMIT int = 100000
const _UTGCLIMIT int = 250000
