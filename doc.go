// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package mdd defines a concrete type for mixed-radix decision diagrams (MDD), a
data structure used to efficiently represent and evolve quantum states and
operators over systems whose subsystems may have different local dimensions
(qubits, qutrits, ququarts, ququints, ...).

# Basics

Each MDD is created over a fixed vector of radices, one per quantum register,
with index 0 the least significant register. States and operators are referred
to through Edges: a pointer to a canonical node together with an interned
complex weight. The package maintains three families of tables — a complex
table interning real coefficients, one unique table per node flavor, and
compute tables memoizing the recursive operations — so that two edges compare
equal with == exactly when they represent the same vector or matrix.

Constructors (MakeZeroState, MakeBasisState, MakeGateDD, MakeIdent) return
edges, and the algebra (Add, Multiply, Kronecker, Transpose,
ConjugateTranspose, InnerProduct, Fidelity) consumes and produces edges, so a
circuit is simulated by folding Multiply over its gates.

# Normalization

Every edge handed out by the package is normalized: vector nodes carry their
L2 norm on the incoming edge, matrix nodes the weight of their entry of
largest magnitude. This is what makes the representation canonical, and it is
enforced on every node installation.

# Memory management

Nodes and interned coefficients are reference counted. Every edge returned by
a public operation owns one reference share, released with DecRef. Garbage
collection runs on explicit request (GarbageCollect) or when allocation
pressure builds up, and only ever at operation boundaries; a collection
invalidates the compute tables, never a live edge.

To get access to better statistics and to unlock logging of table operations,
compile with the build tag `debug`.
*/
package mdd
