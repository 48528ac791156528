// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"unsafe"
)

func humanSize(count int, size uintptr) string {
	bytes := float64(count) * float64(size)
	switch {
	case bytes >= 1<<30:
		return fmt.Sprintf("%.1f GB", bytes/(1<<30))
	case bytes >= 1<<20:
		return fmt.Sprintf("%.1f MB", bytes/(1<<20))
	case bytes >= 1<<10:
		return fmt.Sprintf("%.1f kB", bytes/(1<<10))
	}
	return fmt.Sprintf("%.0f B", bytes)
}

// Stats returns information about the package tables.
func (p *MDD) Stats() string {
	res := fmt.Sprintf("Registers:  %d\n", len(p.radices))
	res += fmt.Sprintf("Radices:    %v\n", p.radices)
	res += "==============\n"
	res += fmt.Sprintf("vNodes:     %d live, %d peak, %d produced (%s)\n",
		p.vUnique.count, p.vUnique.peak, p.vUnique.produced, humanSize(p.vUnique.count, unsafe.Sizeof(ddNode{})))
	res += fmt.Sprintf("mNodes:     %d live, %d peak, %d produced (%s)\n",
		p.mUnique.count, p.mUnique.peak, p.mUnique.produced, humanSize(p.mUnique.count, unsafe.Sizeof(ddNode{})))
	res += fmt.Sprintf("Complex:    %d live, %d peak (%s)\n",
		p.cn.table.count, p.cn.table.peak, humanSize(p.cn.table.count, unsafe.Sizeof(ctEntry{})))
	res += fmt.Sprintf("# of GC:    %d\n", p.vUnique.gcRuns)
	if _DEBUG {
		res += "==============\n"
		res += fmt.Sprintf("Unique hits:   %d / %d (v), %d / %d (m)\n",
			p.vUnique.hits, p.vUnique.lookups, p.mUnique.hits, p.mUnique.lookups)
		res += fmt.Sprintf("Complex hits:  %d / %d\n", p.cn.table.hits, p.cn.table.lookups)
		res += p.vectorAdd.String()
		res += p.matrixAdd.String()
		res += p.matVecMult.String()
		res += p.matMatMult.String()
	}
	return res
}

// NodeCount returns the number of distinct nodes reachable from e, terminals
// excluded.
func (p *MDD) NodeCount(e Edge) int {
	seen := make(map[*ddNode]bool)
	p.nodeCount(e.node, seen)
	return len(seen)
}

func (p *MDD) nodeCount(n *ddNode, seen map[*ddNode]bool) {
	if n.isTerminal() || seen[n] {
		return
	}
	seen[n] = true
	for _, c := range n.edges {
		p.nodeCount(c.node, seen)
	}
}

// WriteBinary emits one record per distinct weight reachable from e, as two
// little-endian IEEE-754 doubles (real then imaginary part), no header.
// Weights are visited in a deterministic depth-first pre-order.
func (p *MDD) WriteBinary(w io.Writer, e Edge) error {
	seenW := make(map[Complex]bool)
	seenN := make(map[*ddNode]bool)
	return p.writeBinary(w, e, seenW, seenN)
}

func (p *MDD) writeBinary(w io.Writer, e Edge, seenW map[Complex]bool, seenN map[*ddNode]bool) error {
	if !seenW[e.w] {
		seenW[e.w] = true
		var buf [16]byte
		binary.LittleEndian.PutUint64(buf[0:], math.Float64bits(e.w.re.value))
		binary.LittleEndian.PutUint64(buf[8:], math.Float64bits(e.w.im.value))
		if _, err := w.Write(buf[:]); err != nil {
			return err
		}
	}
	if e.node.isTerminal() || seenN[e.node] {
		return nil
	}
	seenN[e.node] = true
	for _, c := range e.node.edges {
		if err := p.writeBinary(w, c, seenW, seenN); err != nil {
			return err
		}
	}
	return nil
}

// FprintVector writes every amplitude of the state behind e, one line per
// basis state, most significant digit first.
func (p *MDD) FprintVector(w io.Writer, e Edge) error {
	if e.node.kind != vectorKind {
		return errorf(ErrInvalidArgument, "not a state vector")
	}
	top := int(e.node.v)
	digits := make([]int, top+1)
	n := p.dim(top)
	for i := 0; i < n; i++ {
		q := i
		for v := 0; v <= top; v++ {
			digits[v] = q % p.radices[v]
			q /= p.radices[v]
		}
		a, err := p.GetValueByIndex(e, digits)
		if err != nil {
			return err
		}
		for v := top; v >= 0; v-- {
			fmt.Fprintf(w, "%d", digits[v])
		}
		fmt.Fprintf(w, ": %6.3f%+.3fi\n", real(a), imag(a))
	}
	return nil
}

// PrintVector is FprintVector on the standard output.
func (p *MDD) PrintVector(e Edge) error {
	return p.FprintVector(os.Stdout, e)
}

// PrintDot prints a graph-like description of the diagram rooted at e using
// the DOT format, to the given file or to the standard output when filename
// is "-". Zero edges are not drawn.
func (p *MDD) PrintDot(filename string, e Edge) error {
	var out *os.File
	var err error
	if filename == "-" {
		out = os.Stdout
	} else {
		out, err = os.Create(filename)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	w := bufio.NewWriter(out)
	fmt.Fprintln(w, "digraph G {")
	fmt.Fprintln(w, "root [shape=point];")
	ids := make(map[*ddNode]int)
	p.dotnode(w, e.node, ids)
	fmt.Fprintf(w, "root -> n%d [label=\"%s\"];\n", ids[e.node], fmtweight(cval(e.w)))
	fmt.Fprintln(w, "}")
	return w.Flush()
}

func (p *MDD) dotnode(w io.Writer, n *ddNode, ids map[*ddNode]int) {
	if _, ok := ids[n]; ok {
		return
	}
	ids[n] = len(ids)
	if n.isTerminal() {
		fmt.Fprintf(w, "n%d [shape=box, label=\"1\", height=0.3, width=0.3];\n", ids[n])
		return
	}
	fmt.Fprintf(w, "n%d [label=\"q%d\"];\n", ids[n], n.v)
	for k, c := range n.edges {
		if c.IsZero() {
			continue
		}
		p.dotnode(w, c.node, ids)
		fmt.Fprintf(w, "n%d -> n%d [label=\"%d: %s\"];\n", ids[n], ids[c.node], k, fmtweight(cval(c.w)))
	}
}

func fmtweight(v complex128) string {
	if imag(v) == 0 {
		return fmt.Sprintf("%.3g", real(v))
	}
	return fmt.Sprintf("%.3g%+.3gi", real(v), imag(v))
}
