// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

// GetValueByPath returns a single element of the vector or matrix behind e.
// The path string holds one character per level, indexed by register: for
// vectors the character at position v is the digit of register v, for
// matrices it is the row-major combined digit row·d + col. Characters beyond
// the depth of the diagram are ignored.
func (p *MDD) GetValueByPath(e Edge, path string) (complex128, error) {
	acc := complex128(1)
	cur := e
	for !cur.node.isTerminal() {
		acc *= cval(cur.w)
		v := int(cur.node.v)
		if v >= len(path) {
			return 0, errorf(ErrInvalidArgument, "path %q shorter than the diagram depth %d", path, v+1)
		}
		digit := int(path[v] - '0')
		if digit < 0 || digit >= len(cur.node.edges) {
			return 0, errorf(ErrInvalidArgument, "path digit %q out of range at level %d", path[v], v)
		}
		cur = cur.node.edges[digit]
	}
	return acc * cval(cur.w), nil
}

// GetValueByIndex returns the amplitude of one basis state of the vector
// behind e, with digits[i] the value of register i.
func (p *MDD) GetValueByIndex(e Edge, digits []int) (complex128, error) {
	if e.node.kind != vectorKind {
		return 0, errorf(ErrInvalidArgument, "not a state vector")
	}
	acc := complex128(1)
	cur := e
	for !cur.node.isTerminal() {
		acc *= cval(cur.w)
		v := int(cur.node.v)
		if v >= len(digits) {
			return 0, errorf(ErrInvalidArgument, "%d digits given for a diagram of depth %d", len(digits), v+1)
		}
		if digits[v] < 0 || digits[v] >= p.radices[v] {
			return 0, errorf(ErrInvalidArgument, "digit %d out of range for register %d", digits[v], v)
		}
		cur = cur.node.edges[digits[v]]
	}
	return acc * cval(cur.w), nil
}

// GetMatrixValueByIndex returns one entry of the matrix behind e, with
// rows[i] and cols[i] the row and column digits of register i.
func (p *MDD) GetMatrixValueByIndex(e Edge, rows, cols []int) (complex128, error) {
	if e.node.kind != matrixKind {
		return 0, errorf(ErrInvalidArgument, "not a matrix")
	}
	acc := complex128(1)
	cur := e
	for !cur.node.isTerminal() {
		acc *= cval(cur.w)
		v := int(cur.node.v)
		if v >= len(rows) || v >= len(cols) {
			return 0, errorf(ErrInvalidArgument, "index vectors shorter than the diagram depth %d", v+1)
		}
		d := p.radices[v]
		if rows[v] < 0 || rows[v] >= d || cols[v] < 0 || cols[v] >= d {
			return 0, errorf(ErrInvalidArgument, "index (%d, %d) out of range for register %d", rows[v], cols[v], v)
		}
		cur = cur.node.edges[rows[v]*d+cols[v]]
	}
	return acc * cval(cur.w), nil
}

// dim returns the dimension of the state space spanned by levels [0, top].
func (p *MDD) dim(top int) int {
	d := 1
	for v := 0; v <= top; v++ {
		d *= p.radices[v]
	}
	return d
}

// GetVector materializes the dense state vector behind e, of size ∏ rᵢ over
// the levels the diagram spans. Child k at level v owns the k-th equal
// partition of its parent's index range.
func (p *MDD) GetVector(e Edge) ([]complex128, error) {
	if e.node.kind != vectorKind {
		return nil, errorf(ErrInvalidArgument, "not a state vector")
	}
	n := p.dim(int(e.node.v))
	vec := make([]complex128, n)
	p.getVector(e, 1, 0, n, vec)
	return vec, nil
}

func (p *MDD) getVector(e Edge, amp complex128, i, next int, vec []complex128) {
	a := amp * cval(e.w)
	if e.node.isTerminal() {
		vec[i] = a
		return
	}
	offset := (next - i) / len(e.node.edges)
	for k, c := range e.node.edges {
		if !p.cn.approximatelyZero(c.w) {
			p.getVector(c, a, i+k*offset, i+(k+1)*offset, vec)
		}
	}
}

// GetVectorizedMatrix materializes the row-major flattening of the matrix
// behind e, of size (∏ rᵢ)².
func (p *MDD) GetVectorizedMatrix(e Edge) ([]complex128, error) {
	if e.node.kind != matrixKind {
		return nil, errorf(ErrInvalidArgument, "not a matrix")
	}
	n := p.dim(int(e.node.v))
	vec := make([]complex128, n*n)
	p.getMatrix(e, 1, 0, 0, n, n, vec)
	return vec, nil
}

func (p *MDD) getMatrix(e Edge, amp complex128, row, col, next, n int, vec []complex128) {
	a := amp * cval(e.w)
	if e.node.isTerminal() {
		vec[row*n+col] = a
		return
	}
	d := p.radices[e.node.v]
	offset := next / d
	for i := 0; i < d; i++ {
		for j := 0; j < d; j++ {
			c := e.node.edges[i*d+j]
			if !p.cn.approximatelyZero(c.w) {
				p.getMatrix(c, a, row+i*offset, col+j*offset, offset, n, vec)
			}
		}
	}
}
