// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package mdd

import (
	"errors"
	"fmt"
	"log"
)

// ErrInvalidArgument is reported when a caller passes a radix smaller than 2,
// a register index out of range, a control digit not smaller than its
// register's radix, a path shorter than the depth of the diagram, or a gate
// matrix whose size does not match the target radix.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrCapacityExceeded is reported when a request would push the package above
// the maximal number of registers.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrNumericInstability is recorded when edge normalization computes a
// non-finite common factor. The offending node is never installed.
var ErrNumericInstability = errors.New("numeric instability")

// ErrFatal is the error kind for allocation failure, a terminal condition. No
// operation of the package records it.
var ErrFatal = errors.New("fatal")

// Error returns the error status of the MDD. We return an empty string if
// there are no errors.
func (p *MDD) Error() string {
	if p.error == nil {
		return ""
	}
	return p.error.Error()
}

// Errored returns true if there was an error during a computation.
func (p *MDD) Errored() bool {
	return p.error != nil
}

// errorf wraps one of the error kinds above with context.
func errorf(kind error, format string, a ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{kind}, a...)...)
}

// seterror records a sticky error on the package. Add, Multiply, Kronecker,
// Transpose and ConjugateTranspose called on an errored package return zero
// edges, and InnerProduct returns 0, without computing anything.
func (p *MDD) seterror(kind error, format string, a ...interface{}) {
	if p.error != nil {
		return
	}
	p.error = errorf(kind, format, a...)
	if _DEBUG {
		log.Println(p.error)
	}
}
