// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "fmt"

// Opcode identifies the kind of tensor operation a TensorOperation carries.
type Opcode int

const (
	OpCreate Opcode = iota
	OpDestroy
	OpAssign
	OpAdd
	OpContract
	OpTransform
	OpBroadcast
	OpAllreduce
)

// String returns a human-readable opcode name.
func (op Opcode) String() string {
	switch op {
	case OpCreate:
		return "Create"
	case OpDestroy:
		return "Destroy"
	case OpAssign:
		return "Assign"
	case OpAdd:
		return "Add"
	case OpContract:
		return "Contract"
	case OpTransform:
		return "Transform"
	case OpBroadcast:
		return "Broadcast"
	case OpAllreduce:
		return "Allreduce"
	default:
		return "Unknown"
	}
}

// operandArity and scalarArity report the number of tensor operands and
// scalar prefactors a well-formed operation of this opcode requires. Slot 0
// of the operand list is always the output (written) operand.
func operandArity(op Opcode) int {
	switch op {
	case OpCreate, OpDestroy:
		return 1
	case OpAssign, OpTransform, OpBroadcast, OpAllreduce:
		return 2
	case OpAdd:
		return 3
	case OpContract:
		return 3
	default:
		return 0
	}
}

func scalarArity(op Opcode) int {
	switch op {
	case OpAdd, OpContract, OpTransform:
		return 1
	default:
		return 0
	}
}

// TensorOperation is a value object describing a single numerical
// operation on tensors: an opcode, an ordered list of tensor operands
// (slot 0 is the written output, slots >= 1 are read inputs), a list of
// complex scalar prefactors, and an opaque symbolic index pattern.
//
// A TensorOperation is built via NewTensorOperation followed by SetOperand/
// SetScalar/SetIndexPattern calls. The DAG refuses to accept an operation
// for which IsSet is false. Nothing freezes an operation once IsSet is
// true: the setters keep overwriting slots after that point.
type TensorOperation struct {
	opcode   Opcode
	operands []TensorRef
	haveOp   []bool
	scalars  []complex128
	haveSc   []bool
	pattern  string
}

// NewTensorOperation constructs a yet-unset tensor operation for the given
// opcode, with operand and scalar slots sized to the opcode's arity.
func NewTensorOperation(opcode Opcode) *TensorOperation {
	nOperands := operandArity(opcode)
	nScalars := scalarArity(opcode)
	return &TensorOperation{
		opcode:   opcode,
		operands: make([]TensorRef, nOperands),
		haveOp:   make([]bool, nOperands),
		scalars:  make([]complex128, nScalars),
		haveSc:   make([]bool, nScalars),
	}
}

// Opcode returns the operation's opcode.
func (o *TensorOperation) Opcode() Opcode { return o.opcode }

// NumOperands returns the number of tensor operand slots required.
func (o *TensorOperation) NumOperands() int { return len(o.operands) }

// NumOperandsSet returns the number of tensor operand slots filled so far.
func (o *TensorOperation) NumOperandsSet() int {
	n := 0
	for _, set := range o.haveOp {
		if set {
			n++
		}
	}
	return n
}

// SetOperand fills operand slot i (0 = output, >=1 = input). Panics if i is
// out of range — a programmer error, not a runtime condition callers
// should recover from.
func (o *TensorOperation) SetOperand(i int, t TensorRef) {
	o.operands[i] = t
	o.haveOp[i] = true
}

// Operand returns operand slot i and whether it has been set.
func (o *TensorOperation) Operand(i int) (TensorRef, bool) {
	if i < 0 || i >= len(o.operands) {
		return TensorRef{}, false
	}
	return o.operands[i], o.haveOp[i]
}

// Output returns the operation's output (write) operand, slot 0.
func (o *TensorOperation) Output() (TensorRef, bool) {
	return o.Operand(0)
}

// Inputs returns the operation's input (read) operands, slots 1..N.
func (o *TensorOperation) Inputs() []TensorRef {
	if len(o.operands) < 2 {
		return nil
	}
	return o.operands[1:]
}

// NumScalars returns the number of scalar prefactor slots required.
func (o *TensorOperation) NumScalars() int { return len(o.scalars) }

// SetScalar fills scalar slot i.
func (o *TensorOperation) SetScalar(i int, v complex128) {
	o.scalars[i] = v
	o.haveSc[i] = true
}

// Scalar returns scalar slot i.
func (o *TensorOperation) Scalar(i int) (complex128, bool) {
	if i < 0 || i >= len(o.scalars) {
		return 0, false
	}
	return o.scalars[i], o.haveSc[i]
}

// IndexPattern returns the symbolic index pattern (opaque to this package).
func (o *TensorOperation) IndexPattern() string { return o.pattern }

// SetIndexPattern sets the symbolic index pattern. Per the operation's
// invariant, this should only be called once every operand and scalar slot
// is set.
func (o *TensorOperation) SetIndexPattern(pattern string) {
	o.pattern = pattern
}

// IsSet reports whether every operand slot and every scalar slot has been
// filled. A TensorOperation for which IsSet is false must not be submitted
// to a TensorGraph.
func (o *TensorOperation) IsSet() bool {
	for _, set := range o.haveOp {
		if !set {
			return false
		}
	}
	for _, set := range o.haveSc {
		if !set {
			return false
		}
	}
	return true
}

// NumScalarsSet returns the number of scalar prefactor slots filled so far.
func (o *TensorOperation) NumScalarsSet() int {
	n := 0
	for _, set := range o.haveSc {
		if set {
			n++
		}
	}
	return n
}

// String returns a diagnostic one-line description of the operation.
func (o *TensorOperation) String() string {
	return fmt.Sprintf("%s(operands=%d/%d scalars=%d/%d pattern=%q)",
		o.opcode, o.NumOperandsSet(), len(o.operands), o.NumScalarsSet(), len(o.scalars), o.pattern)
}
