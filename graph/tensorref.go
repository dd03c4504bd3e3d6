// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "hash/fnv"

// DataType is a runtime tag for a tensor's element type. It is informational
// only — the DAG never reads or writes tensor storage, so DataType exists
// purely to let cost-estimation and diagnostics report something meaningful.
type DataType int

const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	Complex64
	Complex128
)

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case Complex64:
		return "complex64"
	case Complex128:
		return "complex128"
	default:
		return "unknown"
	}
}

// Shape is the extents of a tensor's legs (indices), in declaration order.
type Shape []int

// NumElements returns the product of all extents (1 for a scalar shape).
func (s Shape) NumElements() int64 {
	n := int64(1)
	for _, dim := range s {
		n *= int64(dim)
	}
	return n
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// TensorRef is an opaque identity for a tensor value: a stable 64-bit hash
// derived from the tensor's name, shape, and element type, plus the shape
// and type themselves for cost estimation. Equality is by hash alone —
// two TensorRefs referencing the same underlying tensor compare equal even
// if their Shape/DataType fields were populated independently, since the
// hash is what the DAG and ExecutionState key on.
//
// TensorRef carries no ownership relation: two TensorOperations may hold
// TensorRefs to the same tensor without implying either owns it.
type TensorRef struct {
	hash  uint64
	dtype DataType
	shape Shape
}

// NewTensorRef derives a TensorRef from a tensor's name, shape, and element
// type. The hash is stable across calls for identical (name, shape, dtype)
// input, and across the lifetime of the process.
func NewTensorRef(name string, shape Shape, dtype DataType) TensorRef {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	_, _ = h.Write([]byte{byte(dtype)})
	for _, dim := range shape {
		var buf [8]byte
		v := uint64(dim)
		for i := range buf {
			buf[i] = byte(v)
			v >>= 8
		}
		_, _ = h.Write(buf[:])
	}
	return TensorRef{hash: h.Sum64(), dtype: dtype, shape: shape.Clone()}
}

// Hash returns the TensorRef's stable 64-bit identity hash.
func (t TensorRef) Hash() uint64 { return t.hash }

// DType returns the element-type tag carried by the TensorRef.
func (t TensorRef) DType() DataType { return t.dtype }

// Shape returns the shape carried by the TensorRef.
func (t TensorRef) Shape() Shape { return t.shape }

// Equal reports whether two TensorRefs identify the same tensor. Equality
// is by hash only, per the identity contract: shape and dtype are
// informational and do not participate in equality.
func (t TensorRef) Equal(other TensorRef) bool {
	return t.hash == other.hash
}

// IsZero reports whether t is the zero-value TensorRef (never a valid
// tensor identity, since NewTensorRef always produces a non-zero hash for
// any input due to the FNV offset basis).
func (t TensorRef) IsZero() bool {
	return t.hash == 0 && t.dtype == 0 && t.shape == nil
}
