// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by lookups of an unknown VertexId. A TensorRef
// that has never been referenced is reported by EpochNodes as EpochNone
// instead.
// It is a lookup outcome, not a fatal condition — callers typically check
// for it with errors.Is rather than propagating it further.
var ErrNotFound = errors.New("graph: not found")

// InvariantViolationError reports a malformed TensorOperation, a
// cycle-inducing AddDependency call, or a status transition outside the
// set legal under the node lifecycle. It is always fatal to the caller.
type InvariantViolationError struct {
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("graph: invariant violation: %s", e.Reason)
}

func newInvariantViolation(format string, args ...any) *InvariantViolationError {
	return &InvariantViolationError{Reason: fmt.Sprintf(format, args...)}
}

// ExecutionFailureError is stored on a TensorOpNode by an external executor
// reporting a failed operation. The DAG marks the node Failed and does not
// cascade the failure to dependents.
type ExecutionFailureError struct {
	Vertex VertexId
	Cause  error
}

func (e *ExecutionFailureError) Error() string {
	return fmt.Sprintf("graph: execution failed for vertex %d: %v", e.Vertex, e.Cause)
}

func (e *ExecutionFailureError) Unwrap() error {
	return e.Cause
}

// OptimizerFailureError is returned by a ContractionSeqOptimizer when no
// contraction sequence can be produced for the given network.
type OptimizerFailureError struct {
	Reason string
}

func (e *OptimizerFailureError) Error() string {
	return fmt.Sprintf("graph: optimizer failure: %s", e.Reason)
}
