// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"time"

	"github.com/google/uuid"
)

// VertexId identifies a node within a TensorGraph. Ids are assigned in
// insertion order starting at 0. Clear restarts the numbering at 0, so ids
// issued before a Clear are reused by nodes appended after it.
type VertexId int

// Status is a DAG node's execution status. Values are stable across
// builds and must not be renumbered — external executors and diagnostics
// may persist or compare them across process restarts.
type Status int

const (
	Pending Status = iota
	Ready
	Executing
	Completed
	Failed
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Ready:
		return "Ready"
	case Executing:
		return "Executing"
	case Completed:
		return "Completed"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// legalTransition reports whether moving from `from` to `to` is a legal
// status transition per the node lifecycle: Pending->Ready (all
// dependencies Completed), Ready->Executing (claimed by an executor),
// Executing->{Completed,Failed}. No other transition is legal.
func legalTransition(from, to Status) bool {
	switch from {
	case Pending:
		return to == Ready
	case Ready:
		return to == Executing
	case Executing:
		return to == Completed || to == Failed
	default:
		return false
	}
}

// TensorOpNode wraps a TensorOperation with the mutable runtime fields a
// TensorGraph and its downstream GraphExecutor need to track execution:
// status, timestamps, an opaque executor ticket, and error info on failure.
//
// The DAG owns a TensorOpNode exclusively; the TensorOperation it wraps is
// shared with the submitter, who may continue to inspect it (e.g. via the
// TensorRef used to submit it) without holding any lock.
type TensorOpNode struct {
	id      VertexId
	traceID uuid.UUID
	op      *TensorOperation

	status Status

	submittedAt time.Time
	startedAt   time.Time
	finishedAt  time.Time

	ticket any   // opaque executor handle; no method of this package sets it
	err    error // set only when status == Failed
}

func newTensorOpNode(id VertexId, op *TensorOperation) *TensorOpNode {
	return &TensorOpNode{
		id:          id,
		traceID:     uuid.New(),
		op:          op,
		status:      Pending,
		submittedAt: time.Now(),
	}
}

// Id returns the node's vertex id.
func (n *TensorOpNode) Id() VertexId { return n.id }

// TraceID returns a diagnostic identifier stable for the node's lifetime,
// useful for correlating a node across an external executor's log lines.
// It plays no role in DAG identity or dependency derivation.
func (n *TensorOpNode) TraceID() uuid.UUID { return n.traceID }

// Operation returns the wrapped TensorOperation.
func (n *TensorOpNode) Operation() *TensorOperation { return n.op }

// Status returns the node's current execution status.
func (n *TensorOpNode) Status() Status { return n.status }

// Ticket returns the opaque executor handle. No method of this package
// assigns one (MarkExecuting leaves it untouched), so it is always nil.
func (n *TensorOpNode) Ticket() any { return n.ticket }

// Err returns the error recorded when the node was marked Failed, or nil.
func (n *TensorOpNode) Err() error { return n.err }

// SubmittedAt, StartedAt, and FinishedAt return the node's lifecycle
// timestamps. StartedAt and FinishedAt are the zero time.Time until the
// node reaches the corresponding status.
func (n *TensorOpNode) SubmittedAt() time.Time { return n.submittedAt }
func (n *TensorOpNode) StartedAt() time.Time   { return n.startedAt }
func (n *TensorOpNode) FinishedAt() time.Time  { return n.finishedAt }
