// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "time"

// EpochKind distinguishes a tensor's current epoch: a single writer, a set
// of readers, or no epoch at all (tensor never referenced).
type EpochKind int

const (
	EpochNone EpochKind = iota
	EpochRead
	EpochWrite
)

// String returns a human-readable epoch kind name.
func (k EpochKind) String() string {
	switch k {
	case EpochRead:
		return "Read"
	case EpochWrite:
		return "Write"
	default:
		return "None"
	}
}

type epochRecord struct {
	kind    EpochKind
	members []VertexId
	present map[VertexId]struct{}
}

// ExecutionState is the per-tensor read/write epoch table and per-node
// status tracker. It is not independently thread-safe: callers
// (TensorGraph) must hold their own lock around every call, so that the
// epoch table and node statuses are always observed as a consistent
// snapshot.
type ExecutionState struct {
	epochs map[uint64]*epochRecord

	// nodes and edges are pointers to the owning TensorGraph's slices, so
	// that appends on the graph side are visible here without any copying
	// or separate bookkeeping.
	nodes *[]*TensorOpNode
	edges *[][]VertexId
}

func newExecutionState(nodes *[]*TensorOpNode, edges *[][]VertexId) *ExecutionState {
	return &ExecutionState{
		epochs: make(map[uint64]*epochRecord),
		nodes:  nodes,
		edges:  edges,
	}
}

// RegisterWrite atomically (w.r.t. the caller's lock) replaces the epoch
// for t with a fresh write epoch containing only v.
func (es *ExecutionState) RegisterWrite(t TensorRef, v VertexId) {
	es.epochs[t.Hash()] = &epochRecord{
		kind:    EpochWrite,
		members: []VertexId{v},
		present: map[VertexId]struct{}{v: {}},
	}
}

// RegisterRead appends v to t's read epoch, or replaces a write epoch with
// a fresh read epoch containing only v.
func (es *ExecutionState) RegisterRead(t TensorRef, v VertexId) {
	rec, ok := es.epochs[t.Hash()]
	if !ok || rec.kind == EpochWrite {
		es.epochs[t.Hash()] = &epochRecord{
			kind:    EpochRead,
			members: []VertexId{v},
			present: map[VertexId]struct{}{v: {}},
		}
		return
	}
	if _, seen := rec.present[v]; !seen {
		rec.members = append(rec.members, v)
		rec.present[v] = struct{}{}
	}
}

// EpochNodes returns the current epoch kind for t and the vertex ids of its
// members, or (EpochNone, nil) if t has never been referenced.
func (es *ExecutionState) EpochNodes(t TensorRef) (EpochKind, []VertexId) {
	rec, ok := es.epochs[t.Hash()]
	if !ok {
		return EpochNone, nil
	}
	out := make([]VertexId, len(rec.members))
	copy(out, rec.members)
	return rec.kind, out
}

func (es *ExecutionState) nodeAt(v VertexId) *TensorOpNode {
	nodes := *es.nodes
	if v < 0 || int(v) >= len(nodes) {
		return nil
	}
	return nodes[v]
}

// MarkExecuting transitions v from Ready to Executing.
func (es *ExecutionState) MarkExecuting(v VertexId) error {
	node := es.nodeAt(v)
	if node == nil {
		return ErrNotFound
	}
	if !legalTransition(node.status, Executing) {
		return newInvariantViolation("illegal transition %s -> Executing for vertex %d", node.status, v)
	}
	node.status = Executing
	node.startedAt = time.Now()
	return nil
}

// MarkCompleted transitions v from Executing to Completed.
func (es *ExecutionState) MarkCompleted(v VertexId) error {
	node := es.nodeAt(v)
	if node == nil {
		return ErrNotFound
	}
	if !legalTransition(node.status, Completed) {
		return newInvariantViolation("illegal transition %s -> Completed for vertex %d", node.status, v)
	}
	node.status = Completed
	node.finishedAt = time.Now()
	return nil
}

// MarkFailed transitions v from Executing to Failed, recording err on the
// node. Dependents of v remain Pending forever unless the caller invokes
// Clear or explicitly prunes them — the DAG does not cascade failure.
func (es *ExecutionState) MarkFailed(v VertexId, err error) error {
	node := es.nodeAt(v)
	if node == nil {
		return ErrNotFound
	}
	if !legalTransition(node.status, Failed) {
		return newInvariantViolation("illegal transition %s -> Failed for vertex %d", node.status, v)
	}
	node.status = Failed
	node.finishedAt = time.Now()
	node.err = &ExecutionFailureError{Vertex: v, Cause: err}
	return nil
}

// Frontier returns the vertex ids of every node whose own status is
// Pending and whose dependencies are all Completed, promoting each to
// Ready as it is observed.
func (es *ExecutionState) Frontier() []VertexId {
	nodes := *es.nodes
	edges := *es.edges
	var out []VertexId
	for i, n := range nodes {
		if n.status != Pending {
			continue
		}
		ready := true
		for _, dep := range edges[i] {
			if nodes[dep].status != Completed {
				ready = false
				break
			}
		}
		if !ready {
			continue
		}
		n.status = Ready
		out = append(out, n.id)
	}
	return out
}

// Clear discards every epoch entry. Safe only when no other component
// holds vertex ids derived from the epochs being cleared.
func (es *ExecutionState) Clear() {
	es.epochs = make(map[uint64]*epochRecord)
}
