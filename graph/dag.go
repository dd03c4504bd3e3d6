// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph implements a directed acyclic graph of tensor operations
// with dependency derivation from read/write epochs, and a bounded-beam
// contraction-sequence optimizer for tensor networks.
package graph

import (
	"container/heap"
	"fmt"
	"math"
	"strings"
	"sync"
)

// TensorGraph is an append-only directed acyclic graph of TensorOpNodes.
// An edge u->v means "u depends on v": u cannot execute before v completes.
// Nodes are created only by AddOperation and destroyed only by Clear; edges
// are created by AddOperation (implicitly, via the dependency-derivation
// rule) and AddDependency (explicitly).
//
// A single mutex guards both the adjacency structure and the embedded
// ExecutionState, so every public method observes and mutates a
// consistent snapshot of the graph. No method blocks on I/O or another
// goroutine.
type TensorGraph struct {
	mu sync.Mutex

	nodes []*TensorOpNode
	edges [][]VertexId // edges[i] = ids that node i depends on

	exec *ExecutionState
}

// NewTensorGraph returns an empty TensorGraph.
func NewTensorGraph() *TensorGraph {
	g := &TensorGraph{}
	g.exec = newExecutionState(&g.nodes, &g.edges)
	return g
}

// AddOperation appends a node carrying op, derives its dependency edges
// against the current epoch table, and returns the new node's vertex id.
// op must be fully set; otherwise AddOperation returns an
// *InvariantViolationError and the graph is left unchanged.
func (g *TensorGraph) AddOperation(op *TensorOperation) (VertexId, error) {
	if op == nil || !op.IsSet() {
		return 0, newInvariantViolation("cannot submit an unset tensor operation: %v", op)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id := VertexId(len(g.nodes))
	node := newTensorOpNode(id, op)
	g.nodes = append(g.nodes, node)
	g.edges = append(g.edges, nil)

	out, _ := op.Output()
	inputs := op.Inputs()

	// Snapshot every operand's epoch before this operation registers
	// anything of its own. An in-place op (e.g. Assign(T) or an in-place
	// Allreduce/Broadcast) sets an input operand to the same tensor as the
	// output; without this snapshot, the write registered below for out
	// would be visible to the input-epoch check that follows, producing a
	// self-loop and corrupting the tensor's epoch of record.
	outKind, outPrev := g.exec.EpochNodes(out)
	inKinds := make([]EpochKind, len(inputs))
	inPrevs := make([][]VertexId, len(inputs))
	for i, in := range inputs {
		inKinds[i], inPrevs[i] = g.exec.EpochNodes(in)
	}

	if outKind != EpochNone {
		for _, n := range outPrev {
			g.linkLocked(id, n)
		}
	}
	for i := range inputs {
		if inKinds[i] == EpochWrite {
			for _, n := range inPrevs[i] {
				g.linkLocked(id, n)
			}
		}
	}

	g.exec.RegisterWrite(out, id)
	for _, in := range inputs {
		if in.Equal(out) {
			// Already recorded as this node's write epoch above; an
			// in-place op's own read must not downgrade it to a read epoch.
			continue
		}
		g.exec.RegisterRead(in, id)
	}

	return id, nil
}

// linkLocked adds edge u->v, skipping it if already present. Callers must
// hold g.mu. It never fails: dependency derivation only ever links a
// brand-new node to already-present ones, which can't create a cycle.
func (g *TensorGraph) linkLocked(u, v VertexId) {
	for _, existing := range g.edges[u] {
		if existing == v {
			return
		}
	}
	g.edges[u] = append(g.edges[u], v)
}

// AddDependency adds an explicit edge u->v ("u depends on v") if absent.
// Fails with *InvariantViolationError if u == v or v was appended at or
// after u — because ids are assigned in strictly increasing insertion
// order and edges only ever point from a newer id to an older one, v >= u
// is a sufficient cycle test.
func (g *TensorGraph) AddDependency(u, v VertexId) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if u == v {
		return newInvariantViolation("a node cannot depend on itself (vertex %d)", u)
	}
	if int(u) < 0 || int(u) >= len(g.nodes) || int(v) < 0 || int(v) >= len(g.nodes) {
		return ErrNotFound
	}
	if v >= u {
		return newInvariantViolation("adding edge %d -> %d would create a cycle (vertex ids must decrease along dependency edges)", u, v)
	}

	g.linkLocked(u, v)
	return nil
}

// DependencyExists reports whether the direct edge u->v exists.
func (g *TensorGraph) DependencyExists(u, v VertexId) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if int(u) < 0 || int(u) >= len(g.edges) {
		return false
	}
	for _, existing := range g.edges[u] {
		if existing == v {
			return true
		}
	}
	return false
}

// NodeProperties returns the node at v.
func (g *TensorGraph) NodeProperties(v VertexId) (*TensorOpNode, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if int(v) < 0 || int(v) >= len(g.nodes) {
		return nil, ErrNotFound
	}
	return g.nodes[v], nil
}

// NodeDegree returns the number of outgoing dependency edges of v.
func (g *TensorGraph) NodeDegree(v VertexId) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if int(v) < 0 || int(v) >= len(g.edges) {
		return 0, ErrNotFound
	}
	return len(g.edges[v]), nil
}

// NumNodes returns the total number of nodes appended so far.
func (g *TensorGraph) NumNodes() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// NumDependencies returns the total number of edges in the graph.
func (g *TensorGraph) NumDependencies() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.numDependenciesLocked()
}

func (g *TensorGraph) numDependenciesLocked() int {
	n := 0
	for _, es := range g.edges {
		n += len(es)
	}
	return n
}

// NeighborList returns the direct predecessors of v — the vertices v
// depends on — in dependency-derivation order.
func (g *TensorGraph) NeighborList(v VertexId) ([]VertexId, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if int(v) < 0 || int(v) >= len(g.edges) {
		return nil, ErrNotFound
	}
	out := make([]VertexId, len(g.edges[v]))
	copy(out, g.edges[v])
	return out, nil
}

// Frontier returns the vertex ids that are Pending with all dependencies
// Completed, promoting each to Ready as it is observed.
func (g *TensorGraph) Frontier() []VertexId {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exec.Frontier()
}

// MarkExecuting, MarkCompleted, and MarkFailed delegate to the embedded
// ExecutionState under the graph's single lock.
func (g *TensorGraph) MarkExecuting(v VertexId) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exec.MarkExecuting(v)
}

func (g *TensorGraph) MarkCompleted(v VertexId) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exec.MarkCompleted(v)
}

func (g *TensorGraph) MarkFailed(v VertexId, cause error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exec.MarkFailed(v, cause)
}

// EpochNodes exposes the current epoch of a tensor for diagnostics and
// tests; it is not part of a GraphExecutor's normal operating surface.
func (g *TensorGraph) EpochNodes(t TensorRef) (EpochKind, []VertexId) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.exec.EpochNodes(t)
}

type pqItem struct {
	vertex VertexId
	dist   float64
	seqNo  int
}

type pqHeap []pqItem

func (h pqHeap) Len() int            { return len(h) }
func (h pqHeap) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h pqHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *pqHeap) Push(x interface{}) { *h = append(*h, x.(pqItem)) }
func (h *pqHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ShortestPath computes non-negative-weight shortest paths from src over
// the dependency graph using Dijkstra's algorithm. weight(v) should return
// the estimated execution cost of destination node v; if weight is nil,
// every edge has weight 1. distances[v] is +Inf for any v unreachable from
// src; parents[v] is -1 for src itself and for any unreachable v.
func (g *TensorGraph) ShortestPath(src VertexId, weight func(VertexId) float64) (distances []float64, parents []VertexId, err error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := len(g.nodes)
	if int(src) < 0 || int(src) >= n {
		return nil, nil, ErrNotFound
	}

	distances = make([]float64, n)
	parents = make([]VertexId, n)
	visited := make([]bool, n)
	for i := range distances {
		distances[i] = math.Inf(1)
		parents[i] = -1
	}
	distances[src] = 0

	pq := &pqHeap{{vertex: src, dist: 0}}
	heap.Init(pq)
	seq := 0

	for pq.Len() > 0 {
		item := heap.Pop(pq).(pqItem)
		u := item.vertex
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, v := range g.edges[u] {
			w := 1.0
			if weight != nil {
				w = weight(v)
			}
			nd := distances[u] + w
			if nd < distances[v] {
				distances[v] = nd
				parents[v] = u
				seq++
				heap.Push(pq, pqItem{vertex: v, dist: nd, seqNo: seq})
			}
		}
	}

	return distances, parents, nil
}

// Clone returns a fresh, empty TensorGraph — used by callers that need a
// graph of the same concrete type without sharing state with g.
func (g *TensorGraph) Clone() *TensorGraph {
	return NewTensorGraph()
}

// Clear empties both the DAG and the ExecutionState. Safe only when no
// other component holds vertex ids issued before the call.
func (g *TensorGraph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = nil
	g.edges = nil
	g.exec.Clear()
}

// String returns a diagnostic listing of the DAG, one line per node,
// listing its dependencies. It is the caller's responsibility to write it
// wherever they log — this package performs no logging of its own.
func (g *TensorGraph) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "TensorGraph: %d nodes, %d dependencies\n", len(g.nodes), g.numDependenciesLocked())
	for i, n := range g.nodes {
		fmt.Fprintf(&b, "Node %d [%s]: depends on %v\n", i, n.Status(), g.edges[i])
	}
	return b.String()
}
