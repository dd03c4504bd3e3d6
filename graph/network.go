// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "sort"

// Leg is one labeled index of a tensor in a TensorNetwork. Two tensors
// sharing a leg label are contracted over that index; the extent must
// agree between them (this package trusts callers to construct
// well-formed networks — symbolic index-pattern validation happens
// upstream, before a network reaches the optimizer).
type Leg struct {
	Label  string
	Extent int
}

// NetTensor is a tensor as seen by the contraction-sequence optimizer: an
// integer id (0 is reserved for the network's designated output) plus its
// labeled legs.
type NetTensor struct {
	Id   int
	Legs []Leg
}

// Shape returns the tensor's extents in leg-declaration order.
func (t NetTensor) Shape() Shape {
	s := make(Shape, len(t.Legs))
	for i, l := range t.Legs {
		s[i] = l.Extent
	}
	return s
}

func (t NetTensor) clone() NetTensor {
	legs := make([]Leg, len(t.Legs))
	copy(legs, t.Legs)
	return NetTensor{Id: t.Id, Legs: legs}
}

// TensorNetwork is a set of tensors, indexed by small integer ids, joined
// by shared leg labels. Id 0 is reserved for the network's designated
// output and never appears among the tensors being contracted — it is the
// id assigned to the single tensor produced by the final contraction.
type TensorNetwork struct {
	tensors map[int]NetTensor
}

// NewTensorNetwork builds a TensorNetwork from a set of input tensors
// (ids >= 1). Passing a tensor with id 0 is a caller error — 0 is reserved
// for the eventual contraction result, never a real input.
func NewTensorNetwork(tensors []NetTensor) TensorNetwork {
	m := make(map[int]NetTensor, len(tensors))
	for _, t := range tensors {
		m[t.Id] = t.clone()
	}
	return TensorNetwork{tensors: m}
}

// NumTensors returns the number of tensors remaining in the network.
func (n TensorNetwork) NumTensors() int {
	return len(n.tensors)
}

// IDs returns the network's tensor ids in ascending order — the
// enumeration order the optimizer uses for its pairwise pass, which is
// what makes the optimizer's tie-breaking deterministic.
func (n TensorNetwork) IDs() []int {
	ids := make([]int, 0, len(n.tensors))
	for id := range n.tensors {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Tensor returns the tensor with the given id.
func (n TensorNetwork) Tensor(id int) (NetTensor, bool) {
	t, ok := n.tensors[id]
	return t, ok
}

// Clone returns a deep copy of the network.
func (n TensorNetwork) Clone() TensorNetwork {
	m := make(map[int]NetTensor, len(n.tensors))
	for id, t := range n.tensors {
		m[id] = t.clone()
	}
	return TensorNetwork{tensors: m}
}

// MergeTensors returns a new network with tensors i and j removed and
// replaced by a single tensor with id newID, whose legs are the symmetric
// difference of i's and j's legs (shared legs are summed away by the
// contraction; each side's non-shared legs survive into the result).
func (n TensorNetwork) MergeTensors(i, j, newID int) (TensorNetwork, bool) {
	ti, ok := n.tensors[i]
	if !ok {
		return n, false
	}
	tj, ok := n.tensors[j]
	if !ok {
		return n, false
	}

	out := n.Clone()
	delete(out.tensors, i)
	delete(out.tensors, j)
	out.tensors[newID] = NetTensor{Id: newID, Legs: mergeLegs(ti.Legs, tj.Legs)}
	return out, true
}

func mergeLegs(a, b []Leg) []Leg {
	bExtent := make(map[string]int, len(b))
	for _, l := range b {
		bExtent[l.Label] = l.Extent
	}
	aLabels := make(map[string]bool, len(a))
	for _, l := range a {
		aLabels[l.Label] = true
	}

	merged := make([]Leg, 0, len(a)+len(b))
	for _, l := range a {
		if _, shared := bExtent[l.Label]; !shared {
			merged = append(merged, l)
		}
	}
	for _, l := range b {
		if !aLabels[l.Label] {
			merged = append(merged, l)
		}
	}
	return merged
}

func sharedLabels(a, b []Leg) map[string]bool {
	bLabels := make(map[string]bool, len(b))
	for _, l := range b {
		bLabels[l.Label] = true
	}
	shared := make(map[string]bool)
	for _, l := range a {
		if bLabels[l.Label] {
			shared[l.Label] = true
		}
	}
	return shared
}
