// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"container/heap"
	"math"
)

// ContrTriple names one pairwise contraction: the tensors LeftID and
// RightID are merged into ResultID. ResultID is 0 exactly for the final
// triple in a sequence — the one that produces the network's output.
type ContrTriple struct {
	ResultID int
	LeftID   int
	RightID  int
}

// ContractionSeqOptimizer lowers a tensor network into an ordered sequence
// of pairwise contractions. Implementations share this contract but differ
// in search strategy.
type ContractionSeqOptimizer interface {
	// Name returns the factory registration name.
	Name() string
	// Description is a short human-readable summary of the strategy.
	Description() string
	// DetermineContractionSequence returns a contraction sequence of
	// length NumTensors-1 and its total estimated flop cost. nextID must
	// return fresh, mutually distinct small integers on every call for
	// the duration of one invocation.
	DetermineContractionSequence(net TensorNetwork, nextID func() int) ([]ContrTriple, float64, error)
}

// candidate is one partially-contracted search state carried through the
// beam: the network as contracted so far, the sequence of contractions
// that produced it, and their cumulative cost.
type candidate struct {
	net   TensorNetwork
	seq   []ContrTriple
	cost  float64
	seqNo int // insertion order, for stable tie-breaking
}

// beamHeap is a bounded max-heap over candidates ordered by cost — the
// root is always the single most expensive candidate, so that overflow is
// handled by popping the root. Ties are broken by insertion order: of two
// equally costly candidates, the one inserted later is considered "more
// expensive" and evicted first, so earlier candidates are preferentially
// retained.
type beamHeap []candidate

func (h beamHeap) Len() int { return len(h) }
func (h beamHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost > h[j].cost
	}
	return h[i].seqNo > h[j].seqNo
}
func (h beamHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *beamHeap) Push(x interface{}) { *h = append(*h, x.(candidate)) }
func (h *beamHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// HeuroOptimizer is a bounded-beam best-first search over pairwise
// contraction states. It is single-threaded per invocation and reentrant:
// it holds no state across calls to DetermineContractionSequence.
type HeuroOptimizer struct {
	beamWidth int
	model     ContractionCostModel
}

// NewHeuroOptimizer returns a HeuroOptimizer with the given beam width,
// clamped to a minimum of 1.
func NewHeuroOptimizer(beamWidth int) *HeuroOptimizer {
	if beamWidth < 1 {
		beamWidth = 1
	}
	return &HeuroOptimizer{beamWidth: beamWidth}
}

func (o *HeuroOptimizer) Name() string { return "heuro" }

func (o *HeuroOptimizer) Description() string {
	return "bounded-beam best-first search over pairwise contraction states"
}

// DetermineContractionSequence runs exactly NumTensors-1 passes. In each
// pass, every unordered pair of remaining tensors from every state in the
// current beam is considered; the resulting states are kept in a single
// priority structure bounded to the beam width across the whole pass, not
// per parent state, so the beam explores the best candidates globally
// rather than the best few per branch.
func (o *HeuroOptimizer) DetermineContractionSequence(net TensorNetwork, nextID func() int) ([]ContrTriple, float64, error) {
	numContractions := net.NumTensors() - 1
	if numContractions <= 0 {
		return nil, 0, nil
	}
	if nextID == nil {
		return nil, math.Inf(1), &OptimizerFailureError{Reason: "nextID generator must not be nil"}
	}

	beam := []candidate{{net: net.Clone()}}
	seqCounter := 0

	for pass := 0; pass < numContractions; pass++ {
		intermediateID := nextID()
		isLastPass := pass == numContractions-1

		h := &beamHeap{}
		heap.Init(h)

		for _, parent := range beam {
			ids := parent.net.IDs()
			for a := 0; a < len(ids); a++ {
				i := ids[a]
				ti, _ := parent.net.Tensor(i)
				for b := a + 1; b < len(ids); b++ {
					j := ids[b]
					tj, _ := parent.net.Tensor(j)

					pairCost := o.model.ContractionCost(ti, tj)
					resultID := intermediateID
					if isLastPass {
						resultID = 0
					}

					mergedNet, ok := parent.net.MergeTensors(i, j, resultID)
					if !ok {
						continue
					}
					newSeq := make([]ContrTriple, len(parent.seq)+1)
					copy(newSeq, parent.seq)
					newSeq[len(parent.seq)] = ContrTriple{ResultID: resultID, LeftID: i, RightID: j}

					cand := candidate{
						net:   mergedNet,
						seq:   newSeq,
						cost:  parent.cost + pairCost,
						seqNo: seqCounter,
					}
					seqCounter++

					heap.Push(h, cand)
					if h.Len() > o.beamWidth {
						heap.Pop(h)
					}
				}
			}
		}

		if h.Len() == 0 {
			return nil, math.Inf(1), &OptimizerFailureError{Reason: "no contractible tensor pairs remain"}
		}

		next := make([]candidate, h.Len())
		for idx := len(next) - 1; idx >= 0; idx-- {
			next[idx] = heap.Pop(h).(candidate)
		}
		beam = next
	}

	best := beam[0]
	for _, c := range beam[1:] {
		if c.cost < best.cost || (c.cost == best.cost && c.seqNo < best.seqNo) {
			best = c
		}
	}
	return best.seq, best.cost, nil
}
