// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "math"

// MetisOptimizer approximates a min-cut partitioning strategy: at each
// pass it merges the pair of tensors with the strongest shared connection
// (the largest combined extent of their shared legs), rather than the
// cheapest immediate flop cost. This is the same "most tightly connected
// pair first" idea behind the maximum-adjacency-search merge phase of the
// Stoer-Wagner min-cut algorithm, applied greedily instead of exactly.
//
// No pack example wires an external min-cut or graph-partitioning library
// (METIS bindings, weighted-partition solvers) reachable from a pure
// in-memory tensor-network domain, so this is a self-contained heuristic
// on stdlib alone rather than a call into a real METIS binding — see
// DESIGN.md's per-dependency justification.
type MetisOptimizer struct {
	model ContractionCostModel
}

// NewMetisOptimizer returns a MetisOptimizer.
func NewMetisOptimizer() *MetisOptimizer {
	return &MetisOptimizer{}
}

func (o *MetisOptimizer) Name() string { return "metis" }
func (o *MetisOptimizer) Description() string {
	return "greedy min-cut-style partitioning: merges the most tightly connected pair first"
}

func (o *MetisOptimizer) DetermineContractionSequence(net TensorNetwork, nextID func() int) ([]ContrTriple, float64, error) {
	numContractions := net.NumTensors() - 1
	if numContractions <= 0 {
		return nil, 0, nil
	}
	if nextID == nil {
		return nil, math.Inf(1), &OptimizerFailureError{Reason: "nextID generator must not be nil"}
	}

	cur := net.Clone()
	seq := make([]ContrTriple, 0, numContractions)
	var totalCost float64

	for pass := 0; pass < numContractions; pass++ {
		ids := cur.IDs()
		if len(ids) < 2 {
			return nil, math.Inf(1), &OptimizerFailureError{Reason: "ran out of tensors to contract"}
		}

		bestI, bestJ := ids[0], ids[1]
		bestWeight := -1.0
		for a := 0; a < len(ids); a++ {
			i := ids[a]
			ti, _ := cur.Tensor(i)
			for b := a + 1; b < len(ids); b++ {
				j := ids[b]
				tj, _ := cur.Tensor(j)
				w := connectionWeight(ti, tj)
				if w > bestWeight {
					bestWeight = w
					bestI, bestJ = i, j
				}
			}
		}

		ti, _ := cur.Tensor(bestI)
		tj, _ := cur.Tensor(bestJ)
		resultID := nextID()
		if pass == numContractions-1 {
			resultID = 0
		}

		totalCost += o.model.ContractionCost(ti, tj)
		merged, ok := cur.MergeTensors(bestI, bestJ, resultID)
		if !ok {
			return nil, math.Inf(1), &OptimizerFailureError{Reason: "merge of tensors failed"}
		}
		cur = merged
		seq = append(seq, ContrTriple{ResultID: resultID, LeftID: bestI, RightID: bestJ})
	}

	return seq, totalCost, nil
}

// connectionWeight is the sum of extents of the legs shared between a and
// b — a proxy for how "tightly connected" the two tensors are, higher
// meaning a cheaper cut to make between them and the rest of the network.
func connectionWeight(a, b NetTensor) float64 {
	shared := sharedLabels(a.Legs, b.Legs)
	w := 0.0
	for _, l := range a.Legs {
		if shared[l.Label] {
			w += float64(l.Extent)
		}
	}
	return w
}
