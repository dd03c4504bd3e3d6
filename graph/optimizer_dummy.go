// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "math"

// DummyOptimizer contracts tensors left to right in ascending id order,
// with no cost consideration at all. It exists as the cheapest possible
// baseline against which the other strategies can be measured.
type DummyOptimizer struct {
	model ContractionCostModel
}

// NewDummyOptimizer returns a DummyOptimizer.
func NewDummyOptimizer() *DummyOptimizer {
	return &DummyOptimizer{}
}

func (o *DummyOptimizer) Name() string        { return "dummy" }
func (o *DummyOptimizer) Description() string { return "left-to-right pairwise contraction, no cost search" }

func (o *DummyOptimizer) DetermineContractionSequence(net TensorNetwork, nextID func() int) ([]ContrTriple, float64, error) {
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
		i, j := ids[0], ids[1]
		ti, _ := cur.Tensor(i)
		tj, _ := cur.Tensor(j)

		resultID := nextID()
		if pass == numContractions-1 {
			resultID = 0
		}

		totalCost += o.model.ContractionCost(ti, tj)
		merged, ok := cur.MergeTensors(i, j, resultID)
		if !ok {
			return nil, math.Inf(1), &OptimizerFailureError{Reason: "merge of tensors failed"}
		}
		cur = merged
		seq = append(seq, ContrTriple{ResultID: resultID, LeftID: i, RightID: j})
	}

	return seq, totalCost, nil
}
