// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

// GreedyOptimizer picks the single cheapest local pair at every pass. It is
// exactly HeuroOptimizer with a beam width of 1: carrying a single state
// forward through the beam search means each pass has no other candidate
// to compare against, so the cheapest pair considered this pass is always
// the one retained.
type GreedyOptimizer struct {
	heuro *HeuroOptimizer
}

// NewGreedyOptimizer returns a GreedyOptimizer.
func NewGreedyOptimizer() *GreedyOptimizer {
	return &GreedyOptimizer{heuro: NewHeuroOptimizer(1)}
}

func (o *GreedyOptimizer) Name() string        { return "greed" }
func (o *GreedyOptimizer) Description() string { return "greedy best local pairwise contraction (beam width 1)" }

func (o *GreedyOptimizer) DetermineContractionSequence(net TensorNetwork, nextID func() int) ([]ContrTriple, float64, error) {
	return o.heuro.DetermineContractionSequence(net, nextID)
}
