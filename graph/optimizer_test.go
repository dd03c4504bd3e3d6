// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func idGenerator(start int) func() int {
	next := start
	return func() int {
		id := next
		next++
		return id
	}
}

func chainNetwork() TensorNetwork {
	// Chain network T1[ij], T2[jk], T3[kl], i=2, j=3, k=4, l=5.
	return NewTensorNetwork([]NetTensor{
		{Id: 1, Legs: []Leg{{"i", 2}, {"j", 3}}},
		{Id: 2, Legs: []Leg{{"j", 3}, {"k", 4}}},
		{Id: 3, Legs: []Leg{{"k", 4}, {"l", 5}}},
	})
}

func TestHeuroOptimizer_ChainExample(t *testing.T) {
	opt := NewHeuroOptimizer(1)

	seq, cost, err := opt.DetermineContractionSequence(chainNetwork(), idGenerator(4))
	require.NoError(t, err)
	require.Equal(t, 128.0, cost)
	require.Len(t, seq, 2)
	require.Equal(t, 0, seq[len(seq)-1].ResultID)
}

func TestHeuroOptimizer_Singleton(t *testing.T) {
	opt := NewHeuroOptimizer(1)

	net := NewTensorNetwork([]NetTensor{{Id: 1, Legs: []Leg{{"i", 2}}}})
	seq, cost, err := opt.DetermineContractionSequence(net, idGenerator(2))
	require.NoError(t, err)
	require.Empty(t, seq)
	require.Equal(t, 0.0, cost)
}

// Determinism given identical input and id-generator output.
func TestHeuroOptimizer_Deterministic(t *testing.T) {
	opt := NewHeuroOptimizer(1)

	seq1, cost1, err := opt.DetermineContractionSequence(chainNetwork(), idGenerator(10))
	require.NoError(t, err)
	seq2, cost2, err := opt.DetermineContractionSequence(chainNetwork(), idGenerator(10))
	require.NoError(t, err)

	require.Equal(t, cost1, cost2)
	require.Equal(t, seq1, seq2)
}

// The reported cumulative cost must equal the sum of per-pair costs along
// the returned sequence, recomputed independently against the input
// network.
func TestHeuroOptimizer_CostMonotonicity(t *testing.T) {
	opt := NewHeuroOptimizer(2)
	net := chainNetwork()

	seq, cost, err := opt.DetermineContractionSequence(net, idGenerator(4))
	require.NoError(t, err)

	model := ContractionCostModel{}
	cur := net.Clone()
	var recomputed float64
	for _, triple := range seq {
		left, ok := cur.Tensor(triple.LeftID)
		require.True(t, ok)
		right, ok := cur.Tensor(triple.RightID)
		require.True(t, ok)
		recomputed += model.ContractionCost(left, right)
		next, ok := cur.MergeTensors(triple.LeftID, triple.RightID, triple.ResultID)
		require.True(t, ok)
		cur = next
	}
	require.Equal(t, cost, recomputed)
}

func TestDummyOptimizer_LeftToRight(t *testing.T) {
	opt := NewDummyOptimizer()
	seq, cost, err := opt.DetermineContractionSequence(chainNetwork(), idGenerator(4))
	require.NoError(t, err)
	require.Len(t, seq, 2)
	require.Equal(t, 0, seq[len(seq)-1].ResultID)
	require.Greater(t, cost, 0.0)
}

func TestGreedyOptimizer_MatchesHeuroWidthOne(t *testing.T) {
	greedy := NewGreedyOptimizer()
	heuro := NewHeuroOptimizer(1)

	seqG, costG, err := greedy.DetermineContractionSequence(chainNetwork(), idGenerator(4))
	require.NoError(t, err)
	seqH, costH, err := heuro.DetermineContractionSequence(chainNetwork(), idGenerator(4))
	require.NoError(t, err)

	require.Equal(t, seqH, seqG)
	require.Equal(t, costH, costG)
}

func TestMetisOptimizer_ProducesCompleteSequence(t *testing.T) {
	opt := NewMetisOptimizer()
	seq, cost, err := opt.DetermineContractionSequence(chainNetwork(), idGenerator(4))
	require.NoError(t, err)
	require.Len(t, seq, 2)
	require.Equal(t, 0, seq[len(seq)-1].ResultID)
	require.GreaterOrEqual(t, cost, 0.0)
}

func TestOptimizer_NilGeneratorFails(t *testing.T) {
	opt := NewHeuroOptimizer(1)
	_, cost, err := opt.DetermineContractionSequence(chainNetwork(), nil)
	require.Error(t, err)
	require.True(t, cost > 1e300) // +Inf sentinel accompanying an OptimizerFailureError
	var optErr *OptimizerFailureError
	require.ErrorAs(t, err, &optErr)
}
