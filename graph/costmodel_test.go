// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

import "testing"

func TestContractionCostModel_SharedLegSummedOnce(t *testing.T) {
	model := ContractionCostModel{}

	// T1[i=2,j=3] contracted with T2[j=3,k=4]: shared leg j.
	t1 := NetTensor{Id: 1, Legs: []Leg{{"i", 2}, {"j", 3}}}
	t2 := NetTensor{Id: 2, Legs: []Leg{{"j", 3}, {"k", 4}}}

	cost := model.ContractionCost(t1, t2)
	if cost != 48 { // 2 * i*j*k = 2*2*3*4
		t.Errorf("ContractionCost = %v, want 48", cost)
	}

	vol := model.ResultVolume(t1, t2)
	if vol != 8 { // i*k = 2*4
		t.Errorf("ResultVolume = %v, want 8", vol)
	}
}

func TestContractionCostModel_DisconnectedIsOuterProduct(t *testing.T) {
	model := ContractionCostModel{}

	a := NetTensor{Id: 1, Legs: []Leg{{"i", 2}}}
	b := NetTensor{Id: 2, Legs: []Leg{{"k", 5}}}

	cost := model.ContractionCost(a, b)
	if cost != 20 { // 2 * i*k, no shared legs
		t.Errorf("ContractionCost (disconnected) = %v, want 20", cost)
	}

	vol := model.ResultVolume(a, b)
	if vol != 10 { // i*k, nothing summed away
		t.Errorf("ResultVolume (disconnected) = %v, want 10", vol)
	}
}

func TestContractionCostModel_ChainExample(t *testing.T) {
	// Chain network T1[ij], T2[jk], T3[kl], extents i=2,j=3,k=4,l=5.
	model := ContractionCostModel{}
	t1 := NetTensor{Id: 1, Legs: []Leg{{"i", 2}, {"j", 3}}}
	t2 := NetTensor{Id: 2, Legs: []Leg{{"j", 3}, {"k", 4}}}
	t3 := NetTensor{Id: 3, Legs: []Leg{{"k", 4}, {"l", 5}}}

	// Ordering ((T1.T2).T3): 2*i*j*k + 2*i*k*l = 48 + 80 = 128.
	c12 := model.ContractionCost(t1, t2)
	merged12 := NetTensor{Id: 4, Legs: []Leg{{"i", 2}, {"k", 4}}}
	c12_3 := model.ContractionCost(merged12, t3)
	if c12+c12_3 != 128 {
		t.Errorf("((T1.T2).T3) total cost = %v, want 128", c12+c12_3)
	}

	// Ordering (T1.(T2.T3)): 2*j*k*l + 2*i*j*l = 120 + 60 = 180.
	c23 := model.ContractionCost(t2, t3)
	merged23 := NetTensor{Id: 4, Legs: []Leg{{"j", 3}, {"l", 5}}}
	c1_23 := model.ContractionCost(t1, merged23)
	if c23+c1_23 != 180 {
		t.Errorf("(T1.(T2.T3)) total cost = %v, want 180", c23+c1_23)
	}
}
