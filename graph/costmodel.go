// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package graph

// ContractionCostModel estimates the flop cost and intermediate volume of
// contracting two tensors. Both methods are pure and side-effect free —
// they read only the shapes/legs passed in.
type ContractionCostModel struct{}

// ContractionCost estimates the number of floating-point operations to
// contract a and b: the product of every distinct index extent across
// a's and b's legs (shared legs counted once), times two — one multiply
// and one add per inner summation step.
//
// When a and b share no legs, every extent from both sides is distinct, so
// the formula degenerates to twice the outer-product size: no special
// case is needed for disconnected tensors.
func (ContractionCostModel) ContractionCost(a, b NetTensor) float64 {
	extents := make(map[string]int)
	for _, l := range a.Legs {
		extents[l.Label] = l.Extent
	}
	for _, l := range b.Legs {
		extents[l.Label] = l.Extent
	}

	total := 1.0
	for _, extent := range extents {
		total *= float64(extent)
	}
	return 2 * total
}

// ResultVolume estimates the number of elements in the tensor produced by
// contracting a and b: the product of the legs that are not shared between
// them (the legs that survive the contraction).
func (ContractionCostModel) ResultVolume(a, b NetTensor) float64 {
	shared := sharedLabels(a.Legs, b.Legs)

	vol := 1.0
	for _, l := range a.Legs {
		if !shared[l.Label] {
			vol *= float64(l.Extent)
		}
	}
	for _, l := range b.Legs {
		if !shared[l.Label] {
			vol *= float64(l.Extent)
		}
	}
	return vol
}
