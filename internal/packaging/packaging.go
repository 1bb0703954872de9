package packaging

import (
    "log"

    "shiprates/internal/order"
)

// Kind is the unit quotes are requested and cached in.
type Kind string

const (
    SingleBox Kind = "box"
    Pallet    Kind = "pallet"
)

// DefaultWeightThreshold is the heaviest standard order that still ships
// in a single box.
const DefaultWeightThreshold = 150

// Descriptor is the packaging choice carried into the quote request.
type Descriptor struct {
    Kind   Kind    `json:"kind"`
    Weight float64 `json:"weight"`
}

// Select maps an order's composition and total weight to a packaging
// descriptor. Standard orders at or under the threshold ship in a box,
// above it on a pallet; sample or merchandise only orders always box.
// ok is false for the empty composition, which has no sensible packaging
// and is logged as an anomaly.
func Select(comp order.Composition, totalWeight, threshold float64) (Descriptor, bool) {
    if threshold <= 0 {
        threshold = DefaultWeightThreshold
    }
    switch {
    case comp.HasStandard() && totalWeight > threshold:
        return Descriptor{Kind: Pallet, Weight: totalWeight}, true
    case comp.HasStandard():
        return Descriptor{Kind: SingleBox, Weight: totalWeight}, true
    case comp.HasSample() || comp.HasMerchandise():
        return Descriptor{Kind: SingleBox, Weight: totalWeight}, true
    }
    log.Printf("packaging: order has no standard, sample or merchandise items; no descriptor")
    return Descriptor{}, false
}
