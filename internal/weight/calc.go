package weight

import (
    "math"
    "strconv"

    "shiprates/internal/order"
)

// Calculator converts line items into shipping piece counts and aggregates
// the order's total shippable weight against an ordered rule table.
type Calculator struct {
    Rules []Rule
}

// Pieces returns the shipping piece count for one line item. Area-based
// items scale the ordered quantity by perUnitArea/unitWeight and round up;
// piece-based items ship one piece per unit ordered.
//
// A zero unit weight on an area-based item is a precondition violation;
// the order validator rejects such items before this runs.
func (c Calculator) Pieces(it order.LineItem) int {
    perUnitArea, ok := Resolve(c.Rules, it.ProductType, it.ProductLine)
    if !ok {
        return it.Quantity
    }
    return int(math.Ceil(perUnitArea / it.UnitWeight * float64(it.Quantity)))
}

// TotalWeight aggregates unitWeight x pieces across all items, rounded to
// two decimal places. Recomputing from the same items always yields the
// same total; nothing accumulates across calls.
func (c Calculator) TotalWeight(items []order.LineItem) float64 {
    var total float64
    for _, it := range items {
        total += it.UnitWeight * float64(c.Pieces(it))
    }
    return Round2(total)
}

// Round2 rounds to two decimal places on the cent grid rather than on the
// binary float, matching the formatted value used in cache keys.
func Round2(w float64) float64 {
    return math.Round(w*100) / 100
}

// Format renders a weight with exactly two decimal places.
func Format(w float64) string {
    return strconv.FormatFloat(Round2(w), 'f', 2, 64)
}
