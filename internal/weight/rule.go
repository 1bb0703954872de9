package weight

// Rule maps a product type, and optionally a specific product line, to a
// weight-per-unit-area value used to convert ordered area into physical
// pieces. Rules form an ordered table: the first match wins and the scan
// never resumes after a match, so table order encodes precedence.
type Rule struct {
    ProductType string
    ProductLine string // empty matches any product line
    PerUnitArea float64
}

// PieceBasedLine items ship one piece per unit ordered even when an area
// rule exists for their product type.
const PieceBasedLine = "handpainted"

// Resolve scans the rule table once for the given product type and product
// line. ok is false when the item is piece-based: no rule matched, the item
// has no resolvable product type, or its line is the piece-based one.
func Resolve(rules []Rule, productType, productLine string) (perUnitArea float64, ok bool) {
    if productType == "" {
        return 0, false
    }
    for _, r := range rules {
        if r.ProductLine != "" && r.ProductLine == productLine && r.ProductType == productType {
            return r.PerUnitArea, true
        } else if productLine == PieceBasedLine && r.ProductType == productType {
            return 0, false
        } else if r.ProductLine == "" && r.ProductType == productType {
            return r.PerUnitArea, true
        }
    }
    return 0, false
}
