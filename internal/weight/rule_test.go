package weight

import "testing"

var testRules = []Rule{
    {ProductType: "tile", ProductLine: "quickShipSeconds", PerUnitArea: 3},
    {ProductType: "tile", ProductLine: "", PerUnitArea: 4.5},
    {ProductType: "slab", ProductLine: "", PerUnitArea: 5},
}

func TestResolve_LineSpecificBeatsWildcard(t *testing.T) {
    v, ok := Resolve(testRules, "tile", "quickShipSeconds")
    if !ok || v != 3 {
        t.Fatalf("expected quickShipSeconds rule (3), got %v ok=%v", v, ok)
    }
}

func TestResolve_WildcardFallback(t *testing.T) {
    v, ok := Resolve(testRules, "tile", "fieldTile")
    if !ok || v != 4.5 {
        t.Fatalf("expected wildcard tile rule (4.5), got %v ok=%v", v, ok)
    }
    v, ok = Resolve(testRules, "slab", "")
    if !ok || v != 5 {
        t.Fatalf("expected slab rule (5), got %v ok=%v", v, ok)
    }
}

func TestResolve_HandpaintedIsPieceBased(t *testing.T) {
    if _, ok := Resolve(testRules, "tile", "handpainted"); ok {
        t.Fatalf("handpainted line must resolve piece-based even with a matching type rule")
    }
}

func TestResolve_HandpaintedLineSpecificRuleStillWins(t *testing.T) {
    // A rule naming the handpainted line outranks the piece-based escape
    // because the line+type check runs first on every row.
    rules := []Rule{
        {ProductType: "tile", ProductLine: "handpainted", PerUnitArea: 2},
        {ProductType: "tile", ProductLine: "", PerUnitArea: 4.5},
    }
    v, ok := Resolve(rules, "tile", "handpainted")
    if !ok || v != 2 {
        t.Fatalf("expected handpainted-specific rule (2), got %v ok=%v", v, ok)
    }
}

func TestResolve_FirstMatchWins(t *testing.T) {
    rules := []Rule{
        {ProductType: "tile", ProductLine: "", PerUnitArea: 4.5},
        {ProductType: "tile", ProductLine: "", PerUnitArea: 9},
    }
    v, ok := Resolve(rules, "tile", "")
    if !ok || v != 4.5 {
        t.Fatalf("expected first rule to win, got %v ok=%v", v, ok)
    }
}

func TestResolve_NoMatch(t *testing.T) {
    if _, ok := Resolve(testRules, "merchandise", ""); ok {
        t.Fatalf("expected no rule for merchandise")
    }
    if _, ok := Resolve(testRules, "", "quickShipSeconds"); ok {
        t.Fatalf("expected no rule for missing product type")
    }
    if _, ok := Resolve(nil, "tile", ""); ok {
        t.Fatalf("expected no rule from empty table")
    }
}
