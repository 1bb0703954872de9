package rate

import (
    "log"

    "shiprates/internal/quote"
)

// Cheapest returns the candidate with the lowest total cost. Ties keep the
// first candidate encountered. ok is false for an empty list.
func Cheapest(cands []quote.Candidate) (quote.Candidate, bool) {
    if len(cands) == 0 {
        return quote.Candidate{}, false
    }
    best := cands[0]
    for _, c := range cands[1:] {
        if c.Total < best.Total {
            best = c
        }
    }
    return best, true
}

// Fastest folds over the candidates keeping the best so far, using the
// faster comparison below. ok is false for an empty list.
func Fastest(cands []quote.Candidate) (quote.Candidate, bool) {
    if len(cands) == 0 {
        return quote.Candidate{}, false
    }
    best := cands[0]
    for _, c := range cands[1:] {
        if faster(c, best) {
            best = c
        }
    }
    return best, true
}

// faster reports whether the challenger beats the incumbent:
//  1. both dated: the earlier delivery date wins;
//  2. dates equal and both timed: the earlier date+time, in the reference
//     zone, wins;
//  3. both undated: fewer transit days wins;
//  4. otherwise the incumbent is kept.
// Delivery dates are compared by absolute order. A date already in the
// past still wins over a later one; nothing here is relative to now.
func faster(challenger, incumbent quote.Candidate) bool {
    if challenger.DeliveryDate != nil && incumbent.DeliveryDate != nil {
        if challenger.DeliveryDate.Before(*incumbent.DeliveryDate) {
            return true
        }
        if incumbent.DeliveryDate.Before(*challenger.DeliveryDate) {
            return false
        }
        if challenger.DeliveryAt != nil && incumbent.DeliveryAt != nil {
            return challenger.DeliveryAt.Before(*incumbent.DeliveryAt)
        }
        return false
    }
    if challenger.DeliveryDate == nil && incumbent.DeliveryDate == nil {
        if challenger.TransitDays != nil && incumbent.TransitDays != nil {
            return *challenger.TransitDays < *incumbent.TransitDays
        }
    }
    return false
}

// Select picks the cheapest and fastest candidates and publishes them
// under their canonical handles. A winner whose handle is missing from the
// carrier catalog is dropped with a note; an empty catalog therefore
// yields an empty map, never a failure.
func Select(cands []quote.Candidate, catalog map[string]string) Selected {
    out := Selected{}
    if cheapest, ok := Cheapest(cands); ok {
        publish(out, cheapest, catalog)
    }
    if fastest, ok := Fastest(cands); ok {
        publish(out, fastest, catalog)
    }
    return out
}

func publish(out Selected, c quote.Candidate, catalog map[string]string) {
    h := Handle(c.KeyName())
    if h == "" {
        return
    }
    if _, ok := catalog[h]; !ok {
        log.Printf("rate: handle %s not in carrier catalog; dropped", h)
        return
    }
    out[h] = entryFor(c)
}

// Rank is the standalone ranking utility: it selects cheapest and fastest
// from raw candidate records against the catalog. A non-empty allow-list
// narrows the candidates before selection, so the winners are picked from
// the allowed services only.
func Rank(raw []map[string]any, catalog map[string]string, allowed []string) Selected {
    cands := quote.Parse(raw)
    if len(allowed) > 0 {
        set := make(map[string]struct{}, len(allowed))
        for _, h := range allowed {
            set[Handle(h)] = struct{}{}
        }
        kept := cands[:0]
        for _, c := range cands {
            if _, ok := set[Handle(c.KeyName())]; ok {
                kept = append(kept, c)
            }
        }
        cands = kept
    }
    return Select(cands, catalog)
}
