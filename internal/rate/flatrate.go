package rate

import (
    "sort"

    "shiprates/internal/order"
)

// FlatRate substitutes a fixed price for sample-only orders. Trade-group
// accounts get their cheapest sample shipment free instead.
type FlatRate struct {
    Handle     string
    Amount     float64
    TradeGroup string
}

// Apply rewrites the selection for a sample-only composition:
//  1. entries priced under the flat rate are removed and replaced by one
//     entry under the flat-rate handle, carrying the arrival metadata of
//     the last entry removed;
//  2. the cheapest remaining entry's amount is overwritten with zero for
//     trade accounts, the flat rate otherwise.
// Orders with any standard or merchandise presence are returned untouched,
// sample items notwithstanding.
func (f FlatRate) Apply(sel Selected, comp order.Composition, isTrade bool) Selected {
    if !comp.SampleOnly() || len(sel) == 0 || f.Handle == "" {
        return sel
    }

    out := Selected{}
    var removed *Entry
    for h, e := range sel {
        if e.Amount < f.Amount {
            e := e
            removed = &e
            continue
        }
        out[h] = e
    }
    if removed != nil {
        sub := *removed
        sub.Amount = f.Amount
        out[f.Handle] = sub
    }
    if len(out) == 0 {
        return out
    }

    cheapest := cheapestHandle(out)
    e := out[cheapest]
    if isTrade {
        e.Amount = 0
    } else {
        e.Amount = f.Amount
    }
    out[cheapest] = e
    return out
}

// cheapestHandle returns the handle of the lowest-amount entry, breaking
// amount ties by handle so the overwrite lands deterministically.
func cheapestHandle(sel Selected) string {
    handles := make([]string, 0, len(sel))
    for h := range sel {
        handles = append(handles, h)
    }
    sort.Slice(handles, func(i, j int) bool {
        a, b := sel[handles[i]], sel[handles[j]]
        if a.Amount != b.Amount {
            return a.Amount < b.Amount
        }
        return handles[i] < handles[j]
    })
    return handles[0]
}
