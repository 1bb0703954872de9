package order

import "log"

// Reason identifies why an order was rejected as unshippable.
type Reason string

const (
    ReasonNone          Reason = ""
    ReasonNoLineItems   Reason = "no_line_items"
    ReasonMissingFields Reason = "missing_required_fields"
    ReasonNoAddress     Reason = "no_shipping_address"
    ReasonZeroWeight    Reason = "zero_weight"
    ReasonWeightLimit   Reason = "weight_limit_reached"
    ReasonNoComposition Reason = "no_composition"
)

// Problem describes one line item with missing required data, for the
// caller to forward to its notification channel.
type Problem struct {
    OrderID string `json:"order_id"`
    ItemRef string `json:"item_ref"`
    Issue   string `json:"issue"`
}

// Notice is attached to the host order when the weight limit rejects it.
// Any prior notice of the same type and attribute must be cleared first.
type Notice struct {
    Type      string `json:"type"`
    Attribute string `json:"attribute"`
    Message   string `json:"message"`
}

const (
    NoticeType      = "shippingMethodChanged"
    NoticeAttribute = "shippingWeightLimit"
)

// Outcome is the result of a validation check. Rejections are values, not
// errors: callers branch on OK and Reason.
type Outcome struct {
    OK       bool      `json:"ok"`
    Reason   Reason    `json:"reason,omitempty"`
    Problems []Problem `json:"problems,omitempty"`
    Notice   *Notice   `json:"notice,omitempty"`
}

func accept() Outcome         { return Outcome{OK: true} }
func reject(r Reason) Outcome { return Outcome{Reason: r} }

// Validator gates orders before any rate work happens. Each check is
// idempotent and side-effect free apart from diagnostic logging, so
// callers may invoke any subset.
type Validator struct {
    MaxWeight          float64
    WeightLimitMessage string
}

// CheckHasItems rejects orders with no line items at all.
func (v Validator) CheckHasItems(s *Snapshot) Outcome {
    if len(s.Items) == 0 {
        log.Printf("order %s rejected: no line items", s.OrderID)
        return reject(ReasonNoLineItems)
    }
    return accept()
}

// CheckRequiredFields rejects orders where a standard item is missing its
// weight or quantity. Sample, addon and merchandise items are exempt. All
// offending items are collected, not just the first.
func (v Validator) CheckRequiredFields(s *Snapshot) Outcome {
    var problems []Problem
    for _, it := range s.Items {
        if it.IsSample || it.IsAddon || it.ProductType == MerchandiseType {
            continue
        }
        if it.UnitWeight == 0 {
            problems = append(problems, Problem{OrderID: s.OrderID, ItemRef: it.Ref, Issue: "missing weight"})
        }
        if it.Quantity == 0 {
            problems = append(problems, Problem{OrderID: s.OrderID, ItemRef: it.Ref, Issue: "missing quantity"})
        }
    }
    if len(problems) > 0 {
        log.Printf("order %s rejected: %d item(s) missing required fields", s.OrderID, len(problems))
        out := reject(ReasonMissingFields)
        out.Problems = problems
        return out
    }
    return accept()
}

// CheckShippingAddress rejects orders without a destination postal code.
func (v Validator) CheckShippingAddress(s *Snapshot) Outcome {
    if s.PostalCode == "" {
        log.Printf("order %s rejected: no shipping address", s.OrderID)
        return reject(ReasonNoAddress)
    }
    return accept()
}

// CheckTotalWeight rejects a computed total of zero. Zero means the weight
// could not be determined, not that the order errored.
func (v Validator) CheckTotalWeight(s *Snapshot, total float64) Outcome {
    if total <= 0 {
        log.Printf("order %s rejected: zero total weight", s.OrderID)
        return reject(ReasonZeroWeight)
    }
    return accept()
}

// CheckWeightLimit rejects totals strictly above the configured maximum
// and carries the notice the caller must attach to the order.
func (v Validator) CheckWeightLimit(s *Snapshot, total float64) Outcome {
    if v.MaxWeight > 0 && total > v.MaxWeight {
        log.Printf("order %s rejected: total weight %.2f over limit %.2f", s.OrderID, total, v.MaxWeight)
        out := reject(ReasonWeightLimit)
        out.Notice = &Notice{
            Type:      NoticeType,
            Attribute: NoticeAttribute,
            Message:   v.WeightLimitMessage,
        }
        return out
    }
    return accept()
}

// PreWeight runs the checks that precede weight computation, stopping at
// the first failure.
func (v Validator) PreWeight(s *Snapshot) Outcome {
    if out := v.CheckHasItems(s); !out.OK {
        return out
    }
    if out := v.CheckRequiredFields(s); !out.OK {
        return out
    }
    return v.CheckShippingAddress(s)
}

// PostWeight runs the checks that depend on the computed total, stopping
// at the first failure.
func (v Validator) PostWeight(s *Snapshot, total float64) Outcome {
    if out := v.CheckTotalWeight(s, total); !out.OK {
        return out
    }
    return v.CheckWeightLimit(s, total)
}
