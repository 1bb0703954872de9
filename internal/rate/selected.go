package rate

import (
    "strings"

    "shiprates/internal/quote"
)

// Entry is one selected rate, published under a canonical service handle.
type Entry struct {
    ArrivalRange string  `json:"arrival_range"`
    TransitDays  int     `json:"transit_days"`
    DeliveryDate string  `json:"delivery_date"`
    Amount       float64 `json:"amount"`
}

// Selected maps canonical service handles to their chosen rates.
type Selected map[string]Entry

// Handle canonicalizes a carrier or service name: uppercased, spaces to
// underscores. "UPS Ground" becomes "UPS_GROUND".
func Handle(name string) string {
    return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
}

// ArrivalRange buckets transit days into the display ranges shown to
// shoppers. Zero or less renders as no estimate.
func ArrivalRange(transitDays int) string {
    switch {
    case transitDays <= 0:
        return ""
    case transitDays <= 2:
        return "1-3 days"
    case transitDays <= 6:
        return "3-7 days"
    case transitDays <= 13:
        return "7-14 days"
    case transitDays <= 20:
        return "14-21 days"
    default:
        return "21 days or more"
    }
}

const dateLayout = "2006/01/02"

// entryFor renders a candidate as a publishable entry.
func entryFor(c quote.Candidate) Entry {
    days := 0
    if c.TransitDays != nil {
        days = *c.TransitDays
    }
    e := Entry{
        ArrivalRange: ArrivalRange(days),
        TransitDays:  days,
        Amount:       c.Total,
    }
    if c.DeliveryDate != nil {
        e.DeliveryDate = c.DeliveryDate.Format(dateLayout)
    }
    return e
}
