package quote

import (
    "encoding/json"
    "log"
    "strings"
    "time"
)

const (
    dateLayout = "2006/01/02"
    timeLayout = "15:04"
)

// Parse normalizes raw provider records into Candidates. Records may mix
// parcel and LTL shapes and providers disagree on field naming, so each
// field is probed across its known spellings. A record with a missing or
// malformed Total or a malformed delivery date is dropped on its own; the
// rest of the batch survives.
func Parse(raw []map[string]any) []Candidate {
    out := make([]Candidate, 0, len(raw))
    for i, rec := range raw {
        c, ok := parseOne(rec)
        if !ok {
            log.Printf("quote: dropping malformed candidate %d", i)
            continue
        }
        out = append(out, c)
    }
    return out
}

func parseOne(rec map[string]any) (Candidate, bool) {
    c := Candidate{
        Carrier: getString(rec, []string{"carrier_name", "CarrierName", "carrier"}),
        Service: getString(rec, []string{"service_level", "ServiceLevel", "service"}),
    }

    total, ok := toFloat(getAny(rec, []string{"total", "Total", "total_cost"}))
    if !ok {
        return Candidate{}, false
    }
    c.Total = total

    if v := getAny(rec, []string{"transit_days", "TransitDays"}); v != nil {
        if f, ok := toFloat(v); ok {
            d := int(f)
            c.TransitDays = &d
        }
    }

    if s := getString(rec, []string{"estimated_delivery_date", "EstimatedDeliveryDate", "delivery_date"}); s != "" {
        d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), time.UTC)
        if err != nil {
            return Candidate{}, false
        }
        c.DeliveryDate = &d
        c.DeliveryAt = &d
        if ts := getString(rec, []string{"estimated_delivery_time", "EstimatedDeliveryTime", "delivery_time"}); ts != "" {
            if at, zone, ok := combine(d, ts); ok {
                c.DeliveryAt = &at
                c.ZoneLabel = zone
            }
        }
    }

    switch strings.ToLower(getString(rec, []string{"shipment_type", "ShipmentType"})) {
    case string(LTL):
        c.Type = LTL
    case string(Parcel):
        c.Type = Parcel
    default:
        if c.Service == "" {
            c.Type = LTL
        } else {
            c.Type = Parcel
        }
    }
    if c.Type == LTL {
        c.Service = ""
    }
    return c, true
}

// combine parses "HH:MM" with an optional trailing zone abbreviation and
// anchors it on the delivery date in the reference zone. The abbreviation
// is informational only; it never shifts the comparison instant.
func combine(date time.Time, s string) (time.Time, string, bool) {
    s = strings.TrimSpace(s)
    var zone string
    if i := strings.IndexByte(s, ' '); i >= 0 {
        zone = strings.TrimSpace(s[i+1:])
        s = s[:i]
    }
    t, err := time.ParseInLocation(timeLayout, s, time.UTC)
    if err != nil {
        return time.Time{}, "", false
    }
    at := time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
    return at, zone, true
}

// getString returns the first non-empty string among the candidate keys.
func getString(m map[string]any, keys []string) string {
    for _, k := range keys {
        if v, ok := m[k]; ok {
            if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
                return s
            }
        }
    }
    return ""
}

// getAny returns the first non-nil value among the candidate keys.
func getAny(m map[string]any, keys []string) any {
    for _, k := range keys {
        if v, ok := m[k]; ok && v != nil {
            return v
        }
    }
    return nil
}

func toFloat(v any) (float64, bool) {
    switch t := v.(type) {
    case float64:
        return t, true
    case float32:
        return float64(t), true
    case int:
        return float64(t), true
    case int64:
        return float64(t), true
    case json.Number:
        f, err := t.Float64()
        if err == nil {
            return f, true
        }
        return 0, false
    case string:
        var n json.Number = json.Number(strings.TrimSpace(t))
        f, err := n.Float64()
        if err == nil {
            return f, true
        }
        return 0, false
    default:
        return 0, false
    }
}
