package quote

import "time"

// ShipmentType distinguishes parcel quotes, keyed by service level, from
// LTL freight quotes, keyed by carrier name.
type ShipmentType string

const (
    Parcel ShipmentType = "parcel"
    LTL    ShipmentType = "ltl"
)

// Candidate is one normalized quote from the provider. TransitDays,
// DeliveryDate and DeliveryAt are nil when the provider omitted them.
// DeliveryAt is the delivery date combined with the estimated local time,
// expressed in the single reference zone all candidates are compared in;
// the provider's zone abbreviation is kept only as a label.
type Candidate struct {
    Carrier      string
    Service      string // empty for LTL
    Total        float64
    TransitDays  *int
    DeliveryDate *time.Time
    DeliveryAt   *time.Time
    ZoneLabel    string
    Type         ShipmentType
}

// KeyName is the name the candidate is published under: service level for
// parcel, carrier name for LTL.
func (c Candidate) KeyName() string {
    if c.Type == LTL || c.Service == "" {
        return c.Carrier
    }
    return c.Service
}
