package order

// MerchandiseType is the product type handle whose non-sample items count
// as merchandise when classifying order composition.
const MerchandiseType = "merchandise"

// LineItem is one purchasable line of an order as seen by the rate engine.
// ProductLine is the first category slug of the item's product, or empty.
type LineItem struct {
    Ref         string
    ProductType string
    ProductLine string
    UnitWeight  float64
    Quantity    int
    IsSample    bool
    IsAddon     bool
}

// Snapshot is the engine's private working copy of an order. The engine
// filters and reclassifies its items freely; the caller's order is never
// touched.
type Snapshot struct {
    OrderID        string
    PostalCode     string
    LiftGate       bool
    CustomerGroups []string
    Items          []LineItem
}

// NewSnapshot copies the given items so later filtering stays invisible to
// the caller.
func NewSnapshot(orderID, postalCode string, liftGate bool, groups []string, items []LineItem) *Snapshot {
    cp := make([]LineItem, len(items))
    copy(cp, items)
    return &Snapshot{
        OrderID:        orderID,
        PostalCode:     postalCode,
        LiftGate:       liftGate,
        CustomerGroups: groups,
        Items:          cp,
    }
}

// DropAddons removes addon items from the working copy. Addons never count
// toward composition or weight.
func (s *Snapshot) DropAddons() {
    kept := s.Items[:0]
    for _, it := range s.Items {
        if !it.IsAddon {
            kept = append(kept, it)
        }
    }
    s.Items = kept
}

// InGroup reports whether the purchasing account belongs to the named
// customer group.
func (s *Snapshot) InGroup(handle string) bool {
    for _, g := range s.CustomerGroups {
        if g == handle {
            return true
        }
    }
    return false
}

// Composition partitions an order's items into sample, merchandise and
// standard counts. Addon items must already be excluded.
type Composition struct {
    Standard    int
    Sample      int
    Merchandise int
}

func (c Composition) HasStandard() bool    { return c.Standard > 0 }
func (c Composition) HasSample() bool      { return c.Sample > 0 }
func (c Composition) HasMerchandise() bool { return c.Merchandise > 0 }

// Empty reports the unreachable state where no bucket has items.
func (c Composition) Empty() bool {
    return c.Standard == 0 && c.Sample == 0 && c.Merchandise == 0
}

// SampleOnly reports a composition of samples and nothing else.
func (c Composition) SampleOnly() bool {
    return c.Sample > 0 && c.Standard == 0 && c.Merchandise == 0
}

// Classify buckets each item: sample flag first, then merchandise by
// product type, everything else standard.
func Classify(items []LineItem) Composition {
    var c Composition
    for _, it := range items {
        switch {
        case it.IsSample:
            c.Sample++
        case it.ProductType == MerchandiseType:
            c.Merchandise++
        default:
            c.Standard++
        }
    }
    return c
}
