package rate

import (
    "testing"
    "time"

    "shiprates/internal/quote"
)

var testCatalog = map[string]string{
    "UPS_GROUND":             "UPS Ground",
    "UPS_3_DAY_SELECT":       "UPS 3 Day Select",
    "UPS_2ND_DAY_AIR":        "UPS 2nd Day Air",
    "UPS_NEXT_DAY_AIR":       "UPS Next Day Air",
    "UPS_NEXT_DAY_AIR_SAVER": "UPS Next Day Air Saver",
    "FEDEX_GROUND":           "FedEx Ground",
    "FEDEX_EXPRESS_SAVER":    "FedEx Express Saver",
    "FEDEX_2DAY":             "FedEx 2Day",
    "ROADRUNNER_FREIGHT":     "Roadrunner Freight",
    "XPO_LOGISTICS":          "XPO Logistics",
}

// Raw records in the provider's shape, matching the quoting fixture used
// across the suite: "UPS Ground" is cheapest at 28.01, the two Next Day
// services land on the same date and differ only by time.
func fixtureRaw() []map[string]any {
    return []map[string]any{
        {"CarrierName": "UPS", "ServiceLevel": "UPS Ground", "Total": 28.01, "TransitDays": 4, "EstimatedDeliveryDate": "2024/05/10", "EstimatedDeliveryTime": "23:00 EST"},
        {"CarrierName": "UPS", "ServiceLevel": "UPS 3 Day Select", "Total": 41.30, "TransitDays": 3, "EstimatedDeliveryDate": "2024/05/09", "EstimatedDeliveryTime": "23:00 EST"},
        {"CarrierName": "UPS", "ServiceLevel": "UPS 2nd Day Air", "Total": 64.75, "TransitDays": 2, "EstimatedDeliveryDate": "2024/05/08", "EstimatedDeliveryTime": "23:00 EST"},
        {"CarrierName": "UPS", "ServiceLevel": "UPS Next Day Air", "Total": 112.44, "TransitDays": 1, "EstimatedDeliveryDate": "2024/05/07", "EstimatedDeliveryTime": "10:30 EST"},
        {"CarrierName": "UPS", "ServiceLevel": "UPS Next Day Air Saver", "Total": 104.90, "TransitDays": 1, "EstimatedDeliveryDate": "2024/05/07", "EstimatedDeliveryTime": "23:00 EST"},
        {"CarrierName": "FedEx", "ServiceLevel": "FedEx Ground", "Total": 29.55, "TransitDays": 4, "EstimatedDeliveryDate": "2024/05/10", "EstimatedDeliveryTime": "20:00 CST"},
        {"CarrierName": "FedEx", "ServiceLevel": "FedEx Express Saver", "Total": 58.20, "TransitDays": 3, "EstimatedDeliveryDate": "2024/05/09", "EstimatedDeliveryTime": "16:30 CST"},
        {"CarrierName": "FedEx", "ServiceLevel": "FedEx 2Day", "Total": 71.08, "TransitDays": 2, "EstimatedDeliveryDate": "2024/05/08", "EstimatedDeliveryTime": "16:30 CST"},
        {"CarrierName": "Roadrunner Freight", "Total": 190.12, "TransitDays": 6, "ShipmentType": "ltl"},
        {"CarrierName": "XPO Logistics", "Total": 204.79, "TransitDays": 5, "ShipmentType": "ltl"},
        {"CarrierName": "USPS", "ServiceLevel": "Priority Mail", "TransitDays": 3},
        {"CarrierName": "OnTrac", "ServiceLevel": "OnTrac Ground", "Total": 25.10, "TransitDays": 4, "EstimatedDeliveryDate": "May 10 2024"},
    }
}

func TestHandle(t *testing.T) {
    if h := Handle("UPS Ground"); h != "UPS_GROUND" {
        t.Fatalf("expected UPS_GROUND, got %s", h)
    }
    if h := Handle("  FedEx 2Day "); h != "FEDEX_2DAY" {
        t.Fatalf("expected FEDEX_2DAY, got %s", h)
    }
}

func TestArrivalRangeBuckets(t *testing.T) {
    cases := map[int]string{
        0: "", -1: "",
        1: "1-3 days", 2: "1-3 days",
        3: "3-7 days", 6: "3-7 days",
        7: "7-14 days", 13: "7-14 days",
        14: "14-21 days", 20: "14-21 days",
        21: "21 days or more", 45: "21 days or more",
    }
    for days, want := range cases {
        if got := ArrivalRange(days); got != want {
            t.Fatalf("transitDays=%d: expected %q, got %q", days, want, got)
        }
    }
}

func TestCheapest_UPSGround(t *testing.T) {
    cands := quote.Parse(fixtureRaw())
    c, ok := Cheapest(cands)
    if !ok || c.Service != "UPS Ground" || c.Total != 28.01 {
        t.Fatalf("expected UPS Ground at 28.01, got %+v ok=%v", c, ok)
    }
}

func TestCheapest_TieKeepsFirst(t *testing.T) {
    cands := []quote.Candidate{
        {Carrier: "A", Service: "A First", Total: 10, Type: quote.Parcel},
        {Carrier: "B", Service: "B Second", Total: 10, Type: quote.Parcel},
    }
    c, ok := Cheapest(cands)
    if !ok || c.Service != "A First" {
        t.Fatalf("tie must keep the first candidate, got %+v", c)
    }
}

func TestFastest_SameDateResolvedByTime(t *testing.T) {
    cands := quote.Parse(fixtureRaw())
    c, ok := Fastest(cands)
    if !ok {
        t.Fatalf("no fastest candidate")
    }
    // Both Next Day services arrive 2024/05/07; the 10:30 arrival wins
    // over the 23:00 one.
    if c.Service != "UPS Next Day Air" {
        t.Fatalf("expected UPS Next Day Air, got %+v", c)
    }
}

func TestFastest_UndatedFallsBackToTransitDays(t *testing.T) {
    d5, d6 := 5, 6
    cands := []quote.Candidate{
        {Carrier: "Roadrunner Freight", Total: 190.12, TransitDays: &d6, Type: quote.LTL},
        {Carrier: "XPO Logistics", Total: 204.79, TransitDays: &d5, Type: quote.LTL},
    }
    c, ok := Fastest(cands)
    if !ok || c.Carrier != "XPO Logistics" {
        t.Fatalf("expected fewer transit days to win, got %+v", c)
    }
}

func TestFastest_IncomparableKeepsIncumbent(t *testing.T) {
    d := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
    days := 1
    cands := []quote.Candidate{
        {Carrier: "A", Service: "A Dated", Total: 30, DeliveryDate: &d, Type: quote.Parcel},
        {Carrier: "B", Service: "B Undated", Total: 20, TransitDays: &days, Type: quote.Parcel},
    }
    c, ok := Fastest(cands)
    if !ok || c.Service != "A Dated" {
        t.Fatalf("mixed comparability must keep the incumbent, got %+v", c)
    }
}

func TestFastest_PastDateStillWins(t *testing.T) {
    // Absolute date ordering: an already-elapsed date is still "earlier".
    past := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
    future := time.Now().UTC().AddDate(0, 0, 3)
    cands := []quote.Candidate{
        {Carrier: "A", Service: "A Future", Total: 10, DeliveryDate: &future, Type: quote.Parcel},
        {Carrier: "B", Service: "B Past", Total: 10, DeliveryDate: &past, Type: quote.Parcel},
    }
    c, _ := Fastest(cands)
    if c.Service != "B Past" {
        t.Fatalf("expected absolute ordering to prefer the past date, got %+v", c)
    }
}

func TestSelect_PublishesCheapestAndFastest(t *testing.T) {
    sel := Select(quote.Parse(fixtureRaw()), testCatalog)
    ground, ok := sel["UPS_GROUND"]
    if !ok {
        t.Fatalf("cheapest UPS_GROUND missing: %+v", sel)
    }
    if ground.Amount != 28.01 || ground.TransitDays != 4 || ground.ArrivalRange != "3-7 days" || ground.DeliveryDate != "2024/05/10" {
        t.Fatalf("unexpected cheapest entry: %+v", ground)
    }
    fastest, ok := sel["UPS_NEXT_DAY_AIR"]
    if !ok {
        t.Fatalf("fastest UPS_NEXT_DAY_AIR missing: %+v", sel)
    }
    if fastest.Amount != 112.44 || fastest.ArrivalRange != "1-3 days" {
        t.Fatalf("unexpected fastest entry: %+v", fastest)
    }
    if len(sel) != 2 {
        t.Fatalf("expected exactly two entries, got %+v", sel)
    }
}

func TestSelect_EmptyCatalogDropsEverything(t *testing.T) {
    sel := Select(quote.Parse(fixtureRaw()), map[string]string{})
    if len(sel) != 0 {
        t.Fatalf("expected empty selection with empty catalog, got %+v", sel)
    }
}

func TestSelect_NoCandidates(t *testing.T) {
    if sel := Select(nil, testCatalog); len(sel) != 0 {
        t.Fatalf("expected empty selection, got %+v", sel)
    }
}

func TestRank_AllowListNarrowsCatalog(t *testing.T) {
    sel := Rank(fixtureRaw(), testCatalog, []string{"FEDEX_GROUND"})
    if len(sel) != 1 {
        t.Fatalf("expected only allowed handles, got %+v", sel)
    }
    if _, ok := sel["FEDEX_GROUND"]; !ok {
        t.Fatalf("expected FEDEX_GROUND, got %+v", sel)
    }
}
