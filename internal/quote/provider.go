package quote

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strings"
    "time"

    "shiprates/internal/packaging"
)

// Request is what the quoting provider needs to price an order.
type Request struct {
    Package         packaging.Descriptor `json:"package"`
    DestinationZip  string               `json:"destination_zip"`
    LiftGate        bool                 `json:"lift_gate"`
    ShipperLocation string               `json:"shipper_location"`
    LicenseKey      string               `json:"license_key"`
}

// Provider fetches raw quote candidates for an order. Transport and
// authentication details live behind this interface; the engine only sees
// the candidate records or an error it treats as "no candidates."
type Provider interface {
    Quote(ctx context.Context, req Request) ([]map[string]any, error)
}

// Dummy returns deterministic synthetic candidates, scaled off the package
// weight. Useful for local runs and tests without provider credentials.
type Dummy struct{}

func NewDummy() *Dummy { return &Dummy{} }

func (d *Dummy) Quote(ctx context.Context, req Request) ([]map[string]any, error) {
    base := 5.0 + req.Package.Weight*0.25
    if req.LiftGate {
        base += 15
    }
    when := time.Now().UTC()
    day := func(n int) string { return when.AddDate(0, 0, n).Format(dateLayout) }
    if req.Package.Kind == packaging.Pallet {
        return []map[string]any{
            {"CarrierName": "Dummy Freight", "Total": base * 2, "TransitDays": 5, "ShipmentType": "ltl"},
            {"CarrierName": "Dummy Freight Economy", "Total": base * 1.5, "TransitDays": 8, "ShipmentType": "ltl"},
        }, nil
    }
    return []map[string]any{
        {"CarrierName": "Dummy", "ServiceLevel": "Dummy Ground", "Total": base, "TransitDays": 4, "EstimatedDeliveryDate": day(4)},
        {"CarrierName": "Dummy", "ServiceLevel": "Dummy Express", "Total": base * 2.2, "TransitDays": 1, "EstimatedDeliveryDate": day(1), "EstimatedDeliveryTime": "10:30 EST"},
    }, nil
}

// HTTP posts the request as JSON to a provider endpoint and decodes a
// {"rates": [...]} body. OAuth and retries are the endpoint gateway's
// concern, not ours.
type HTTP struct {
    Endpoint string
    Client   *http.Client
}

func NewHTTP(endpoint string) *HTTP {
    return &HTTP{Endpoint: endpoint, Client: &http.Client{Timeout: 15 * time.Second}}
}

func (h *HTTP) Quote(ctx context.Context, req Request) ([]map[string]any, error) {
    body, err := json.Marshal(req)
    if err != nil {
        return nil, err
    }
    httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, h.Endpoint, bytes.NewReader(body))
    if err != nil {
        return nil, err
    }
    httpReq.Header.Set("Content-Type", "application/json")
    resp, err := h.Client.Do(httpReq)
    if err != nil {
        return nil, err
    }
    defer resp.Body.Close()
    if resp.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("quote provider returned status %d", resp.StatusCode)
    }
    var decoded struct {
        Rates []map[string]any `json:"rates"`
    }
    if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
        return nil, err
    }
    return decoded.Rates, nil
}

// NewByName returns a Provider by name. Unknown names fall back to Dummy.
func NewByName(name, endpoint string) Provider {
    switch strings.ToLower(strings.TrimSpace(name)) {
    case "http":
        return NewHTTP(endpoint)
    case "dummy", "":
        return NewDummy()
    default:
        return NewDummy()
    }
}
