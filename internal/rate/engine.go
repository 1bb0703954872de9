package rate

import (
    "context"
    "log"
    "time"

    "shiprates/internal/order"
    "shiprates/internal/packaging"
    "shiprates/internal/quote"
    "shiprates/internal/weight"
)

// Options is the immutable engine configuration, built once and passed
// into the constructor.
type Options struct {
    MaxWeight          float64
    WeightThreshold    float64
    WeightLimitMessage string
    Rules              []weight.Rule
    Catalog            map[string]string // handle -> display name, also the allow-list
    FlatRateHandle     string
    FlatRateAmount     float64
    TradeGroup         string
    ShipperLocation    string
    LicenseKey         string
    CacheTTL           time.Duration
}

// Result carries the selected rates and, on rejection, the structured
// reason the order could not be priced. Rates is empty whenever Outcome
// rejects.
type Result struct {
    Rates     Selected             `json:"rates"`
    Outcome   order.Outcome        `json:"outcome"`
    Packaging *packaging.Descriptor `json:"packaging,omitempty"`
    Weight    float64              `json:"weight"`
    CacheKey  string               `json:"-"`
    CacheHit  bool                 `json:"cache_hit"`
}

// Engine runs the full pipeline: validate, weigh, classify, package,
// consult the cache, fetch and parse quotes, select, apply the flat-rate
// policy, cache.
type Engine struct {
    opts     Options
    calc     weight.Calculator
    check    order.Validator
    provider quote.Provider
    cache    CacheStore
}

func New(opts Options, provider quote.Provider, cache CacheStore) *Engine {
    if opts.CacheTTL <= 0 {
        opts.CacheTTL = DefaultTTL
    }
    if cache == nil {
        cache = NewMemoryCache()
    }
    return &Engine{
        opts:     opts,
        calc:     weight.Calculator{Rules: opts.Rules},
        check:    order.Validator{MaxWeight: opts.MaxWeight, WeightLimitMessage: opts.WeightLimitMessage},
        provider: provider,
        cache:    cache,
    }
}

// Rates prices one order snapshot. Rejections come back as values on the
// Result, never as errors; a provider failure degrades to an empty rate
// set.
func (e *Engine) Rates(ctx context.Context, snap *order.Snapshot) Result {
    // Validation sees the order as submitted; addons drop out before any
    // weight or composition work since they never count toward either.
    if out := e.check.PreWeight(snap); !out.OK {
        return Result{Rates: Selected{}, Outcome: out}
    }
    snap.DropAddons()

    total := e.calc.TotalWeight(snap.Items)
    if out := e.check.PostWeight(snap, total); !out.OK {
        return Result{Rates: Selected{}, Outcome: out, Weight: total}
    }

    comp := order.Classify(snap.Items)
    pkg, ok := packaging.Select(comp, total, e.opts.WeightThreshold)
    if !ok {
        log.Printf("order %s: empty composition after filtering; no rates", snap.OrderID)
        out := order.Outcome{Reason: order.ReasonNoComposition}
        return Result{Rates: Selected{}, Outcome: out, Weight: total}
    }

    res := Result{
        Outcome:   order.Outcome{OK: true},
        Packaging: &pkg,
        Weight:    total,
        CacheKey:  CacheKey(snap.OrderID, pkg.Kind, total),
    }

    if cached, hit := e.cache.Get(res.CacheKey); hit {
        res.Rates = cached
        res.CacheHit = true
        return res
    }

    raw, err := e.provider.Quote(ctx, quote.Request{
        Package:         pkg,
        DestinationZip:  snap.PostalCode,
        LiftGate:        snap.LiftGate,
        ShipperLocation: e.opts.ShipperLocation,
        LicenseKey:      e.opts.LicenseKey,
    })
    if err != nil {
        // Provider trouble means no candidates, not a failed request.
        log.Printf("order %s: quote provider error: %v", snap.OrderID, err)
        raw = nil
    }

    selected := Select(quote.Parse(raw), e.opts.Catalog)
    flat := FlatRate{Handle: e.opts.FlatRateHandle, Amount: e.opts.FlatRateAmount, TradeGroup: e.opts.TradeGroup}
    selected = flat.Apply(selected, comp, snap.InGroup(e.opts.TradeGroup))

    e.cache.Set(res.CacheKey, selected, e.opts.CacheTTL)
    res.Rates = selected
    return res
}
